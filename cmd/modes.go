package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AmalShalabi/psycho-arabic/internal/engine"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Start a timed mock exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, engine.ModeExam)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a quick practice round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, engine.ModePractice)
	},
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Drill English vocabulary by unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, engine.ModeVocabulary)
	},
}

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Drill sentence completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, engine.ModeSentenceCompletion)
	},
}
