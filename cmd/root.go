package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "psycho",
	Short: "Arabic psychometric exam trainer",
	Long:  "Psycho — terminal trainer for the Arabic psychometric exam: timed mock exams, quick practice, English vocabulary and sentence completion drills.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite results database (overrides PSYCHO_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a questions.json catalog (overrides the bundled one)")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(sentencesCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then PSYCHO_DB / the XDG default.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
