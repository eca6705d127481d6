package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmalShalabi/psycho-arabic/internal/config"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/summary"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the saved result of every mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		results := st.Results()
		for _, kind := range store.Kinds {
			rec, err := results.Load(cmd.Context(), kind)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Printf("%-22s -\n", kind)
				continue
			}
			sum := summary.Summarize(rec)
			fmt.Printf("%-22s %d/%d (%d%%)  answered %d  time %ds  %s\n",
				kind, sum.Correct, sum.Total, sum.Percentage,
				sum.Answered, sum.Seconds,
				rec.CompletedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}
