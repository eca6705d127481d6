package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AmalShalabi/psycho-arabic/internal/config"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset [kind]",
	Short: "Clear saved results (all, or one of: exam, practice, vocabulary, sentence-completion, group)",
	Args:  cobra.MaximumNArgs(1),
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

		var kinds []store.Kind
		if len(args) == 1 {
			kind := store.Kind(args[0])
			if !slices.Contains(store.Kinds, kind) {
				return fmt.Errorf("unknown result kind %q", args[0])
			}
			kinds = append(kinds, kind)
		}
		if err := st.Results().Clear(cmd.Context(), kinds...); err != nil {
			return err
		}
		fmt.Println("Results cleared")
		return nil
	},
}
