package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AmalShalabi/psycho-arabic/data"
	"github.com/AmalShalabi/psycho-arabic/internal/app"
	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/config"
	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/quiz"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

// runApp loads configuration, the catalog and the results store, then
// launches the TUI. A non-empty mode skips the home menu.
func runApp(cmd *cobra.Command, mode engine.Mode) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd, cfg)
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

	return app.Run(app.Options{
		Catalog: cat,
		Results: st.Results(),
		Settings: quiz.Settings{
			ExamBudget:  time.Duration(cfg.ExamSeconds) * time.Second,
			PracticeCap: cfg.PracticeCap,
			GroupSize:   cfg.GroupSize,
		},
		StartMode: mode,
	})
}

// loadCatalog reads the catalog from --catalog, the config file, or the
// bundled questions.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}
	if path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		return cat, nil
	}

	cat, err := catalog.Load(data.Questions)
	if err != nil {
		return nil, fmt.Errorf("load bundled catalog: %w", err)
	}
	return cat, nil
}
