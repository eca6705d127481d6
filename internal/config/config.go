// Package config loads trainer settings from environment variables
// (PSYCHO_* prefix) and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the app-level settings. Zero values fall back to the
// engine defaults.
type Config struct {
	// CatalogPath points at a questions.json on disk; empty means the
	// bundled catalog.
	CatalogPath string `mapstructure:"catalog"`
	// DBPath overrides the default results database location.
	DBPath string `mapstructure:"db"`

	ExamSeconds int `mapstructure:"exam_seconds"`
	PracticeCap int `mapstructure:"practice_cap"`
	GroupSize   int `mapstructure:"group_size"`
}

// Load reads settings from $XDG_CONFIG_HOME/psycho/config.yaml (when
// present) and the PSYCHO_* environment. A missing config file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("psycho")
	v.AutomaticEnv()

	v.SetDefault("catalog", "")
	v.SetDefault("db", "")
	v.SetDefault("exam_seconds", 3600)
	v.SetDefault("practice_cap", 10)
	v.SetDefault("group_size", 20)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "psycho")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "psycho")
}
