// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/logging"
	"github.com/theirongolddev/runway/internal/store"
)

var (
	flagConfig   string
	flagLocale   string
	flagDataDir  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Budget survival calculator",
	Long:  "How long will your money last? Enter what is left and your monthly costs.",
	RunE:  runTUI,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	// A .env file in the working directory may carry RUNWAY_* overrides.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVarP(&flagLocale, "locale", "l", "", "Display language: zh or en")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory for the scenario database and log")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// configPath is the config file every command reads and writes.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// loadConfig reads the config file and applies command-line overrides on
// top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if flagLocale != "" {
		cfg.General.Locale = string(i18n.Parse(flagLocale))
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

// newLogger builds the file logger for cfg, honoring --log-level.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if flagLogLevel != "" {
		if _, err := logging.ParseLevel(flagLogLevel); err != nil {
			return nil, err
		}
	}
	return logging.NewOrNop(cfg.Log, cfg.LogPath(), flagLogLevel), nil
}

// openStore opens the scenario database under cfg's data dir.
func openStore(cfg config.Config, logger *zap.Logger) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening scenario store: %w", err)
	}
	return st, nil
}
