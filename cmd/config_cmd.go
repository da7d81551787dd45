package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runway/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := configPath()
	fmt.Printf("  Config file: %s\n", path)
	if config.ExistsAt(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Env prefix:  %s*\n", config.EnvPrefix)
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Locale:       %s\n", cfg.General.Locale)
	fmt.Printf("    Default unit: %s\n", cfg.General.DefaultUnit)
	fmt.Printf("    Data dir:     %s\n", cfg.DataDir())
	fmt.Printf("    Database:     %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Chart: %s\n", cfg.Appearance.Chart)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Printf("    File:   %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	if len(cfg.Server.CORSOrigins) > 0 {
		fmt.Printf("    CORS:    %s\n", strings.Join(cfg.Server.CORSOrigins, ", "))
	} else {
		fmt.Println("    CORS:    disabled")
	}
	fmt.Println()

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
