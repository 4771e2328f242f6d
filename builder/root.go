package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/internal/config"
	"github.com/javijec/new-biblia/internal/logging"
)

var (
	configPath string
	logLevel   string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "builder",
	Short: "Build the structured corpus from the legacy chapter files",
	Long: `Reads the legacy per-chapter HTML files, extracts chapters and verses,
consolidates them into books and writes the JSON artifacts, the
cross-reference map and the SQLite corpus database.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "biblia.toml", "path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}
