package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/internal/artifacts"
	"github.com/javijec/new-biblia/internal/config"
	berrors "github.com/javijec/new-biblia/internal/errors"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

var (
	configPath string
	logLevel   string
	dataDir    string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "searcher",
	Short: "Search the structured corpus",
	Long: `Runs accent-insensitive whole-word searches over the book artifacts,
expanding verbs to their conjugations, either from the command line or
through the HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "biblia.toml", "path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "artifact directory written by the builder")
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
	if dataDir != "" {
		cfg.Search.DataDir = dataDir
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

func newEngine(c config.Config) (*search.Engine, *artifacts.Store, error) {
	compression, err := artifacts.ParseCompression(c.Build.Compress)
	if err != nil {
		return nil, nil, err
	}
	store := artifacts.NewStore(c.Search.DataDir, compression)
	engine := search.NewEngine(store, nil, search.Options{
		ProgressEvery: c.Search.ProgressEvery,
		CacheSize:     c.Search.CacheSize,
	})
	return engine, store, nil
}

// openIndex opens the ranked index only if the indexer has written it.
func openIndex(path string) (*storage.IndexDB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, berrors.NewNotFound("index database", path)
		}
		return nil, berrors.NewIO("stat", path, err)
	}
	return storage.NewIndexDB(path)
}
