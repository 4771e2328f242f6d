package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/indexer/internal/indexer"
	"github.com/javijec/new-biblia/internal/config"
	"github.com/javijec/new-biblia/internal/logging"
)

var (
	configPath string
	batchSize  int
	corpusDB   string
	indexDB    string
)

var rootCmd = &cobra.Command{
	Use:          "indexer",
	Short:        "Build the ranked search index of the corpus",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Index every verse not yet indexed",
	Long: `Reads verses from the corpus database in batches, stems them and stores
term postings in the index database. Interrupted runs resume where they
stopped; a rebuilt corpus discards the old index.`,
	Args: cobra.NoArgs,
	RunE: runIndexer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "biblia.toml", "path to the TOML configuration file")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 0, "verses per transaction (defaults to the configured value)")
	runCmd.Flags().StringVar(&corpusDB, "corpus-db", "", "corpus database written by the builder")
	runCmd.Flags().StringVar(&indexDB, "index-db", "", "index database to write")
	rootCmd.AddCommand(runCmd)
}

func runIndexer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
		return err
	}
	defer logging.Close()

	if batchSize > 0 {
		cfg.Index.BatchSize = batchSize
	}
	if corpusDB != "" {
		cfg.Build.CorpusDB = corpusDB
	}
	if indexDB != "" {
		cfg.Index.DBPath = indexDB
	}

	logging.Info("starting indexer",
		"corpus_db", cfg.Build.CorpusDB,
		"index_db", cfg.Index.DBPath,
		"batch_size", cfg.Index.BatchSize,
	)

	idx, err := indexer.NewIndexer(cfg.Build.CorpusDB, cfg.Index.DBPath, cfg.Index.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer idx.Close()

	stats, err := idx.IndexAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d verses (%d without terms) of %d\n", stats.Indexed, stats.Skipped, stats.Total)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
