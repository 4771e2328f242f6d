package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/builder/internal/consolidator"
	"github.com/javijec/new-biblia/builder/internal/fetcher"
	"github.com/javijec/new-biblia/builder/internal/scheduler"
	"github.com/javijec/new-biblia/internal/artifacts"
	"github.com/javijec/new-biblia/internal/config"
	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
)

var (
	buildSource   string
	buildLinked   string
	buildOut      string
	buildSkipRefs bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full build",
	Long: `Extracts the corpus, consolidates books, writes every artifact and
exports the corpus database. The reference pass runs unless --skip-refs is set.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildSource, "source", "", "directory with the chapter files")
	buildCmd.Flags().StringVar(&buildLinked, "linked", "", "directory with the linked chapter files (defaults to --source)")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "artifact output directory")
	buildCmd.Flags().BoolVar(&buildSkipRefs, "skip-refs", false, "skip the cross-reference pass")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	applyBuildFlags(&cfg)

	res, err := buildCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var refs corpus.ReferenceMap
	if !buildSkipRefs {
		refs, err = buildReferences(cmd.Context(), cfg)
		if err != nil {
			return err
		}
	}

	if err := exportCorpusDB(cfg.Build.CorpusDB, res.Books, refs); err != nil {
		return err
	}

	cmd.Printf("Built %d books, %d chapters, %d verses into %s\n",
		res.Index.Totals.Books, res.Index.Totals.Chapters, res.Index.Totals.Verses, cfg.Build.OutputDir)
	if n := len(res.Report.Duplicates); n > 0 {
		cmd.Printf("Dropped %d duplicate chapters (policy %s)\n", n, res.Report.Policy)
	}
	if !buildSkipRefs {
		cmd.Printf("Extracted references for %d verses\n", len(refs))
	}
	return nil
}

func applyBuildFlags(c *config.Config) {
	if buildSource != "" {
		c.Build.SourceDir = buildSource
	}
	if buildLinked != "" {
		c.Build.LinkedDir = buildLinked
	}
	if buildOut != "" {
		c.Build.OutputDir = buildOut
	}
}

func newScheduler(c config.Config) (*scheduler.Scheduler, error) {
	f, err := fetcher.New(c.Build.Encoding)
	if err != nil {
		return nil, err
	}
	return scheduler.New(f, &scheduler.Config{
		Pattern:       c.Build.Pattern,
		LinkedPattern: c.Build.LinkedPattern,
		Version:       c.Corpus.Version,
		Language:      c.Corpus.Language,
		Source:        c.Corpus.Source,
	}), nil
}

func newStore(c config.Config) (*artifacts.Store, error) {
	compression, err := artifacts.ParseCompression(c.Build.Compress)
	if err != nil {
		return nil, err
	}
	return artifacts.NewStore(c.Build.OutputDir, compression), nil
}

// buildCorpus runs the corpus pass and writes the raw corpus, the per-book
// files, the book index and the duplicate report.
func buildCorpus(ctx context.Context, c config.Config) (*consolidator.Result, error) {
	sched, err := newScheduler(c)
	if err != nil {
		return nil, err
	}
	store, err := newStore(c)
	if err != nil {
		return nil, err
	}
	policy, err := consolidator.ParsePolicy(c.Build.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	raw, stats, err := sched.Build(ctx, c.Build.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("corpus build failed: %w", err)
	}
	if err := store.WriteCorpus(raw); err != nil {
		return nil, err
	}

	res := consolidator.Consolidate(raw, consolidator.Options{Policy: policy})
	for i := range res.Books {
		sum, err := store.WriteBook(&res.Books[i])
		if err != nil {
			return nil, err
		}
		res.Index.Books[i].Checksum = sum
	}
	if err := store.WriteIndex(res.Index); err != nil {
		return nil, err
	}
	if err := store.WriteReport(res.Report); err != nil {
		return nil, err
	}

	logging.Info("artifacts written",
		"dir", store.Root(),
		"books", res.Index.Totals.Books,
		"duplicates", len(res.Report.Duplicates),
		"skipped", len(res.Report.Skipped),
		"errors", stats.Errors,
	)
	return res, nil
}

func buildReferences(ctx context.Context, c config.Config) (corpus.ReferenceMap, error) {
	sched, err := newScheduler(c)
	if err != nil {
		return nil, err
	}
	store, err := newStore(c)
	if err != nil {
		return nil, err
	}

	refs, _, err := sched.References(ctx, c.Build.LinkedSourceDir())
	if err != nil {
		return nil, fmt.Errorf("reference extraction failed: %w", err)
	}
	if err := store.WriteReferences(refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// exportCorpusDB replaces the corpus database contents with books and refs.
func exportCorpusDB(path string, books []corpus.Book, refs corpus.ReferenceMap) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	db, err := storage.NewCorpusDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	buildID, err := db.SaveBooks(books)
	if err != nil {
		return fmt.Errorf("failed to export corpus: %w", err)
	}
	if refs != nil {
		if err := db.SaveReferences(refs); err != nil {
			return fmt.Errorf("failed to export references: %w", err)
		}
	}

	logging.Info("corpus database written", "path", path, "build_id", buildID)
	return nil
}
