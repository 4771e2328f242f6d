package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/internal/textprocessor"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

var (
	queryOffset   int
	queryLimit    int
	queryJSON     bool
	queryProgress bool
	queryRanked   bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Search the corpus and print matching verses",
	Long: `Prints every verse containing the query as a whole word, ignoring case
and accents. Verbs match all their conjugations. With --ranked the TF-IDF
index built by the indexer is used instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "number of results to skip")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", search.DefaultLimit, "maximum number of results to print")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the result page as JSON")
	queryCmd.Flags().BoolVar(&queryProgress, "progress", false, "report progress while scanning books")
	queryCmd.Flags().BoolVar(&queryRanked, "ranked", false, "rank results with the TF-IDF index")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if queryRanked {
		return runRanked(cmd, query)
	}

	engine, _, err := newEngine(cfg)
	if err != nil {
		return err
	}

	var progress search.ProgressFunc
	if queryProgress {
		progress = func(p search.Progress) {
			fmt.Fprintf(cmd.ErrOrStderr(), "searched %d/%d books, %d matches\n", p.Current, p.Total, len(p.Results))
		}
	}

	results, err := engine.SearchProgressive(cmd.Context(), query, progress)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	page := search.Paginate(results, queryOffset, queryLimit)
	if queryJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	for _, r := range page.Results {
		cmd.Printf("%s %d:%d  %s\n", r.BookTitle, r.ChapterNumber, r.VerseNumber, r.Text)
	}
	cmd.Printf("%d results for %q\n", page.Total, query)
	return nil
}

func runRanked(cmd *cobra.Command, query string) error {
	db, err := openIndex(cfg.Search.IndexDB)
	if err != nil {
		return err
	}
	defer db.Close()

	terms := textprocessor.NewTextProcessor().QueryTerms(query)
	hits, total, err := db.Search(terms, queryLimit, queryOffset)
	if err != nil {
		return err
	}

	if queryJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"total": total, "terms": terms, "hits": hits})
	}

	for _, h := range hits {
		cmd.Printf("%.4f  %s %d:%d  %s\n", h.Score, h.BookName, h.Chapter, h.Verse, h.Text)
	}
	cmd.Printf("%d results for %q\n", total, query)
	return nil
}
