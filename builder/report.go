package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/builder/internal/consolidator"
)

var (
	reportJSON bool
	reportTop  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show duplicate chapters and book title statistics",
	Long: `Reads the consolidation report written by the last build and prints the
dropped duplicate chapters, the chapters that could not be placed in a book
and the most frequent book titles.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&buildOut, "out", "", "artifact directory")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
	reportCmd.Flags().IntVarP(&reportTop, "top", "n", 30, "number of book titles to list")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	applyBuildFlags(&cfg)

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	var report consolidator.Report
	if err := store.LoadReport(&report); err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	if reportJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	t := report.Totals
	cmd.Printf("Books: %d  Chapters: %d  Verses: %d  (policy %s)\n", t.Books, t.Chapters, t.Verses, report.Policy)

	if len(report.Duplicates) == 0 {
		cmd.Println("No duplicate chapters found.")
	} else {
		cmd.Printf("\n%d duplicate chapters dropped:\n", len(report.Duplicates))
		for _, d := range report.Duplicates {
			cmd.Printf("  %s %d: kept %s (verses=%d), dropped %s (verses=%d)\n",
				d.BookName, d.Chapter, d.Kept, d.KeptVerses, d.Dropped, d.DroppedVerses)
		}
	}

	if len(report.Skipped) > 0 {
		cmd.Printf("\n%d chapters skipped:\n", len(report.Skipped))
		for _, s := range report.Skipped {
			cmd.Printf("  %s: %s\n", s.File, s.Reason)
		}
	}

	cmd.Printf("\nUnique book titles: %d\n", len(report.Titles))
	for i, tc := range report.Titles {
		if i >= reportTop {
			break
		}
		cmd.Printf("%4d - %s\n", tc.Chapters, tc.Title)
	}
	return nil
}
