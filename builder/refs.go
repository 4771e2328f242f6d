package main

import (
	"github.com/spf13/cobra"
)

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Extract the cross-reference map only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyBuildFlags(&cfg)

		refs, err := buildReferences(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		cmd.Printf("Extracted references for %d verses\n", len(refs))
		return nil
	},
}

func init() {
	refsCmd.Flags().StringVar(&buildLinked, "linked", "", "directory with the linked chapter files")
	refsCmd.Flags().StringVar(&buildOut, "out", "", "artifact output directory")
	rootCmd.AddCommand(refsCmd)
}
