package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"vanmitra-feedback/internal/aggregator"
	"vanmitra-feedback/internal/dataset"
	"vanmitra-feedback/internal/pipeline"
)

var (
	batchInput  string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every audio reference in a spreadsheet and export the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		refs, err := dataset.LoadReferences(batchInput)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records := pipeline.RunBatch(ctx, a.Processor, refs, cfg.Pipeline.BatchConcurrency, log)
		summary := aggregator.Aggregate(records)

		out := batchOutput
		if out == "" {
			out = defaultBatchOutput(batchInput)
		}
		if err := dataset.Export(out, records, summary, log); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed %d references (%d completed, %d failed) -> %s\n",
			summary.Total, summary.Completed, summary.Failed, out)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "xlsx file listing audio references")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "xlsx results file (default <input>_results.xlsx)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

func defaultBatchOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_results.xlsx"
}
