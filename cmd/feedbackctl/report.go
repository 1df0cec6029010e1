package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vanmitra-feedback/internal/aggregator"
	"vanmitra-feedback/internal/dataset"
)

var (
	reportOutput string
	reportLimit  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export stored results and their summary to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.Store.List(cmd.Context(), reportLimit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		summary := aggregator.Aggregate(records)

		out := reportOutput
		if out == "" {
			out = fmt.Sprintf("voice_analysis_report_%s.xlsx", time.Now().Format("20060102_150405"))
		}
		if err := dataset.Export(out, records, summary, log); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d records (%d high priority) -> %s\n",
			summary.Total, len(summary.HighPriorityIDs), out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "xlsx report file (default voice_analysis_report_<timestamp>.xlsx)")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0, "newest records to include (0 = all)")
	rootCmd.AddCommand(reportCmd)
}
