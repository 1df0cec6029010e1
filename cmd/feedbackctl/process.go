package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vanmitra-feedback/internal/pipeline"
	"vanmitra-feedback/internal/types"
)

var processCmd = &cobra.Command{
	Use:   "process <audio-ref>...",
	Short: "Process one or more voice notes and print the records as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records := pipeline.RunBatch(ctx, a.Processor, args, cfg.Pipeline.BatchConcurrency, log)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("write records: %w", err)
		}

		failed := 0
		for _, r := range records {
			if r.ProcessingStatus == types.StatusFailed {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d records failed", failed, len(records))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
