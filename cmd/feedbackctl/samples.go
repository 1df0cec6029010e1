package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vanmitra-feedback/internal/dataset"
	"vanmitra-feedback/internal/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the demo voice notes used when no backend is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		set := samples.Default()
		if cfg.Pipeline.SamplesPath != "" {
			loaded, err := dataset.LoadSamples(cfg.Pipeline.SamplesPath)
			if err != nil {
				return err
			}
			set = loaded
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tLANGUAGE\tAUDIO FILE\tTRANSLATION")
		for _, sm := range set.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sm.Key, sm.Language, sm.AudioFile, truncate(sm.Translation, 60))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
