package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vanmitra-feedback/internal/app"
	"vanmitra-feedback/internal/config"
	"vanmitra-feedback/internal/logger"
)

var (
	cfg     *config.Config
	log     *logger.Logger
	offline bool
)

var rootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Analyze citizen voice feedback from the command line",
	Long:  "Runs voice notes through transcription, translation, sentiment, keyword, category, summary, priority and insight stages, and manages the stored results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if offline {
			c.Pipeline.EnableBackends = false
		}
		cfg = c
		// stdout carries command output; logs go to stderr.
		log = logger.NewWithOptions(logger.Options{
			Environment: cfg.Environment,
			Level:       cfg.Log.Level,
			Output:      cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "use built-in fallbacks for every model backend")
}

func buildApp(cmd *cobra.Command) (*app.App, error) {
	a, err := app.Build(cmd.Context(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
