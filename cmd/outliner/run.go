package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/outliner/internal/batch"
	"github.com/tsawler/outliner/internal/config"
	"github.com/tsawler/outliner/internal/metrics"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var flags config.Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Outline every PDF and HTML file of a directory",
		Long: `run writes one <name>.json artifact per PDF or HTML file of the input
directory. Documents that cannot be read get an artifact with an "error"
key; only setup problems make the command fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(flags, root.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runBatch(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documents outlined, %d degraded, in %s\n",
				summary.Succeeded, summary.Degraded, summary.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.InputDir, "input", "i", "", "input directory (default "+config.DefaultInputDir+")")
	f.StringVarP(&flags.OutputDir, "output", "o", "", "output directory (default "+config.DefaultOutputDir+")")
	f.IntVarP(&flags.Workers, "workers", "w", 0, fmt.Sprintf("documents processed in parallel (default %d)", config.DefaultWorkers))
	f.IntVar(&flags.MaxPages, "max-pages", 0, fmt.Sprintf("pages read per document (default %d)", config.DefaultMaxPages))
	f.DurationVar(&flags.Timeout, "timeout", 0, "per-document timeout, 0 for none")
	f.StringVar(&flags.Navigation, "navigation", "", "HTML boilerplate filter: none, explicit, standard or aggressive")
	f.StringVar(&flags.MetricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file after the run")

	return cmd
}

func runBatch(ctx context.Context, cfg config.Config) (*batch.Summary, error) {
	log.Debug().
		Str("input", cfg.InputDir).
		Str("output", cfg.OutputDir).
		Int("workers", cfg.Workers).
		Msg("starting run")

	return batch.Run(ctx, batch.Options{
		InputDir:     cfg.InputDir,
		OutputDir:    cfg.OutputDir,
		Workers:      cfg.Workers,
		Timeout:      cfg.Timeout,
		MaxPages:     cfg.MaxPages,
		MaxFileBytes: cfg.MaxFileBytes,
		Heading:      cfg.LayoutHeadingConfig(),
		Navigation:   cfg.NavigationMode(),
		Metrics:      metrics.NewMetrics(metrics.InstanceInfo{Version: version}),
		MetricsFile:  cfg.MetricsFile,
		Logger:       log.Logger,
	})
}
