package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/outliner/internal/config"
	"github.com/tsawler/outliner/internal/metrics"
	"github.com/tsawler/outliner/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var flags config.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve outlines over HTTP",
		Long: `serve answers POST /v1/outline with the artifact of the request body.
GET /healthz reports liveness and GET /metrics exposes Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(flags, root.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				MaxPages:     cfg.MaxPages,
				MaxFileBytes: cfg.MaxFileBytes,
				Heading:      cfg.LayoutHeadingConfig(),
				Navigation:   cfg.NavigationMode(),
				Timeout:      cfg.Timeout,
				Metrics:      metrics.NewMetrics(metrics.InstanceInfo{Version: version, IncludeRuntime: true}),
				Logger:       log.Logger,
			})
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.Addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	f.DurationVar(&flags.Timeout, "timeout", 0, "per-request extraction timeout, 0 for none")
	f.StringVar(&flags.Navigation, "navigation", "", "HTML boilerplate filter: none, explicit, standard or aggressive")

	return cmd
}
