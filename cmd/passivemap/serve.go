// cmd/passivemap/serve.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"passivemap/internal/adapters/httpapi"
	"passivemap/internal/core/ports"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the aggregation over HTTP (POST /api/target)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			agg, err := buildAggregator(cfg, logger, ports.NopNotifier{})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.New(agg, httpapi.Options{
				Addr:            cfg.Server.Addr,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				CacheTTL:        cfg.Server.CacheTTL,
				Logger:          logger,
			})
			return srv.Run(ctx)
		},
	}
}
