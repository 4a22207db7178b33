// cmd/passivemap/scan.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"passivemap/internal/adapters/output"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/config"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/ui"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [target]",
		Short: "Aggregate passive intelligence for a domain or IP",
		Example: `  passivemap scan example.com
  passivemap scan -t 93.184.216.34 -o json --out-dir ./out`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Target = args[0]
			}
			if cfg.Target == "" {
				return errors.Wrap(errors.ErrInvalidInput, "target is required (passivemap scan <target>)")
			}
			return runScan(cmd.Context(), cfg)
		},
	}
}

func runScan(parent context.Context, cfg config.Config) error {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter, err := output.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	// El progreso va a stderr para que stdout quede limpio con -o json.
	var notifier ports.Notifier = ports.NopNotifier{}
	if cfg.Output.Format == config.FormatTable {
		notifier = ui.NewPTermPresenter(os.Stderr)
	}

	agg, err := buildAggregator(cfg, logger, notifier)
	if err != nil {
		return err
	}

	result, err := agg.Aggregate(ctx, cfg.Target)
	if err != nil {
		return err
	}

	if err := exporter.Export(os.Stdout, result); err != nil {
		return err
	}

	if cfg.Output.Dir != "" {
		path, err := output.WriteFile(cfg.Output.Dir, result)
		if err != nil {
			return err
		}
		logger.Info("result written", "path", path)
	}
	return nil
}
