// cmd/passivemap/root.go
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"passivemap/internal/core/ports"
	"passivemap/internal/core/usecases"
	"passivemap/internal/platform/config"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/registry"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "passivemap",
		Short: "Passive reconnaissance aggregator for domains and IPs",
		Long: `PassiveMap queries certificate transparency logs, Shodan and the Wayback
Machine concurrently, generates search-engine dorks, and merges everything
into a single deduplicated document.` + "\n" + config.EnvHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newScanCmd(),
		newServeCmd(),
		newSourcesCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig resuelve la configuración efectiva a partir de los flags ya parseados.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) logx.Logger {
	logger := logx.New()
	logger.SetLevel(logx.ParseLevel(cfg.LogLevel))
	return logger
}

// buildAggregator construye las fuentes habilitadas desde el registry global.
func buildAggregator(cfg config.Config, logger logx.Logger, notifier ports.Notifier) (*usecases.Aggregator, error) {
	sources, err := registry.Global().Build(cfg.SourceConfigs(), logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build sources")
	}

	logger.Debug("sources built", "count", len(sources))

	return usecases.NewAggregator(usecases.AggregatorOptions{
		Sources:  sources,
		Logger:   logger,
		Notifier: notifier,
	})
}
