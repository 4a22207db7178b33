// internal/sources/shodan/registry.go
package shodan

import (
	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/registry"
)

// Auto-registro: se ejecuta al importar el package.
func init() {
	if err := registry.Global().Register(
		sourceName,
		factory,
		ports.SourceMetadata{
			Description:  "Exposed hosts and services via the Shodan search API",
			Type:         domain.SourceTypeAPI,
			RequiresAuth: true,
			Priority:     30,
			Categories: []domain.Category{
				domain.CategorySubdomains,
				domain.CategoryIPs,
				domain.CategoryServices,
			},
		},
	); err != nil {
		logx.New().Warn("failed to register shodan source", "error", err.Error())
	}
}

// factory construye la source desde SourceConfig usando los helpers tipados del registry.
// La ausencia de api_key no es un error de construcción: Scan degrada con un warning.
func factory(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
	opts := Options{
		APIKey:        registry.GetStringConfig(cfg.Custom, "api_key", ""),
		BaseURL:       registry.GetStringConfig(cfg.Custom, "base_url", defaultBaseURL),
		ProxyURL:      registry.GetStringConfig(cfg.Custom, "proxy_url", ""),
		UserAgent:     registry.GetStringConfig(cfg.Custom, "user_agent", ""),
		Timeout:       cfg.Timeout,
		SearchTimeout: registry.GetDurationConfig(cfg.Custom, "search_timeout", defaultSearchTimeout),
		DetailTimeout: registry.GetDurationConfig(cfg.Custom, "detail_timeout", defaultDetailTimeout),
		MaxHosts:      registry.GetIntConfig(cfg.Custom, "max_hosts", defaultMaxHosts),
		RateLimit:     cfg.RateLimit,
	}

	logger.Debug("creating shodan source",
		"timeout", opts.Timeout.String(),
		"max_hosts", opts.MaxHosts,
		"api_key_provided", opts.APIKey != "",
	)

	return New(opts, logger)
}
