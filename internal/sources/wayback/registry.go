// internal/sources/wayback/registry.go
package wayback

import (
	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/registry"
)

func init() {
	if err := registry.Global().Register(
		sourceName,
		func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(Options{
				BaseURL:   registry.GetStringConfig(cfg.Custom, "base_url", defaultBaseURL),
				ProxyURL:  registry.GetStringConfig(cfg.Custom, "proxy_url", ""),
				UserAgent: registry.GetStringConfig(cfg.Custom, "user_agent", ""),
				Limit:     registry.GetIntConfig(cfg.Custom, "limit", defaultLimit),
				Timeout:   cfg.Timeout,
				RateLimit: cfg.RateLimit,
			}, logger)
		},
		ports.SourceMetadata{
			Description:  "Historical URLs from the Wayback Machine CDX index",
			Type:         domain.SourceTypeAPI,
			RequiresAuth: false,
			Priority:     20,
			Categories:   []domain.Category{domain.CategoryURLs},
		},
	); err != nil {
		logx.New().Warn("failed to register wayback source", "error", err.Error())
	}
}
