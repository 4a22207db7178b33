// internal/sources/crtsh/crtsh.go
package crtsh

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/httpclient"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/registry"
	"passivemap/internal/platform/validator"
)

const (
	sourceName     = "crtsh"
	defaultBaseURL = "https://crt.sh"
	defaultTimeout = 10 * time.Second

	// Formato de not_before/not_after en crt.sh; sin zona, se interpreta UTC.
	timestampLayout = "2006-01-02T15:04:05"
)

// Auto-registro de la source al importar el package
func init() {
	if err := registry.Global().Register(
		sourceName,
		func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(Options{
				BaseURL:   registry.GetStringConfig(cfg.Custom, "base_url", defaultBaseURL),
				ProxyURL:  registry.GetStringConfig(cfg.Custom, "proxy_url", ""),
				UserAgent: registry.GetStringConfig(cfg.Custom, "user_agent", ""),
				Timeout:   cfg.Timeout,
				RateLimit: cfg.RateLimit,
			}, logger)
		},
		ports.SourceMetadata{
			Description:  "Certificate Transparency log search via crt.sh",
			Type:         domain.SourceTypeAPI,
			RequiresAuth: false,
			Priority:     40,
			Categories:   []domain.Category{domain.CategorySubdomains},
		},
	); err != nil {
		logx.New().Warn("failed to register crtsh source", "error", err.Error())
	}
}

// Options configura la fuente crt.sh.
type Options struct {
	BaseURL   string
	ProxyURL  string
	UserAgent string
	Timeout   time.Duration
	RateLimit float64
}

// CRT consulta los logs de Certificate Transparency en crt.sh.
type CRT struct {
	client  *httpclient.Client
	baseURL string
	logger  logx.Logger
}

// New falla solo si el cliente HTTP no puede construirse.
func New(opts Options, logger logx.Logger) (*CRT, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
		RateLimit: opts.RateLimit,
		ProxyURL:  opts.ProxyURL,
	}, logger)
	if err != nil {
		return nil, err
	}

	crt := &CRT{
		client:  client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		logger:  logger.With("source", sourceName),
	}
	crt.logger.Debug("source configured", "base_url", crt.baseURL, "client", client.String())
	return crt, nil
}

func (c *CRT) Name() string            { return sourceName }
func (c *CRT) Type() domain.SourceType { return domain.SourceTypeAPI }

// queries devuelve el valor de q ya codificado para cada variante: comodín
// directo, comodín de segundo nivel y el comodín escrito como %25. La
// tercera se envía tal cual, así crt.sh la decodifica a "%.root".
func queries(root string) []string {
	return []string{
		url.QueryEscape("%." + root),
		url.QueryEscape("%.%." + root),
		"%25." + url.QueryEscape(root),
	}
}

// Scan lanza las variantes en paralelo; una variante fallida solo deja un warning.
func (c *CRT) Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
	c.logger.Debug("starting crtsh scan", "target", target.Root)
	result := domain.NewPartialResult(sourceName)

	qs := queries(target.Root)
	batches := make([][]certRecord, len(qs))
	failures := make([]error, len(qs))

	var g errgroup.Group
	for i, q := range qs {
		g.Go(func() error {
			batches[i], failures[i] = c.fetch(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range failures {
		if err != nil {
			c.logger.Warn("crtsh query failed", "query", qs[i], "error", err.Error())
			result.AddWarning(fmt.Sprintf("query %q failed: %v", qs[i], err))
		}
	}

	seen := make(map[string]struct{})
	for _, records := range batches {
		for _, rec := range records {
			for _, sub := range c.subdomainsFrom(rec, target) {
				if _, dup := seen[sub.Name]; dup {
					continue
				}
				seen[sub.Name] = struct{}{}
				result.Subdomains = append(result.Subdomains, sub)
			}
		}
	}

	c.logger.Info("crtsh scan completed", "target", target.Root, "subdomains", len(result.Subdomains))
	return result, nil
}

// fetch recibe q ya codificado; no pasa por url.Values para no codificarlo dos veces.
func (c *CRT) fetch(ctx context.Context, query string) ([]certRecord, error) {
	var records []certRecord
	if err := c.client.GetJSON(ctx, c.baseURL+"/?q="+query+"&output=json", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// subdomainsFrom expande name_value (puede traer varios nombres separados
// por saltos de línea) y filtra los que están fuera del target.
func (c *CRT) subdomainsFrom(rec certRecord, target domain.Target) []domain.Subdomain {
	var out []domain.Subdomain
	for _, raw := range strings.Split(rec.NameValue, "\n") {
		name := validator.StripWildcard(strings.ToLower(strings.TrimSpace(raw)))
		if !acceptName(name, target.Root) {
			continue
		}
		out = append(out, domain.Subdomain{
			Name:      name,
			FirstSeen: parseTimestamp(rec.NotBefore),
			LastSeen:  parseTimestamp(rec.NotAfter),
			Source:    sourceName,
		})
	}
	return out
}

// acceptName: el nombre es el target o termina en ".<target>".
func acceptName(name, root string) bool {
	if name == "" {
		return false
	}
	return name == root || strings.HasSuffix(name, "."+root)
}

// parseTimestamp devuelve nil si el valor no encaja con timestampLayout.
func parseTimestamp(s string) *time.Time {
	t, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
