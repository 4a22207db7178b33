// Package shodan consulta la API de búsqueda de Shodan para obtener IPs,
// servicios expuestos y hostnames asociados al target.
package shodan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/httpclient"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/validator"
)

const (
	sourceName           = "shodan"
	defaultBaseURL       = "https://api.shodan.io"
	defaultTimeout       = 15 * time.Second
	defaultSearchTimeout = 10 * time.Second
	defaultDetailTimeout = 8 * time.Second
	defaultMaxHosts      = 10
)

// Options configura la source de Shodan.
type Options struct {
	APIKey        string
	BaseURL       string
	ProxyURL      string
	UserAgent     string
	Timeout       time.Duration
	SearchTimeout time.Duration
	DetailTimeout time.Duration

	// MaxHosts limita cuántas IPs distintas se enriquecen con /shodan/host/{ip}
	MaxHosts  int
	RateLimit float64
}

// Source implementa ports.Source sobre la API REST de Shodan.
type Source struct {
	api      *apiClient
	maxHosts int
	logger   logx.Logger
}

// New falla solo si el cliente HTTP no puede construirse (proxy inválido).
func New(opts Options, logger logx.Logger) (*Source, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = defaultSearchTimeout
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = defaultDetailTimeout
	}
	if opts.MaxHosts <= 0 {
		opts.MaxHosts = defaultMaxHosts
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

	srcLogger := logger.With("source", sourceName)
	srcLogger.Debug("source configured", "max_hosts", opts.MaxHosts, "client", client.String())
	return &Source{
		api: &apiClient{
			apiKey:        strings.TrimSpace(opts.APIKey),
			baseURL:       strings.TrimRight(opts.BaseURL, "/"),
			client:        client,
			searchTimeout: opts.SearchTimeout,
			detailTimeout: opts.DetailTimeout,
			logger:        srcLogger.With("component", "shodan-api"),
		},
		maxHosts: opts.MaxHosts,
		logger:   srcLogger,
	}, nil
}

func (s *Source) Name() string            { return sourceName }
func (s *Source) Type() domain.SourceType { return domain.SourceTypeAPI }

// searchQueries devuelve la consulta base y sus dos ampliaciones.
func searchQueries(target domain.Target) []string {
	base := "hostname:" + target.Root
	if target.IsIP() {
		base = "ip:" + target.Root
	}
	return []string{
		base,
		base + " port:80,443,8080,8443",
		base + " has:web",
	}
}

// Scan busca, enriquece las primeras IPs y deduplica. Los fallos de red
// quedan como warnings; sin API key devuelve un resultado vacío.
func (s *Source) Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
	result := domain.NewPartialResult(sourceName)

	if s.api.apiKey == "" {
		s.logger.Warn("shodan api key not configured, skipping")
		result.AddWarning("shodan api key not configured")
		return result, nil
	}

	s.logger.Debug("starting shodan scan", "target", target.Root)

	matches := s.searchAll(ctx, target, result)

	hosts := newHostIndex()
	for _, m := range matches {
		hosts.add(m.IPStr, m.Hostnames...)
	}

	enrich := hosts.order
	if len(enrich) > s.maxHosts {
		enrich = enrich[:s.maxHosts]
	}
	details := s.detailAll(ctx, enrich, result)

	var services []domain.Service
	for i, detail := range details {
		if detail == nil {
			continue
		}
		ip := enrich[i]
		hosts.add(ip, detail.Hostnames...)
		for _, d := range detail.Data {
			if svc, ok := newService(ip, d.Port, d.Product, d.Version, d.Transport, d.Data); ok {
				services = append(services, svc)
			}
		}
	}
	for _, m := range matches {
		if svc, ok := newService(m.IPStr, m.Port, m.Product, m.Version, m.Transport, m.Data); ok {
			services = append(services, svc)
		}
	}

	result.IPs = append(result.IPs, hosts.order...)
	result.Services = dedupServices(services)
	result.Subdomains = hosts.subdomains(target.Root)

	s.logger.Info("shodan scan completed",
		"target", target.Root,
		"ips", len(result.IPs),
		"services", len(result.Services),
		"subdomains", len(result.Subdomains),
	)
	return result, nil
}

// searchAll lanza las tres búsquedas en paralelo y concatena sus matches en
// orden de consulta. Una búsqueda fallida solo deja un warning.
func (s *Source) searchAll(ctx context.Context, target domain.Target, result *domain.PartialResult) []match {
	queries := searchQueries(target)
	responses := make([]*searchResponse, len(queries))
	failures := make([]error, len(queries))

	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			responses[i], failures[i] = s.api.search(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	var (
		matches []match
		total   int
	)
	for i, resp := range responses {
		if failures[i] != nil {
			s.logger.Warn("shodan search failed", "query", queries[i], "error", failures[i].Error())
			result.AddWarning(fmt.Sprintf("search %q failed: %v", queries[i], failures[i]))
			continue
		}
		total += resp.Total
		matches = append(matches, resp.Matches...)
	}

	// total suma estimaciones de consultas solapadas: es solo una cota superior
	s.logger.Debug("shodan search totals", "total_upper_bound", total, "matches", len(matches))
	return matches
}

// detailAll consulta el detalle de cada IP en paralelo; el slice devuelto
// conserva el orden de ips y tiene nil donde la consulta falló.
func (s *Source) detailAll(ctx context.Context, ips []string, result *domain.PartialResult) []*hostResponse {
	details := make([]*hostResponse, len(ips))
	failures := make([]error, len(ips))

	var g errgroup.Group
	for i, ip := range ips {
		g.Go(func() error {
			details[i], failures[i] = s.api.host(ctx, ip)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range failures {
		if err != nil {
			s.logger.Warn("shodan host detail failed", "ip", ips[i], "error", err.Error())
			result.AddWarning(fmt.Sprintf("host detail for %s failed: %v", ips[i], err))
		}
	}
	return details
}

// newService descarta puertos fuera de rango e IPs vacías.
func newService(ip string, port int, product, version, transport, banner string) (domain.Service, bool) {
	ip = validator.NormalizeIP(ip)
	if ip == "" || !validator.IsPort(port) {
		return domain.Service{}, false
	}

	svc := domain.Service{
		IP:      ip,
		Port:    uint16(port),
		Service: domain.ServiceLabel(product, version, transport),
		Source:  sourceName,
	}
	if banner != "" {
		svc.Banner = domain.StringPtr(banner)
	}
	return svc, true
}

func dedupServices(services []domain.Service) []domain.Service {
	seen := make(map[string]struct{}, len(services))
	out := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		key := svc.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, svc)
	}
	return out
}

// hostIndex mantiene IP -> hostnames en orden de primera aparición.
type hostIndex struct {
	order     []string
	hostnames map[string][]string
}

func newHostIndex() *hostIndex {
	return &hostIndex{hostnames: make(map[string][]string)}
}

func (h *hostIndex) add(ip string, names ...string) {
	ip = validator.NormalizeIP(ip)
	if ip == "" {
		return
	}
	if _, ok := h.hostnames[ip]; !ok {
		h.order = append(h.order, ip)
		h.hostnames[ip] = nil
	}
	h.hostnames[ip] = append(h.hostnames[ip], names...)
}

// subdomains emite cada hostname que contiene root sin ser root, una vez por nombre.
func (h *hostIndex) subdomains(root string) []domain.Subdomain {
	seen := make(map[string]struct{})
	out := []domain.Subdomain{}
	for _, ip := range h.order {
		for _, raw := range h.hostnames[ip] {
			name := validator.NormalizeDomain(raw)
			if name == root || !strings.Contains(name, root) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, domain.Subdomain{
				Name:   name,
				IP:     domain.StringPtr(ip),
				Source: sourceName,
			})
		}
	}
	return out
}
