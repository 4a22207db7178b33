// Package wayback obtiene URLs históricas del índice CDX de la Wayback Machine.
package wayback

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/httpclient"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/validator"
)

const (
	sourceName     = "wayback"
	defaultBaseURL = "http://web.archive.org"
	defaultTimeout = 15 * time.Second
	defaultLimit   = 500

	endpointCDX = "/cdx/search/cdx"
)

// Options configura la source de la Wayback Machine.
type Options struct {
	BaseURL   string
	ProxyURL  string
	UserAgent string
	Limit     int
	Timeout   time.Duration
	RateLimit float64
}

// Wayback implementa ports.Source sobre la API CDX.
type Wayback struct {
	client  *httpclient.Client
	baseURL string
	limit   int
	logger  logx.Logger
}

func New(opts Options, logger logx.Logger) (*Wayback, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
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

	w := &Wayback{
		client:  client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		limit:   opts.Limit,
		logger:  logger.With("source", sourceName),
	}
	w.logger.Debug("source configured", "limit", w.limit, "client", client.String())
	return w, nil
}

func (w *Wayback) Name() string            { return sourceName }
func (w *Wayback) Type() domain.SourceType { return domain.SourceTypeAPI }

// urlPattern: comodín de subdominios para dominios, prefijo de ruta para IPs.
func urlPattern(target domain.Target) string {
	if target.IsIP() {
		return target.Root + "/*"
	}
	return "*." + target.Root
}

func (w *Wayback) cdxURL(target domain.Target) string {
	params := url.Values{}
	params.Set("url", urlPattern(target))
	params.Set("output", "json")
	params.Set("collapse", "urlkey")
	params.Set("limit", strconv.Itoa(w.limit))
	return w.baseURL + endpointCDX + "?" + params.Encode()
}

// Scan hace una única consulta CDX. Cualquier fallo upstream deja el
// resultado vacío con un warning.
func (w *Wayback) Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
	w.logger.Debug("starting wayback scan", "target", target.Root)
	result := domain.NewPartialResult(sourceName)

	var table [][]string
	if err := w.client.GetJSON(ctx, w.cdxURL(target), &table); err != nil {
		w.logger.Warn("wayback query failed", "target", target.Root, "error", err.Error())
		result.AddWarning(fmt.Sprintf("cdx query failed: %v", err))
		return result, nil
	}

	records, err := w.recordsFrom(table)
	if err != nil {
		w.logger.Warn("wayback table rejected", "target", target.Root, "error", err.Error())
		result.AddWarning(fmt.Sprintf("cdx table rejected: %v", err))
		return result, nil
	}
	result.URLs = records

	w.logger.Info("wayback scan completed", "target", target.Root, "urls", len(result.URLs))
	return result, nil
}

// recordsFrom interpreta la tabla CDX: la primera fila es la cabecera.
// El resultado va ordenado y sin registros repetidos.
func (w *Wayback) recordsFrom(table [][]string) ([]domain.URLRecord, error) {
	out := []domain.URLRecord{}
	if len(table) <= 1 {
		return out, nil
	}

	cols, err := lookupColumns(table[0])
	if err != nil {
		return out, err
	}

	for _, row := range table[1:] {
		if len(row) < cols.minRowLen() {
			continue
		}
		raw := row[cols.original]
		if !validator.IsURL(raw) {
			continue
		}

		seen := parseCDXTimestamp(row[cols.timestamp])
		rec := domain.URLRecord{
			URL:       raw,
			FirstSeen: seen,
			LastSeen:  seen,
			Source:    sourceName,
		}
		if seen != nil {
			rec.LastSeen = domain.TimePtr(*seen)
		}
		if cols.status >= 0 && cols.status < len(row) {
			rec.StatusCode = parseStatus(row[cols.status])
		}
		out = append(out, rec)
	}

	slices.SortFunc(out, compareRecords)
	return slices.CompactFunc(out, func(a, b domain.URLRecord) bool {
		return compareRecords(a, b) == 0
	}), nil
}

// compareRecords ordena por url, luego status y luego timestamp; los ausentes van primero.
func compareRecords(a, b domain.URLRecord) int {
	if c := strings.Compare(a.URL, b.URL); c != 0 {
		return c
	}
	if c := comparePtr(a.StatusCode, b.StatusCode, cmp.Compare[uint16]); c != 0 {
		return c
	}
	return comparePtr(a.FirstSeen, b.FirstSeen, func(x, y time.Time) int { return x.Compare(y) })
}

func comparePtr[T any](a, b *T, compare func(T, T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compare(*a, *b)
	}
}
