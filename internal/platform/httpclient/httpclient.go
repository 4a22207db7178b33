// Package httpclient provides a timeout-bounded HTTP client with outbound rate
// limiting and JSON helpers. Failures are classified with the platform error
// taxonomy so callers can degrade without inspecting transport details.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
)

// DefaultUserAgent se envía cuando Config.UserAgent está vacío.
const DefaultUserAgent = "PassiveMap/1.0"

// Query parameters whose values never reach the logs.
var sensitiveParams = []string{"key", "apikey", "api_key", "token"}

// Client is a thin wrapper over http.Client. It does not retry.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout bounds the whole exchange, body included.
	// Default: 15 seconds
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// RateLimit is the maximum requests per second; 0 disables limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// ProxyURL routes every request through an HTTP(S) proxy when set.
	ProxyURL string

	// MaxBodyBytes caps how much of a response body is read.
	// Default: 32 MiB
	MaxBodyBytes int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		UserAgent:      DefaultUserAgent,
		RateLimitBurst: 1,
		MaxBodyBytes:   32 << 20,
	}
}

// New creates a client. It fails only on an unusable proxy URL, reported
// as an internal fault.
func New(config Config, logger logx.Logger) (*Client, error) {
	def := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = def.RateLimitBurst
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = def.MaxBodyBytes
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.ProxyURL != "" {
		proxy, err := url.Parse(config.ProxyURL)
		if err != nil || proxy.Scheme == "" || proxy.Host == "" {
			if err == nil {
				err = errors.Errorf("missing scheme or host")
			}
			return nil, errors.Mark(errors.ErrInternalFault, errors.Wrapf(err, "invalid proxy url %q", config.ProxyURL))
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout, Transport: transport},
		rateLimiter: limiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

// Get performs a single GET request. Transport failures and timeouts are
// marked ErrUpstreamUnavailable. The caller owns the response body.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	safeURL := RedactURL(rawURL)

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Mark(errors.ErrUpstreamUnavailable, errors.Wrap(err, "rate limit wait failed"))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Mark(errors.ErrInternalFault, errors.Wrapf(err, "failed to create request for %s", safeURL))
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	c.logger.Debug("HTTP request", "method", http.MethodGet, "url", safeURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		// *url.Error repite la URL completa; la sustituimos por la redactada
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		c.logger.Debug("HTTP request failed",
			"url", safeURL,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return nil, errors.Mark(errors.ErrUpstreamUnavailable, errors.Wrapf(err, "GET %s", safeURL))
	}

	c.logger.Debug("HTTP response received",
		"url", safeURL,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// FetchJSON performs a GET with an Accept: application/json header and
// returns the body of a 2xx response.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.Get(ctx, rawURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}

	if err := CheckStatus(resp); err != nil {
		drain(resp)
		return nil, errors.Wrapf(err, "request to %s failed", RedactURL(rawURL))
	}

	body, err := readBody(resp, c.config.MaxBodyBytes)
	if err != nil {
		return nil, errors.Mark(errors.ErrUpstreamUnavailable, err)
	}
	return body, nil
}

// GetJSON fetches rawURL and decodes the body into v. Decode failures are
// marked ErrUpstreamMalformed.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.FetchJSON(ctx, rawURL)
	if err != nil {
		return err
	}
	return DecodeJSON(body, v)
}

// DecodeJSON unmarshals body into v, classifying failures as malformed.
func DecodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Mark(errors.ErrUpstreamMalformed, errors.Wrap(err, "failed to decode JSON payload"))
	}
	return nil
}

// CheckStatus returns nil for 2xx and an ErrUpstreamUnavailable otherwise.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.Mark(errors.ErrInternalFault, errors.New("response is nil"))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errors.Mark(errors.ErrUpstreamUnavailable, &StatusError{Code: resp.StatusCode})
}

// StatusError carries a non-success HTTP status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// RedactURL masks credential-like query parameters.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "(unparsable url)"
	}
	q := u.Query()
	changed := false
	for _, p := range sensitiveParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, rate_limit=%.1f/s, proxy=%t}",
		c.config.Timeout,
		c.config.RateLimit,
		strings.TrimSpace(c.config.ProxyURL) != "",
	)
}

func readBody(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
