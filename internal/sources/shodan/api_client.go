// internal/sources/shodan/api_client.go
package shodan

import (
	"context"
	"net/url"
	"time"

	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/httpclient"
	"passivemap/internal/platform/logx"
)

const (
	endpointHostSearch = "/shodan/host/search"
	endpointHostInfo   = "/shodan/host/"
)

// apiClient envuelve la API REST de Shodan. La key viaja como query
// parameter y httpclient la redacta en logs y errores.
type apiClient struct {
	apiKey        string
	baseURL       string
	client        *httpclient.Client
	searchTimeout time.Duration
	detailTimeout time.Duration
	logger        logx.Logger
}

// search consulta /shodan/host/search con su propio deadline.
func (c *apiClient) search(ctx context.Context, query string) (*searchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("query", query)

	c.logger.Debug("searching hosts", "query", query)

	var resp searchResponse
	if err := c.client.GetJSON(ctx, c.baseURL+endpointHostSearch+"?"+params.Encode(), &resp); err != nil {
		return nil, errors.Wrapf(err, "search %q", query)
	}

	c.logger.Debug("parsed search results",
		"query", query,
		"total_estimate", resp.Total,
		"matches", len(resp.Matches),
	)
	return &resp, nil
}

// host obtiene el detalle de una IP concreta.
func (c *apiClient) host(ctx context.Context, ip string) (*hostResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.detailTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("key", c.apiKey)

	c.logger.Debug("fetching host info", "ip", ip)

	var resp hostResponse
	if err := c.client.GetJSON(ctx, c.baseURL+endpointHostInfo+url.PathEscape(ip)+"?"+params.Encode(), &resp); err != nil {
		return nil, errors.Wrapf(err, "host %s", ip)
	}
	return &resp, nil
}
