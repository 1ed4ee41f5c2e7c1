// Package analytics is the client for the analytics service's chart
// endpoints.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/deckroute/internal/connectors/httpx"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.AnalyticsService = (*Client)(nil)

// Client calls the analytics service.
type Client struct {
	http *httpx.Client
}

// New creates an analytics client for baseURL.
func New(baseURL string, opts ...httpx.Option) (*Client, error) {
	hc, err := httpx.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// GenerateChart posts to the chart endpoint named by req.ChartType.
func (c *Client) GenerateChart(ctx context.Context, req *driven.ChartRequest) (*domain.GeneratedContent, error) {
	chartType := strings.TrimSpace(req.ChartType)
	if chartType == "" || strings.Contains(chartType, "/") {
		return nil, fmt.Errorf("%w: chart type %q", domain.ErrInvalidInput, req.ChartType)
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: chart has no data points", domain.ErrInvalidInput)
	}
	var resp httpx.GenerationResponse
	if err := c.http.PostJSON(ctx, driven.ChartEndpoint(chartType), req, &resp); err != nil {
		return nil, err
	}
	return resp.ToGenerated()
}
