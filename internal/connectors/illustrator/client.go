// Package illustrator is the client for the illustrator service's pyramid
// endpoint.
package illustrator

import (
	"context"
	"fmt"

	"github.com/custodia-labs/deckroute/internal/connectors/httpx"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PyramidService = (*Client)(nil)

// Client calls the illustrator service.
type Client struct {
	http *httpx.Client
}

// New creates an illustrator client for baseURL.
func New(baseURL string, opts ...httpx.Option) (*Client, error) {
	hc, err := httpx.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// GeneratePyramid posts to the pyramid endpoint.
func (c *Client) GeneratePyramid(ctx context.Context, req *driven.PyramidRequest) (*domain.GeneratedContent, error) {
	if req.NumLevels < 1 {
		return nil, fmt.Errorf("%w: pyramid needs at least one level", domain.ErrInvalidInput)
	}
	var resp httpx.GenerationResponse
	if err := c.http.PostJSON(ctx, driven.PyramidEndpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.ToGenerated()
}
