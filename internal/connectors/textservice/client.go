// Package textservice is the client for the text service's content and
// hero endpoints.
package textservice

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/connectors/httpx"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ContentService = (*Client)(nil)
	_ driven.HeroService    = (*Client)(nil)
)

// Client calls the text service.
type Client struct {
	http *httpx.Client
}

// New creates a text service client for baseURL.
func New(baseURL string, opts ...httpx.Option) (*Client, error) {
	hc, err := httpx.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// GenerateContent posts a variant-specific request to the content endpoint.
func (c *Client) GenerateContent(ctx context.Context, req *driven.ContentRequest) (*domain.GeneratedContent, error) {
	return c.post(ctx, driven.ContentEndpoint, req)
}

// GenerateHero posts to the title, section or closing endpoint.
func (c *Client) GenerateHero(
	ctx context.Context,
	class domain.Classification,
	req *driven.HeroRequest,
) (*domain.GeneratedContent, error) {
	return c.post(ctx, driven.HeroEndpoint(class), req)
}

func (c *Client) post(ctx context.Context, endpoint string, req any) (*domain.GeneratedContent, error) {
	var resp httpx.GenerationResponse
	if err := c.http.PostJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.ToGenerated()
}
