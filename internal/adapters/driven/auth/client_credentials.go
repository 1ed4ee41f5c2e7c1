package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure ClientCredentialsProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ClientCredentialsProvider)(nil)

// ClientCredentialsProvider obtains access tokens with the OAuth2 client
// credentials grant. Tokens are cached and refreshed when they expire.
type ClientCredentialsProvider struct {
	config *clientcredentials.Config

	mu     sync.Mutex
	source oauth2.TokenSource
	last   *oauth2.Token
}

// NewClientCredentialsProvider creates a provider from auth settings.
func NewClientCredentialsProvider(settings domain.AuthSettings) (*ClientCredentialsProvider, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: token URL, client ID and client secret are required", domain.ErrInvalidInput)
	}
	return &ClientCredentialsProvider{
		config: &clientcredentials.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			TokenURL:     settings.TokenURL,
			Scopes:       settings.Scopes,
		},
	}, nil
}

// GetToken returns a valid access token, fetching a new one if needed.
func (p *ClientCredentialsProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Refreshes reuse this context, so detach it from the caller's deadline.
	if p.source == nil {
		p.source = p.config.TokenSource(context.WithoutCancel(ctx))
	}
	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("client credentials token: %w", err)
	}
	p.last = token
	return token.AccessToken, nil
}

// IsAuthenticated returns true once a valid token has been obtained.
func (p *ClientCredentialsProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.Valid()
}
