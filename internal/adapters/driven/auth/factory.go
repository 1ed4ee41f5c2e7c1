package auth

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

var _ driven.TokenProvider = Anonymous{}

// Anonymous sends no Authorization header. It is used for services
// reachable without credentials, typically on a private network.
type Anonymous struct{}

func (Anonymous) GetToken(context.Context) (string, error) { return "", nil }
func (Anonymous) IsAuthenticated() bool                    { return true }

// NewTokenProvider picks the client-credentials flow when a token URL and
// client ID are configured, and Anonymous otherwise.
func NewTokenProvider(settings domain.AuthSettings) (driven.TokenProvider, error) {
	if !settings.IsConfigured() {
		return Anonymous{}, nil
	}
	return NewClientCredentialsProvider(settings)
}
