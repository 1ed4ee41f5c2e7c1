package driven

import "context"

// TokenProvider supplies the bearer token sent to the generation
// services. An empty token means the request goes out unauthenticated.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
	// IsAuthenticated reports whether a usable token is held.
	IsAuthenticated() bool
}
