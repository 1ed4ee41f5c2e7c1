package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func tokenServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_ = r.ParseForm()
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnonymous(t *testing.T) {
	p := Anonymous{}

	token, err := p.GetToken(context.Background())

	require.NoError(t, err)
	assert.Empty(t, token)
	assert.True(t, p.IsAuthenticated())
}

func TestClientCredentialsProvider_GetToken(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls)
	p, err := NewClientCredentialsProvider(domain.AuthSettings{
		TokenURL:     srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		Scopes:       []string{"generate"},
	})
	require.NoError(t, err)
	assert.False(t, p.IsAuthenticated())

	token, err := p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	token, err = p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "token is cached until it expires")
	assert.True(t, p.IsAuthenticated())
}

func TestClientCredentialsProvider_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()
	p, err := NewClientCredentialsProvider(domain.AuthSettings{TokenURL: srv.URL, ClientID: "id", ClientSecret: "bad"})
	require.NoError(t, err)

	_, err = p.GetToken(context.Background())

	assert.Error(t, err)
	assert.False(t, p.IsAuthenticated())
}

func TestNewTokenProvider(t *testing.T) {
	p, err := NewTokenProvider(domain.AuthSettings{})
	require.NoError(t, err)
	assert.IsType(t, Anonymous{}, p)

	p, err = NewTokenProvider(domain.AuthSettings{TokenURL: "http://auth.local/token", ClientID: "id", ClientSecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &ClientCredentialsProvider{}, p)

	_, err = NewClientCredentialsProvider(domain.AuthSettings{ClientID: "id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
