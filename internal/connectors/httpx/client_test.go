package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

var fastBackoff = Backoff{Base: time.Millisecond, Max: 5 * time.Millisecond}

type staticToken string

func (s staticToken) GetToken(context.Context) (string, error) { return string(s), nil }
func (s staticToken) IsAuthenticated() bool                    { return true }

func TestNew(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, domain.ErrServiceNotConfigured)

	_, err = New("localhost:8000")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := New("http://localhost:8000/base")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/base", c.BaseURL())
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/base/v1.2/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":"ok"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/base", WithTokenProvider(staticToken("tok")))
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.PostJSON(context.Background(), "/v1.2/generate", map[string]string{"a": "b"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Echo)
}

func TestClient_StatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":422,"message":"variant_id unknown"}}`))
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithMaxRetries(3), WithBackoff(fastBackoff))
	require.NoError(t, err)

	err = c.PostJSON(context.Background(), "/x", struct{}{}, nil)

	var gerr *googleapi.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 422, gerr.Code)
	assert.False(t, Retryable(err))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithMaxRetries(2), WithBackoff(fastBackoff))
	require.NoError(t, err)

	require.NoError(t, c.GetJSON(context.Background(), "/x", &map[string]any{}))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_NoRetriesByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/x", nil)

	assert.True(t, IsServerError(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithMaxRetries(2), WithBackoff(fastBackoff))
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/x", nil)

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30*time.Second, rl.RetryAfter())
	assert.True(t, IsRateLimited(err))

	var gerr *googleapi.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusTooManyRequests, gerr.Code)
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/x", &map[string]any{})

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestClient_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithMaxRetries(3), WithBackoff(fastBackoff))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.GetJSON(ctx, "/x", nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c, err := New(url, WithMaxRetries(1), WithBackoff(fastBackoff))
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/x", nil)

	require.Error(t, err)
	assert.True(t, Retryable(err))
}

func TestBackoff_Delay(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Max: time.Second}

	assert.Equal(t, 50*time.Millisecond, b.Delay(0, 0))
	assert.Equal(t, 100*time.Millisecond, b.Delay(1, 0))
	assert.Equal(t, 500*time.Millisecond, b.Delay(10, 0))
	assert.Equal(t, 500*time.Millisecond, b.Delay(63, 0))
	assert.Less(t, b.Delay(2, 0.99), 400*time.Millisecond)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5*time.Second, parseRetryAfter("5", now))
	assert.Zero(t, parseRetryAfter("", now))
	assert.Zero(t, parseRetryAfter("-3", now))
	assert.Zero(t, parseRetryAfter("soon", now))
	assert.Equal(t, time.Minute, parseRetryAfter(now.Add(time.Minute).Format(http.TimeFormat), now))
}

func TestRetryable(t *testing.T) {
	assert.False(t, Retryable(nil))
	assert.False(t, Retryable(context.Canceled))
	assert.False(t, Retryable(errors.New("boom")))
	assert.True(t, Retryable(&googleapi.Error{Code: 503}))
	assert.False(t, Retryable(&googleapi.Error{Code: 400}))
}
