package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "deckroute"

// Backoff configures the delay between retries. The delay doubles with
// each attempt up to Max, and half of it is randomised.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// DefaultBackoff is used unless WithBackoff overrides it.
var DefaultBackoff = Backoff{Base: 500 * time.Millisecond, Max: 10 * time.Second}

// Delay returns the wait before retry number attempt (0-based).
// jitter must be in [0, 1).
func (b Backoff) Delay(attempt int, jitter float64) time.Duration {
	d := b.Max
	if attempt < 32 {
		if exp := b.Base << attempt; exp > 0 && exp < b.Max {
			d = exp
		}
	}
	half := d / 2
	return half + time.Duration(jitter*float64(half))
}

// Client sends JSON requests to one base URL.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	tokens     driven.TokenProvider
	maxRetries int
	backoff    Backoff
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenProvider adds a bearer token to every request.
func WithTokenProvider(tp driven.TokenProvider) Option {
	return func(c *Client) { c.tokens = tp }
}

// WithMaxRetries sets how often connection failures, 429 and 5xx
// responses are retried. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoff sets the retry backoff.
func WithBackoff(b Backoff) Option {
	return func(c *Client) {
		if b.Base > 0 && b.Max >= b.Base {
			c.backoff = b
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for baseURL. An empty base URL means the service
// is not configured.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: empty base URL", domain.ErrServiceNotConfigured)
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q is not absolute", domain.ErrInvalidInput, baseURL)
	}
	c := &Client{
		baseURL:   u,
		http:      http.DefaultClient,
		backoff:   DefaultBackoff,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// PostJSON sends in as a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// GetJSON decodes the response of a GET request into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encode request: %w", domain.ErrInvalidInput, err)
		}
		payload = b
	}
	endpoint := c.baseURL.JoinPath(path).String()

	for attempt := 0; ; attempt++ {
		err := c.send(ctx, method, endpoint, payload, out)
		if err == nil {
			return nil
		}
		if attempt >= c.maxRetries || !Retryable(err) {
			return err
		}

		wait := c.backoff.Delay(attempt, rand.Float64())
		var rl *RateLimitError
		if errors.As(err, &rl) && rl.After > wait {
			if rl.After > c.backoff.Max {
				return err
			}
			wait = rl.After
		}
		logger.Debug("%s %s: attempt %d failed (%v), retrying in %s", method, endpoint, attempt+1, err, wait.Round(time.Millisecond))
		if sleep(ctx, wait) != nil {
			return err
		}
	}
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("get access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response from %s: %w", domain.ErrInvalidResponse, endpoint, err)
	}
	return nil
}

// Retryable reports whether err is worth another attempt: connection
// failures, 429 and 5xx responses. Context errors never are.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) || IsServerError(err) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
