// Package rest implements the HTTP transport for the Clash of Clans API:
// bearer authentication with round-robin token rotation, client-side
// throttling, gzip response decoding, bounded retries on throttled
// responses and an optional TTL-bounded response cache.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Error is a non-2xx response from the API with its decoded error body.
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Reason is the machine-readable error reason, e.g. "notFound".
	Reason string
	// Message is the human-readable description, when the API sends one.
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("status %d (%s): %s", e.StatusCode, e.Reason, e.Message)
	case e.Reason != "":
		return fmt.Sprintf("status %d (%s)", e.StatusCode, e.Reason)
	default:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
}

// Hooks receive transport-level events. All fields are optional.
type Hooks struct {
	// RateLimitWait is called after a wait on the local rate limiter.
	RateLimitWait func(d time.Duration)

	// CacheHit is called when a GET is served from the response cache.
	CacheHit func()

	// CacheMiss is called when a GET misses the response cache.
	CacheMiss func()

	// Retry is called before a throttled request is retried.
	Retry func(path string)
}

// Options configures a Client.
type Options struct {
	// HTTPClient is the underlying HTTP client. If nil, one is created
	// with Timeout applied.
	HTTPClient *http.Client

	// BaseURL is the API root without a trailing slash.
	BaseURL string

	// Tokens holds the API tokens used round-robin across requests.
	// At least one is required.
	Tokens []string

	// RateLimit is the maximum number of requests per second across all
	// tokens. If 0, requests are not throttled locally.
	RateLimit float64

	// Timeout applies to the HTTP client created when HTTPClient is nil.
	Timeout time.Duration

	// CacheMaxEntries caps the GET response cache. If 0, caching is
	// disabled.
	CacheMaxEntries int

	// CacheTTL bounds the age of cached GET responses.
	CacheTTL time.Duration

	// MaxRetries is the number of retries after a throttled or
	// unavailable response.
	MaxRetries int

	// Hooks receive transport events.
	Hooks Hooks
}

// DefaultOptions returns default client options.
var DefaultOptions = Options{
	BaseURL:    "https://api.clashofclans.com/v1",
	RateLimit:  10,
	Timeout:    30 * time.Second,
	CacheTTL:   3 * time.Minute,
	MaxRetries: 1,
}

// Client is an HTTP client for the API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     []string
	tokenIdx   atomic.Uint64
	limiter    *rate.Limiter
	cache      *ResponseCache
	maxRetries int
	hooks      Hooks
	group      singleflight.Group
}

// New creates a new Client.
func New(optFns ...func(o *Options)) (*Client, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.Tokens) == 0 {
		return nil, errors.New("at least one API token is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		tokens:     opts.Tokens,
		maxRetries: opts.MaxRetries,
		hooks:      opts.Hooks,
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.CacheMaxEntries > 0 {
		c.cache = NewResponseCache(opts.CacheMaxEntries, opts.CacheTTL)
	}

	return c, nil
}

// Get performs a GET request and returns the raw response body. Responses
// are served from the cache when enabled, and concurrent requests for the
// same URL collapse into a single round trip. Callers must treat the
// returned bytes as read-only.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	requestURI := path
	if len(query) > 0 {
		requestURI += "?" + query.Encode()
	}

	if c.cache != nil {
		if data, ok := c.cache.Get(requestURI); ok {
			if c.hooks.CacheHit != nil {
				c.hooks.CacheHit()
			}
			return data, nil
		}

		if c.hooks.CacheMiss != nil {
			c.hooks.CacheMiss()
		}
	}

	data, err, _ := c.group.Do(requestURI, func() (any, error) {
		body, err := c.do(ctx, http.MethodGet, requestURI, nil)
		if err != nil {
			return nil, err
		}

		if c.cache != nil {
			c.cache.Set(requestURI, body)
		}

		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return data.([]byte), nil
}

// Post performs a POST request with a JSON-encoded body and returns the
// raw response body. POST responses are never cached.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, payload)
}

// CacheStats returns response cache hit and miss counts. Both are zero
// when caching is disabled.
func (c *Client) CacheStats() (hits, misses int64) {
	if c.cache == nil {
		return 0, 0
	}
	return c.cache.Stats()
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, requestURI string, body []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		data, delay, err := c.roundTrip(ctx, method, requestURI, body)
		if err == nil {
			return data, nil
		}

		var apiErr *Error
		if attempt < c.maxRetries && errors.As(err, &apiErr) && retryable(apiErr.StatusCode) {
			if c.hooks.Retry != nil {
				c.hooks.Retry(requestURI)
			}

			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}

			continue
		}

		return nil, err
	}
}

// wait blocks until the local rate limiter admits one request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}

	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if c.hooks.RateLimitWait != nil {
		c.hooks.RateLimitWait(time.Since(start))
	}

	return nil
}

// roundTrip performs a single HTTP exchange. On a non-2xx response it
// returns a *Error plus the delay to honor before a retry.
func (c *Client) roundTrip(ctx context.Context, method, requestURI string, body []byte) ([]byte, time.Duration, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestURI, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.nextToken())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	// Accept-Encoding is set explicitly above, which opts out of the
	// transport's transparent decompression.
	reader := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("open gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, retryAfter(resp.Header), decodeError(resp.StatusCode, data)
	}

	return data, 0, nil
}

// nextToken returns the next API token in round-robin order.
func (c *Client) nextToken() string {
	idx := c.tokenIdx.Add(1) - 1
	return c.tokens[idx%uint64(len(c.tokens))]
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// retryAfter reads the Retry-After header, falling back to one second.
func retryAfter(h http.Header) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	return time.Second
}

func decodeError(status int, body []byte) error {
	apiErr := &Error{StatusCode: status}

	var payload struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Reason = payload.Reason
		apiErr.Message = payload.Message
	}

	return apiErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
