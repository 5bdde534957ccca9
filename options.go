package clashgo

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hupe1980/clashgo/internal/rest"
)

type options struct {
	httpClient       *http.Client
	baseURL          string
	extraTokens      []string
	rateLimit        float64
	requestTimeout   time.Duration
	cacheMaxEntries  int
	cacheTTL         time.Duration
	maxRetries       int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Client constructor behavior.
type Option func(*options)

// WithHTTPClient configures the underlying HTTP client. Use this to plug
// in custom transports or proxies. If set, WithRequestTimeout is ignored.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithBaseURL overrides the API base URL. Useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithExtraTokens adds API tokens beyond the primary one. Requests rotate
// round-robin across all tokens, multiplying the effective rate budget the
// API grants per token.
func WithExtraTokens(tokens ...string) Option {
	return func(o *options) {
		o.extraTokens = tokens
	}
}

// WithRateLimit configures the client-side request throttle in requests
// per second. Pass 0 to disable local throttling and rely on the API's
// own limiter responses.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(o *options) {
		o.rateLimit = requestsPerSecond
	}
}

// WithRequestTimeout bounds each HTTP request. Ignored when a custom HTTP
// client is supplied.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = timeout
	}
}

// WithResponseCache tunes the in-memory GET response cache. maxEntries
// caps the number of cached responses and ttl bounds their age. Pass
// maxEntries <= 0 to disable caching entirely.
//
// The cache is keyed by request URL, so repeated reads of the same clan or
// player within the TTL cost no network round trip.
func WithResponseCache(maxEntries int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheMaxEntries = maxEntries
		o.cacheTTL = ttl
	}
}

// WithMaxRetries configures how many times a throttled or unavailable
// response is retried before the error is returned.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// request volume, latency and cache efficiency. Pass nil to disable
// metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &clashgo.BasicMetricsCollector{}
//	client, _ := clashgo.New(token, clashgo.WithMetricsCollector(metrics))
//	// ... use client ...
//	stats := metrics.GetStats()
//	fmt.Printf("Requests: %d, Avg latency: %dns\n", stats.RequestCount, stats.RequestAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := clashgo.NewJSONLogger(slog.LevelInfo)
//	client, _ := clashgo.New(token, clashgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		baseURL:          rest.DefaultOptions.BaseURL,
		rateLimit:        rest.DefaultOptions.RateLimit,
		requestTimeout:   rest.DefaultOptions.Timeout,
		cacheMaxEntries:  1024,
		cacheTTL:         rest.DefaultOptions.CacheTTL,
		maxRetries:       rest.DefaultOptions.MaxRetries,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
