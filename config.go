package clashgo

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds client configuration readable from the environment.
type Config struct {
	// Tokens are the API tokens, comma-separated in CLASHGO_TOKENS.
	Tokens []string `env:"CLASHGO_TOKENS" envSeparator:","`

	// BaseURL overrides the API base URL. Empty keeps the default.
	BaseURL string `env:"CLASHGO_BASE_URL"`

	// RateLimit is the client-side throttle in requests per second.
	RateLimit float64 `env:"CLASHGO_RATE_LIMIT" envDefault:"10"`

	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration `env:"CLASHGO_REQUEST_TIMEOUT" envDefault:"30s"`

	// CacheMaxEntries caps the GET response cache. Zero disables caching.
	CacheMaxEntries int `env:"CLASHGO_CACHE_MAX_ENTRIES" envDefault:"1024"`

	// CacheTTL bounds the age of cached responses.
	CacheTTL time.Duration `env:"CLASHGO_CACHE_TTL" envDefault:"3m"`

	// MaxRetries is the retry budget for throttled responses.
	MaxRetries int `env:"CLASHGO_MAX_RETRIES" envDefault:"1"`
}

// ConfigFromEnv loads client configuration from CLASHGO_* environment
// variables. Unset variables fall back to the defaults documented on the
// Config fields.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewFromEnv creates a Client configured from the environment. At least
// one token must be present in CLASHGO_TOKENS or ErrNoTokens is returned.
// Explicit options are applied after the environment and take precedence.
func NewFromEnv(optFns ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	tokens := trimTokens(cfg.Tokens)
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	base := []Option{
		WithRateLimit(cfg.RateLimit),
		WithRequestTimeout(cfg.RequestTimeout),
		WithResponseCache(cfg.CacheMaxEntries, cfg.CacheTTL),
		WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if len(tokens) > 1 {
		base = append(base, WithExtraTokens(tokens[1:]...))
	}

	return New(tokens[0], append(base, optFns...)...)
}

// trimTokens removes empty entries from a comma-split token list.
func trimTokens(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token != "" {
			result = append(result, token)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
