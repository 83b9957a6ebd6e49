// ABOUTME: Configuration options for the newsreader library client
// ABOUTME: Provides functional options for sources, transport, logging and merge behaviour

package newsreader

import (
	"time"

	"golang.org/x/time/rate"

	"newsreader-app/core/interfaces"
	stdhttp "newsreader-app/infrastructure/http/standard"
)

// Config holds the configuration for the client
type Config struct {
	Sources        []Source
	HTTPClient     interfaces.HTTPClient
	Logger         interfaces.Logger
	Strategy       MergeStrategy
	MaxConcurrency int
	FetchTimeout   time.Duration

	// RateLimit is fetches per second; zero means unlimited
	RateLimit rate.Limit
	RateBurst int

	LenientTimestamps bool
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithSources replaces the default feeds
func WithSources(sources ...Source) Option {
	return func(c *Config) error {
		for _, s := range sources {
			if err := s.Validate(); err != nil {
				return classify(err)
			}
		}
		c.Sources = append([]Source(nil), sources...)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		if client == nil {
			return ErrNoHTTPClient
		}
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithMergeStrategy selects concatenation or recency ordering
func WithMergeStrategy(strategy MergeStrategy) Option {
	return func(c *Config) error {
		if !strategy.Valid() {
			return NewError(ErrorTypeValidation, "unknown merge strategy "+string(strategy))
		}
		c.Strategy = strategy
		return nil
	}
}

// WithMaxConcurrency bounds how many sources are processed at once
func WithMaxConcurrency(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewError(ErrorTypeValidation, "max concurrency must be at least 1")
		}
		c.MaxConcurrency = n
		return nil
	}
}

// WithFetchTimeout bounds each source; zero disables the bound
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return NewError(ErrorTypeValidation, "fetch timeout cannot be negative")
		}
		c.FetchTimeout = d
		return nil
	}
}

// WithRateLimit throttles outgoing fetches to perSecond with the given burst
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Config) error {
		if perSecond < 0 {
			return NewError(ErrorTypeValidation, "rate limit cannot be negative")
		}
		c.RateLimit = rate.Limit(perSecond)
		c.RateBurst = burst
		return nil
	}
}

// WithLenientTimestamps keeps entries with an unparseable <updated> at the
// epoch instead of failing their feed
func WithLenientTimestamps(enabled bool) Option {
	return func(c *Config) error {
		c.LenientTimestamps = enabled
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Sources:        DefaultSources(),
		HTTPClient:     stdhttp.NewStandardHTTPClient(DefaultFetchTimeout, stdhttp.WithUserAgent(DefaultUserAgent)),
		Logger:         interfaces.NopLogger{},
		Strategy:       MergeConcatenate,
		MaxConcurrency: DefaultMaxConcurrency,
		FetchTimeout:   DefaultFetchTimeout,
		RateBurst:      1,
	}
}
