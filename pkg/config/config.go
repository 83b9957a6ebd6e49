// ABOUTME: Configuration management with defaults, an optional TOML file and environment overrides
// ABOUTME: Defines configuration structures for feeds, fetching, merging, logging, server and cache

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"newsreader-app/core/domain"
)

// Default feeds read when nothing else is configured
var DefaultFeeds = []domain.FeedSource{
	{Name: "Google News", URL: "https://news.google.com/?output=atom"},
	{Name: "The Register", URL: "https://www.theregister.co.uk/headlines.atom"},
}

// Config holds all application configuration
type Config struct {
	// Feeds lists the sources read each cycle
	Feeds []domain.FeedSource `toml:"feeds"`

	Log     LogConfig     `toml:"log"`
	Fetch   FetchConfig   `toml:"fetch"`
	Parse   ParseConfig   `toml:"parse"`
	Merge   MergeConfig   `toml:"merge"`
	Refresh RefreshConfig `toml:"refresh"`

	// Server contains HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Cache contains cache configuration
	Cache CacheConfig `toml:"cache"`
}

// LogConfig selects log verbosity and encoding
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// FetchConfig controls outgoing requests
type FetchConfig struct {
	Timeout        time.Duration `toml:"timeout"`
	MaxConcurrency int           `toml:"max_concurrency"`

	// RatePerSecond throttles fetches; zero means unlimited
	RatePerSecond float64 `toml:"rate_per_second"`
	UserAgent     string  `toml:"user_agent"`
}

// ParseConfig controls the Atom parser
type ParseConfig struct {
	Strict            bool `toml:"strict"`
	LenientTimestamps bool `toml:"lenient_timestamps"`
}

// MergeConfig selects the merge strategy
type MergeConfig struct {
	// Strategy is "concatenate" or "recency"
	Strategy string `toml:"strategy"`
}

// RefreshConfig controls the background refresher
type RefreshConfig struct {
	Interval time.Duration `toml:"interval"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `toml:"port"`

	// RateLimit is requests per minute allowed per client IP
	RateLimit int `toml:"rate_limit"`
	RateBurst int `toml:"rate_burst"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `toml:"type"`

	// SeenTTL is how long an entry is remembered as already shown
	SeenTTL time.Duration `toml:"seen_ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `toml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `toml:"sqlite"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `toml:"path"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `toml:"address"`

	// Password is the Redis authentication password
	Password string `toml:"password"`

	// DB is the Redis database number
	DB int `toml:"db"`
}

// Default returns the built-in configuration
func Default() *Config {
	feeds := make([]domain.FeedSource, len(DefaultFeeds))
	copy(feeds, DefaultFeeds)

	return &Config{
		Feeds: feeds,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Fetch: FetchConfig{
			Timeout:        30 * time.Second,
			MaxConcurrency: 10,
			UserAgent:      "NewsReader/1.0",
		},
		Parse: ParseConfig{
			Strict: true,
		},
		Merge: MergeConfig{
			Strategy: string(domain.MergeConcatenate),
		},
		Refresh: RefreshConfig{
			Interval: 15 * time.Minute,
		},
		Server: ServerConfig{
			Port:      "8000",
			RateLimit: 60,
			RateBurst: 10,
		},
		Cache: CacheConfig{
			Type:    "memory",
			SeenTTL: 24 * time.Hour,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			SQLite: SQLiteConfig{
				Path: "newsreader.db",
			},
		},
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	// Feeds listed in the file replace the defaults
	var listed struct {
		Feeds []domain.FeedSource `toml:"feeds"`
	}
	meta, err := toml.Decode(string(data), &listed)
	if err != nil {
		return fmt.Errorf("failed to decode config at %s: %w", path, err)
	}
	if meta.IsDefined("feeds") {
		c.Feeds = nil
	}

	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("failed to decode config at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if feeds := os.Getenv("NEWSREADER_FEEDS"); feeds != "" {
		c.Feeds = domain.SourcesFromURLs(strings.Split(feeds, ","))
	}

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Fetch.UserAgent = getEnvOrDefault("FETCH_USER_AGENT", c.Fetch.UserAgent)
	c.Fetch.MaxConcurrency = getEnvAsIntOrDefault("FETCH_MAX_CONCURRENCY", c.Fetch.MaxConcurrency)
	c.Merge.Strategy = getEnvOrDefault("MERGE_STRATEGY", c.Merge.Strategy)
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)

	var err error
	if c.Fetch.Timeout, err = getEnvAsDurationOrDefault("FETCH_TIMEOUT", c.Fetch.Timeout); err != nil {
		return err
	}
	if c.Refresh.Interval, err = getEnvAsDurationOrDefault("REFRESH_INTERVAL", c.Refresh.Interval); err != nil {
		return err
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault parses a Go duration such as "30s" or "15m"
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// MergeStrategy returns the configured strategy
func (c *Config) MergeStrategy() domain.MergeStrategy {
	return domain.MergeStrategy(strings.ToLower(strings.TrimSpace(c.Merge.Strategy)))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return errors.New("at least one feed must be configured")
	}

	for i, f := range c.Feeds {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("feed %d: %w", i, err)
		}
	}

	if c.Fetch.Timeout < 0 {
		return errors.New("fetch timeout cannot be negative")
	}

	if c.Fetch.MaxConcurrency < 1 {
		return errors.New("fetch max concurrency must be at least 1")
	}

	if c.Fetch.RatePerSecond < 0 {
		return errors.New("fetch rate cannot be negative")
	}

	if !c.MergeStrategy().Valid() {
		return fmt.Errorf("merge strategy must be '%s' or '%s'", domain.MergeConcatenate, domain.MergeByRecency)
	}

	if c.Refresh.Interval < time.Second {
		return errors.New("refresh interval must be at least 1 second")
	}

	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	return nil
}
