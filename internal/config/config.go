package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendPebble = "pebble"
	CacheBackendRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Server           ServerConfig     `yaml:"server"`
	Log              LogConfig        `yaml:"log"`
	Upstream         UpstreamConfig   `yaml:"upstream"`
	Cache            CacheConfig      `yaml:"cache"`
	Pebble           PebbleConfig     `yaml:"pebble"`
	Redis            RedisConfig      `yaml:"redis"`
	Render           RenderConfig     `yaml:"render"`
	Features         FeaturesConfig   `yaml:"features"`
	Ads              AdsConfig        `yaml:"ads"`
	NetworkExplorers []ExplorerConfig `yaml:"network_explorers"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // json or console
}

// UpstreamConfig points at the explorer REST API the page reads from
type UpstreamConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	RetryMax     int           `yaml:"retry_max"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
	CheckVersion bool          `yaml:"check_version"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// CacheConfig configures the query result cache
type CacheConfig struct {
	Backend   string        `yaml:"backend"` // memory, pebble, redis
	StaleTime time.Duration `yaml:"stale_time"`
	TTL       time.Duration `yaml:"ttl"`
}

// PebbleConfig represents the Pebble database configuration
type PebbleConfig struct {
	Path      string `yaml:"path"`
	CacheSize int64  `yaml:"cache_size"`
}

// RedisConfig represents the Redis connection used by the redis cache backend
type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// RenderConfig controls how long a page request waits for data before
// answering with the loading skeleton
type RenderConfig struct {
	WaitBudget    time.Duration `yaml:"wait_budget"`
	StreamTimeout time.Duration `yaml:"stream_timeout"`
}

// FeaturesConfig holds feature flags
type FeaturesConfig struct {
	Suave FeatureFlag `yaml:"suave"`
}

// FeatureFlag is a single boolean feature switch
type FeatureFlag struct {
	Enabled bool `yaml:"enabled"`
}

// AdsConfig configures the text advertisement slot
type AdsConfig struct {
	TextProvider string `yaml:"text_provider"` // "none" disables the slot
}

// ExplorerConfig describes another explorer the hash can be looked up on
type ExplorerConfig struct {
	Title   string            `yaml:"title"`
	BaseURL string            `yaml:"base_url"`
	Paths   map[string]string `yaml:"paths"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
			Mode: "release",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Upstream: UpstreamConfig{
			BaseURL:      "http://localhost:4000",
			Timeout:      10 * time.Second,
			RetryMax:     3,
			RetryDelay:   time.Second,
			UserAgent:    "tx-explorer/1.0",
			MaxBodyBytes: 8 << 20,
		},
		Cache: CacheConfig{
			Backend:   CacheBackendMemory,
			StaleTime: 30 * time.Second,
			TTL:       10 * time.Minute,
		},
		Pebble: PebbleConfig{
			Path:      "./data/pebble",
			CacheSize: 64 << 20,
		},
		Redis: RedisConfig{
			Host:      "localhost",
			Port:      6379,
			KeyPrefix: "txpage:",
		},
		Render: RenderConfig{
			WaitBudget:    1500 * time.Millisecond,
			StreamTimeout: 60 * time.Second,
		},
		Ads: AdsConfig{
			TextProvider: "none",
		},
	}
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return errors.New("upstream base_url is required")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}
	if c.Upstream.RetryMax < 0 {
		return errors.New("upstream retry_max must not be negative")
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendPebble, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}
	if c.Render.WaitBudget < 0 {
		return errors.New("render wait_budget must not be negative")
	}
	for i, e := range c.NetworkExplorers {
		if e.BaseURL == "" {
			return fmt.Errorf("network_explorers[%d]: base_url is required", i)
		}
	}
	return nil
}

// ServerAddr returns host:port for the HTTP listener
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) loadEnv() {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}

	// Log config
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if enc := os.Getenv("LOG_ENCODING"); enc != "" {
		c.Log.Encoding = enc
	}

	// Upstream config
	if url := os.Getenv("UPSTREAM_URL"); url != "" {
		c.Upstream.BaseURL = url
	}
	loadDuration("UPSTREAM_TIMEOUT", &c.Upstream.Timeout)
	loadDuration("UPSTREAM_RETRY_DELAY", &c.Upstream.RetryDelay)
	if retries := os.Getenv("UPSTREAM_RETRY_MAX"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			c.Upstream.RetryMax = r
		}
	}
	loadBool("UPSTREAM_CHECK_VERSION", &c.Upstream.CheckVersion)

	// Cache config
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = backend
	}
	loadDuration("CACHE_STALE_TIME", &c.Cache.StaleTime)
	loadDuration("CACHE_TTL", &c.Cache.TTL)

	// Pebble config
	if path := os.Getenv("PEBBLE_PATH"); path != "" {
		c.Pebble.Path = path
	}

	// Redis config
	if host := os.Getenv("REDIS_HOST"); host != "" {
		c.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Redis.Port = p
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		c.Redis.Password = pass
	}

	// Render config
	loadDuration("RENDER_WAIT_BUDGET", &c.Render.WaitBudget)

	// Feature flags
	loadBool("SUAVE_ENABLED", &c.Features.Suave.Enabled)

	if provider := os.Getenv("ADS_TEXT_PROVIDER"); provider != "" {
		c.Ads.TextProvider = provider
	}
}

func loadBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "true" || v == "1"
	}
}

func loadDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
