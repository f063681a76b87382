package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string

	APIBaseURL   string
	HTTPTimeout  time.Duration
	RateLimitRPS float64

	PageLimit       int
	MaxOffset       int
	ScrollThreshold int

	RedisURL string // empty selects the in-memory cache
	CacheTTL time.Duration
}

// fileConfig mirrors config.toml. Durations are strings such as "15s".
type fileConfig struct {
	Environment string `toml:"environment"`
	Log         struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	API struct {
		BaseURL   string  `toml:"base_url"`
		Timeout   string  `toml:"timeout"`
		RateLimit float64 `toml:"rate_limit_rps"`
	} `toml:"api"`
	Paging struct {
		Limit           int `toml:"limit"`
		MaxOffset       int `toml:"max_offset"`
		ScrollThreshold int `toml:"scroll_threshold"`
	} `toml:"paging"`
	Cache struct {
		RedisURL string `toml:"redis_url"`
		TTL      string `toml:"ttl"`
	} `toml:"cache"`
}

func Default() *Config {
	return &Config{
		Environment:     "development",
		LogLevel:        slog.LevelInfo,
		LogFile:         "pokedex.log",
		APIBaseURL:      "https://pokeapi.co/api/v2",
		HTTPTimeout:     15 * time.Second,
		RateLimitRPS:    20,
		PageLimit:       20,
		MaxOffset:       1000,
		ScrollThreshold: 300,
		CacheTTL:        time.Hour,
	}
}

// Load builds the configuration from defaults, then config.toml (if
// present), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := configPath()
	if path != "" {
		if err := cfg.applyFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.PageLimit <= 0 {
		errs = append(errs, fmt.Errorf("page limit must be positive, got %d", c.PageLimit))
	}
	if c.MaxOffset <= 0 {
		errs = append(errs, fmt.Errorf("max offset must be positive, got %d", c.MaxOffset))
	}
	if c.ScrollThreshold < 0 {
		errs = append(errs, fmt.Errorf("scroll threshold must not be negative, got %d", c.ScrollThreshold))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %g", c.RateLimitRPS))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is required"))
	}
	return errors.Join(errs...)
}

// configPath returns POKEDEX_CONFIG, or the default location under the
// user config dir. explicit is true when the path came from the env.
func configPath() (string, bool) {
	if p := os.Getenv("POKEDEX_CONFIG"); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "pokedex", "config.toml"), false
}

func (c *Config) applyFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Environment != "" {
		c.Environment = fc.Environment
	}
	if fc.Log.Level != "" {
		c.LogLevel = parseLogLevel(fc.Log.Level)
	}
	if fc.Log.File != "" {
		c.LogFile = fc.Log.File
	}
	if fc.API.BaseURL != "" {
		c.APIBaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return fmt.Errorf("parse api.timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if fc.API.RateLimit != 0 {
		c.RateLimitRPS = fc.API.RateLimit
	}
	if fc.Paging.Limit != 0 {
		c.PageLimit = fc.Paging.Limit
	}
	if fc.Paging.MaxOffset != 0 {
		c.MaxOffset = fc.Paging.MaxOffset
	}
	if fc.Paging.ScrollThreshold != 0 {
		c.ScrollThreshold = fc.Paging.ScrollThreshold
	}
	if fc.Cache.RedisURL != "" {
		c.RedisURL = fc.Cache.RedisURL
	}
	if fc.Cache.TTL != "" {
		d, err := time.ParseDuration(fc.Cache.TTL)
		if err != nil {
			return fmt.Errorf("parse cache.ttl: %w", err)
		}
		c.CacheTTL = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = parseLogLevel(v)
	}
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.APIBaseURL = getEnv("POKEAPI_BASE_URL", c.APIBaseURL)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)

	var err error
	if c.PageLimit, err = getEnvInt("PAGE_LIMIT", c.PageLimit); err != nil {
		return err
	}
	if c.MaxOffset, err = getEnvInt("MAX_OFFSET", c.MaxOffset); err != nil {
		return err
	}
	if c.ScrollThreshold, err = getEnvInt("SCROLL_THRESHOLD", c.ScrollThreshold); err != nil {
		return err
	}
	if c.HTTPTimeout, err = getEnvDuration("HTTP_TIMEOUT", c.HTTPTimeout); err != nil {
		return err
	}
	if c.CacheTTL, err = getEnvDuration("CACHE_TTL", c.CacheTTL); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		c.RateLimitRPS = f
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
