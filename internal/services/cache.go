package services

import (
	"context"
	"log/slog"
	"time"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a key-value pair with optional expiration (zero means no expiry)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a value by key. A missing key returns "" and no error.
	Get(ctx context.Context, key string) (string, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Exists checks if keys exist
	Exists(ctx context.Context, keys ...string) (bool, error)

	// Close closes the cache connection
	Close() error
}

// OpenCache returns a Redis cache when redisURL is set and reachable,
// otherwise an in-memory cache.
func OpenCache(ctx context.Context, redisURL string, logger *slog.Logger) Cache {
	if redisURL == "" {
		return NewMemoryCache()
	}

	rc, err := NewRedisCache(redisURL, logger)
	if err != nil {
		logger.Warn("Invalid Redis URL, using memory cache", "error", err)
		return NewMemoryCache()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("Redis unavailable, using memory cache", "error", err)
		_ = rc.Close()
		return NewMemoryCache()
	}

	logger.Info("Using Redis cache")
	return rc
}
