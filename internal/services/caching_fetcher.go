package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

const (
	typesCacheKey     = "pokedex:types"
	pokemonKeyPrefix  = "pokedex:pokemon:"
	DefaultDetailsTTL = time.Hour
)

// CachingFetcher serves types and detail records from a Cache,
// falling through to the wrapped Fetcher on a miss. Page listings are
// never cached so exhaustion is always observed upstream.
// Cache failures are logged and otherwise ignored.
type CachingFetcher struct {
	next   Fetcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure CachingFetcher implements Fetcher interface
var _ Fetcher = (*CachingFetcher)(nil)

// NewCachingFetcher wraps next with cache
func NewCachingFetcher(next Fetcher, cache Cache, ttl time.Duration, logger *slog.Logger) *CachingFetcher {
	return &CachingFetcher{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (f *CachingFetcher) FetchTypes(ctx context.Context) ([]pokemon.Type, error) {
	var types []pokemon.Type
	if f.lookup(ctx, typesCacheKey, &types) {
		return types, nil
	}

	types, err := f.next.FetchTypes(ctx)
	if err != nil {
		return nil, err
	}
	f.store(ctx, typesCacheKey, types)
	return types, nil
}

func (f *CachingFetcher) FetchPage(ctx context.Context, limit, offset int) ([]pokemon.Stub, error) {
	return f.next.FetchPage(ctx, limit, offset)
}

func (f *CachingFetcher) FetchPokemon(ctx context.Context, url string) (*pokemon.Pokemon, error) {
	key := pokemonKeyPrefix + url

	var p pokemon.Pokemon
	if f.lookup(ctx, key, &p) {
		return &p, nil
	}

	fetched, err := f.next.FetchPokemon(ctx, url)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, fetched)
	return fetched, nil
}

func (f *CachingFetcher) lookup(ctx context.Context, key string, out interface{}) bool {
	raw, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.Warn("Cache read failed, falling back to API", "key", key, "error", err)
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		f.logger.Warn("Discarding corrupt cache entry", "key", key, "error", err)
		_ = f.cache.Del(ctx, key)
		return false
	}
	return true
}

func (f *CachingFetcher) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		f.logger.Warn("Failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := f.cache.Set(ctx, key, string(data), f.ttl); err != nil {
		f.logger.Warn("Cache write failed", "key", key, "error", err)
	}
}
