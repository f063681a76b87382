package dex

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// FetchPage loads the stub list for req and then every detail record
// concurrently. It never touches a Store, so it may run on any goroutine.
// A failed detail fetch leaves a nil slot rather than failing the page.
func FetchPage(ctx context.Context, f services.Fetcher, req PageRequest, log *slog.Logger) PageResult {
	stubs, err := f.FetchPage(ctx, req.Limit, req.Offset)
	if err != nil {
		return PageResult{Request: req, Err: err}
	}

	items := make([]*pokemon.Pokemon, len(stubs))
	var wg sync.WaitGroup
	for i, stub := range stubs {
		i, stub := i, stub
		wg.Add(1)
		go func() {
			defer wg.Done()

			p, err := f.FetchPokemon(ctx, stub.URL)
			if err != nil {
				log.Debug("Detail fetch failed, skipping entry", "name", stub.Name, "url", stub.URL, "error", err)
				return
			}
			items[i] = p
		}()
	}
	wg.Wait()

	return PageResult{Request: req, Stubs: len(stubs), Items: items}
}
