// Command dexdump prints catalog pages without the terminal UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/jwebster45206/pokedex/internal/config"
	"github.com/jwebster45206/pokedex/internal/logger"
	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/dex"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

var errLoadFailed = errors.New("one or more pages failed to load")

type options struct {
	pages    int
	typeName string
	show     string
	json     bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dexdump", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.IntVar(&opts.pages, "pages", 1, "number of pages to load")
	fs.StringVar(&opts.typeName, "type", "", "only print entries of this type")
	fs.StringVar(&opts.show, "show", "", "print the full record of a loaded entry (id or name)")
	fs.BoolVar(&opts.json, "json", false, "print JSON lines instead of text")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.pages < 1 {
		return opts, fmt.Errorf("-pages must be at least 1, got %d", opts.pages)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr here; stdout carries the listing
	log := logger.Setup(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := services.OpenCache(ctx, cfg.RedisURL, log)
	defer func() {
		_ = cache.Close()
	}()

	client := services.NewPokeAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.RateLimitRPS, log)
	fetcher := services.NewCachingFetcher(client, cache, cfg.CacheTTL, log)

	if err := run(ctx, cfg, fetcher, opts, os.Stdout, os.Stderr, log); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run loads up to opts.pages pages through a controller and prints them.
func run(ctx context.Context, cfg *config.Config, f services.Fetcher, opts options, out, errOut io.Writer, log *slog.Logger) error {
	p := &printer{out: out, errOut: errOut, json: opts.json}
	ctrl := dex.NewController(f, p, log, dex.Options{
		Limit:           cfg.PageLimit,
		MaxOffset:       cfg.MaxOffset,
		ScrollThreshold: cfg.ScrollThreshold,
	})

	if opts.typeName != "" {
		types := ctrl.LoadCategories(ctx)
		if !hasType(types, opts.typeName) {
			return fmt.Errorf("unknown type %q", opts.typeName)
		}
		ctrl.SetCategory(opts.typeName)
	}

	for n := 0; n < opts.pages; n++ {
		if !ctrl.Store().Cursor().More {
			break
		}
		if err := ctrl.LoadNextPage(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// The cursor did not move; the next iteration retries it
			continue
		}
	}

	if opts.show != "" {
		if !ctrl.OpenByKey(opts.show) {
			return fmt.Errorf("%q is not among the loaded entries", opts.show)
		}
	}

	if p.failed {
		return errLoadFailed
	}
	return nil
}

func hasType(types []pokemon.Type, name string) bool {
	return slices.ContainsFunc(types, func(t pokemon.Type) bool { return t.Name == name })
}
