package services

import (
	"context"
	"fmt"

	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// Fetcher defines the read operations against the catalog API
type Fetcher interface {
	// FetchTypes returns the full type list as the API reports it
	FetchTypes(ctx context.Context) ([]pokemon.Type, error)

	// FetchPage returns the stubs at offset, at most limit of them
	FetchPage(ctx context.Context, limit, offset int) ([]pokemon.Stub, error)

	// FetchPokemon returns the detail record behind a stub URL
	FetchPokemon(ctx context.Context, url string) (*pokemon.Pokemon, error)
}

// NetworkError is a transport failure or a non-2xx response.
type NetworkError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that is not the JSON we expect.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
