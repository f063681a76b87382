package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// MockFetcher is a mock implementation of Fetcher for testing.
// Without a Func it serves Types, Pages and Details from its maps.
type MockFetcher struct {
	FetchTypesFunc   func(ctx context.Context) ([]pokemon.Type, error)
	FetchPageFunc    func(ctx context.Context, limit, offset int) ([]pokemon.Stub, error)
	FetchPokemonFunc func(ctx context.Context, url string) (*pokemon.Pokemon, error)

	Types   []pokemon.Type
	Pages   map[int][]pokemon.Stub // keyed by offset
	Details map[string]pokemon.Pokemon
	Failing map[string]error // detail URLs that fail

	// Track calls for testing
	FetchTypesCalls   int
	FetchPageCalls    []PageCall
	FetchPokemonCalls []string

	mu sync.Mutex // protects all fields above
}

type PageCall struct {
	Limit  int
	Offset int
}

// NewMockFetcher creates a new mock fetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Pages:             make(map[int][]pokemon.Stub),
		Details:           make(map[string]pokemon.Pokemon),
		Failing:           make(map[string]error),
		FetchPageCalls:    make([]PageCall, 0),
		FetchPokemonCalls: make([]string, 0),
	}
}

// FetchTypes mocks the type list
func (m *MockFetcher) FetchTypes(ctx context.Context) ([]pokemon.Type, error) {
	m.mu.Lock()
	m.FetchTypesCalls++
	fn := m.FetchTypesFunc
	types := m.Types
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return types, nil
}

// FetchPage mocks the paginated listing
func (m *MockFetcher) FetchPage(ctx context.Context, limit, offset int) ([]pokemon.Stub, error) {
	m.mu.Lock()
	m.FetchPageCalls = append(m.FetchPageCalls, PageCall{Limit: limit, Offset: offset})
	fn := m.FetchPageFunc
	page := m.Pages[offset]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, limit, offset)
	}
	if len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

// FetchPokemon mocks the detail record
func (m *MockFetcher) FetchPokemon(ctx context.Context, url string) (*pokemon.Pokemon, error) {
	m.mu.Lock()
	m.FetchPokemonCalls = append(m.FetchPokemonCalls, url)
	fn := m.FetchPokemonFunc
	failErr, failing := m.Failing[url]
	p, ok := m.Details[url]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, url)
	}
	if failing {
		return nil, failErr
	}
	if !ok {
		return nil, &NetworkError{URL: url, StatusCode: 404}
	}
	return &p, nil
}

// AddPage registers a page of entries at offset, creating stubs and details
func (m *MockFetcher) AddPage(offset int, entries ...pokemon.Pokemon) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stubs := make([]pokemon.Stub, 0, len(entries))
	for _, p := range entries {
		url := fmt.Sprintf("https://pokeapi.test/pokemon/%d/", p.ID)
		stubs = append(stubs, pokemon.Stub{Name: p.Name, URL: url})
		m.Details[url] = p
	}
	m.Pages[offset] = stubs
}

// FailDetail makes the detail fetch for the entry with id fail
func (m *MockFetcher) FailDetail(id int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failing[fmt.Sprintf("https://pokeapi.test/pokemon/%d/", id)] = err
}

// SetFetchPageError sets up the mock to fail every page request
func (m *MockFetcher) SetFetchPageError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchPageFunc = func(ctx context.Context, limit, offset int) ([]pokemon.Stub, error) {
		return nil, err
	}
}

// ClearFetchPageError restores the default page behaviour
func (m *MockFetcher) ClearFetchPageError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchPageFunc = nil
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockFetcher) GetCalls() (int, []PageCall, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pageCalls := make([]PageCall, len(m.FetchPageCalls))
	copy(pageCalls, m.FetchPageCalls)

	detailCalls := make([]string, len(m.FetchPokemonCalls))
	copy(detailCalls, m.FetchPokemonCalls)

	return m.FetchTypesCalls, pageCalls, detailCalls
}

// Ensure MockFetcher implements Fetcher interface
var _ Fetcher = (*MockFetcher)(nil)
