package dex

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

const (
	DefaultLimit     = 20
	DefaultMaxOffset = 1000
)

// Cursor is the pagination position. Offset only moves forward, by
// Limit, after a page has been applied.
type Cursor struct {
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	More   bool `json:"more"`
}

// PageRequest identifies one in-flight page load.
type PageRequest struct {
	ID         string
	Generation int
	Limit      int
	Offset     int
}

// PageResult is what came back for a PageRequest. Items holds one slot
// per stub in listing order; a nil slot is a detail fetch that failed.
type PageResult struct {
	Request PageRequest
	Stubs   int
	Items   []*pokemon.Pokemon
	Err     error
}

// Present returns the non-absent items in order.
func (r PageResult) Present() []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, len(r.Items))
	for _, p := range r.Items {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Outcome describes what ApplyPage did to the store.
type Outcome struct {
	Stale     bool              // result belonged to a store generation that was reset
	Added     []pokemon.Pokemon // items appended to the accumulated list
	Exhausted bool              // no more pages will be requested
	Err       error             // page-level failure; cursor left unchanged
}

// Store owns the application state. It is not safe for concurrent use;
// all mutation goes through its methods from a single goroutine.
type Store struct {
	items    []pokemon.Pokemon
	filtered []pokemon.Pokemon
	types    []pokemon.Type
	selected string

	cursor     Cursor
	maxOffset  int
	loading    bool
	generation int

	// lookup is keyed by both id and name, and survives Reset
	lookup map[string]pokemon.Pokemon
}

// NewStore returns an empty store. Non-positive arguments take the defaults.
func NewStore(limit, maxOffset int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}
	return &Store{
		selected:  pokemon.TypeAll,
		cursor:    Cursor{Limit: limit, More: true},
		maxOffset: maxOffset,
		lookup:    make(map[string]pokemon.Pokemon),
	}
}

// BeginLoad claims the next page. It returns false, and changes nothing,
// when a load is already running or the catalog is exhausted.
func (s *Store) BeginLoad() (PageRequest, bool) {
	if s.loading || !s.cursor.More {
		return PageRequest{}, false
	}
	s.loading = true
	return PageRequest{
		ID:         uuid.NewString(),
		Generation: s.generation,
		Limit:      s.cursor.Limit,
		Offset:     s.cursor.Offset,
	}, true
}

// ApplyPage folds a finished page into the store.
func (s *Store) ApplyPage(res PageResult) Outcome {
	if res.Request.Generation != s.generation {
		return Outcome{Stale: true}
	}
	s.loading = false

	if res.Err != nil {
		return Outcome{Err: res.Err}
	}

	if res.Stubs == 0 {
		s.cursor.More = false
		return Outcome{Exhausted: true}
	}

	added := res.Present()
	s.items = append(s.items, added...)
	for _, p := range added {
		s.lookup[strconv.Itoa(p.ID)] = p
		s.lookup[p.Name] = p
	}
	s.filtered = pokemon.FilterByType(s.items, s.selected)

	s.cursor.Offset += s.cursor.Limit
	if s.cursor.Offset >= s.maxOffset {
		s.cursor.More = false
	}

	return Outcome{Added: added, Exhausted: !s.cursor.More}
}

// SetCategory selects a type filter and recomputes the filtered view.
// An empty name selects pokemon.TypeAll.
func (s *Store) SetCategory(name string) {
	if name == "" {
		name = pokemon.TypeAll
	}
	s.selected = name
	s.filtered = pokemon.FilterByType(s.items, name)
}

// Reset empties the list and view, rewinds the cursor and clears the
// filter. Any page still in flight is dropped when it arrives.
func (s *Store) Reset() {
	s.items = nil
	s.filtered = nil
	s.selected = pokemon.TypeAll
	s.cursor = Cursor{Limit: s.cursor.Limit, More: true}
	s.loading = false
	s.generation++
}

// SetTypes stores the usable subset of the API's type list.
func (s *Store) SetTypes(types []pokemon.Type) {
	s.types = pokemon.UsableTypes(types)
}

// Lookup finds a loaded entry by id ("25") or name ("pikachu").
func (s *Store) Lookup(key string) (pokemon.Pokemon, bool) {
	p, ok := s.lookup[key]
	return p, ok
}

func (s *Store) Items() []pokemon.Pokemon    { return s.items }
func (s *Store) Filtered() []pokemon.Pokemon { return s.filtered }
func (s *Store) Types() []pokemon.Type       { return s.types }
func (s *Store) Selected() string            { return s.selected }
func (s *Store) Cursor() Cursor              { return s.cursor }
func (s *Store) Loading() bool               { return s.loading }
func (s *Store) Filtering() bool             { return s.selected != pokemon.TypeAll }
