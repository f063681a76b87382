package main

import (
	"github.com/jwebster45206/pokedex/pkg/dex"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// screen is the dex.Renderer for the terminal. The controller writes to
// it; the bubbletea model reads it when building the view. It is held by
// pointer so every copy of the model shares one surface.
type screen struct {
	cards   []pokemon.Pokemon
	loading bool
	ended   bool
	alert   error

	overlayOpen bool
	overlayItem pokemon.Pokemon
	flipped     bool

	// dirty is set when cards change and the grid must be re-laid out
	dirty bool
}

// Ensure screen implements dex.Renderer
var _ dex.Renderer = (*screen)(nil)

func (s *screen) Append(items []pokemon.Pokemon) {
	s.cards = append(s.cards, items...)
	s.dirty = true
}

func (s *screen) Rebuild(items []pokemon.Pokemon) {
	s.cards = append([]pokemon.Pokemon(nil), items...)
	s.dirty = true
}

func (s *screen) SetLoading(loading bool) { s.loading = loading }

func (s *screen) ShowEnd(shown bool) {
	s.ended = shown
	s.dirty = true
}

func (s *screen) Alert(err error) { s.alert = err }

func (s *screen) ShowOverlay(p pokemon.Pokemon, flipped bool) {
	s.overlayOpen = true
	s.overlayItem = p
	s.flipped = flipped
}

func (s *screen) HideOverlay() {
	s.overlayOpen = false
	s.flipped = false
}
