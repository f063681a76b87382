package dex

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

var typeCycle = [][]string{
	{"grass", "poison"},
	{"fire"},
	{"water"},
	{"normal", "flying"},
	{"electric"},
}

// entries builds n entries with ids starting at first; types rotate
// through typeCycle.
func entries(first, n int) []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		out = append(out, pokemon.Pokemon{
			ID:     id,
			Name:   fmt.Sprintf("mon-%d", id),
			Types:  typeCycle[(id-1)%len(typeCycle)],
			Weight: id * 10,
			Height: id,
			Stats:  []pokemon.Stat{{Name: "hp", Value: id}},
		})
	}
	return out
}

// catalog registers pages of size limit covering total entries.
func catalog(limit, total int) *services.MockFetcher {
	f := services.NewMockFetcher()
	for offset := 0; offset < total; offset += limit {
		n := min(limit, total-offset)
		f.AddPage(offset, entries(offset+1, n)...)
	}
	return f
}

type overlayCall struct {
	ID      int
	Flipped bool
}

// recordingView is a Renderer that keeps what a real surface would show.
type recordingView struct {
	cards    []pokemon.Pokemon
	appends  int
	rebuilds int
	loading  bool
	loadings []bool
	ended    bool
	alerts   []error
	overlays []overlayCall
	hidden   int
}

func (v *recordingView) Append(items []pokemon.Pokemon) {
	v.appends++
	v.cards = append(v.cards, items...)
}

func (v *recordingView) Rebuild(items []pokemon.Pokemon) {
	v.rebuilds++
	v.cards = append([]pokemon.Pokemon(nil), items...)
}

func (v *recordingView) SetLoading(loading bool) {
	v.loading = loading
	v.loadings = append(v.loadings, loading)
}

func (v *recordingView) ShowEnd(shown bool) { v.ended = shown }
func (v *recordingView) Alert(err error)    { v.alerts = append(v.alerts, err) }
func (v *recordingView) HideOverlay()       { v.hidden++ }

func (v *recordingView) ShowOverlay(p pokemon.Pokemon, flipped bool) {
	v.overlays = append(v.overlays, overlayCall{ID: p.ID, Flipped: flipped})
}

func ids(list []pokemon.Pokemon) []int {
	out := make([]int, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}
