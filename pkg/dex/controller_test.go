package dex

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(f services.Fetcher, opts Options) (*Controller, *recordingView) {
	view := &recordingView{}
	return NewController(f, view, testLogger(), opts), view
}

func TestController_FirstPage(t *testing.T) {
	f := catalog(20, 100)
	c, view := newTestController(f, Options{Limit: 20})

	require.NoError(t, c.LoadNextPage(context.Background()))

	assert.Len(t, c.Store().Items(), 20)
	assert.Equal(t, 20, c.Store().Cursor().Offset)
	assert.Len(t, view.cards, 20)
	assert.Equal(t, 1, view.appends)
	assert.Equal(t, []bool{true, false}, view.loadings)
	assert.False(t, view.ended)

	_, pageCalls, detailCalls := f.GetCalls()
	assert.Equal(t, []services.PageCall{{Limit: 20, Offset: 0}}, pageCalls)
	assert.Len(t, detailCalls, 20)
}

func TestController_AppendsIncrementally(t *testing.T) {
	c, view := newTestController(catalog(20, 100), Options{Limit: 20})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.LoadNextPage(ctx))
	}

	assert.Equal(t, 3, view.appends)
	assert.Zero(t, view.rebuilds)
	assert.Equal(t, ids(c.Store().Items()), ids(view.cards))
	assert.Equal(t, 1, view.cards[0].ID)
	assert.Equal(t, 60, view.cards[59].ID)
}

func TestController_PartialPage(t *testing.T) {
	f := catalog(20, 40)
	f.FailDetail(7, errors.New("connection reset"))
	c, view := newTestController(f, Options{Limit: 20})

	err := c.LoadNextPage(context.Background())
	require.NoError(t, err, "a single failed detail is not a page failure")

	assert.Len(t, c.Store().Items(), 19)
	assert.Empty(t, view.alerts)
	assert.Equal(t, 20, c.Store().Cursor().Offset)
	for _, p := range view.cards {
		assert.NotEqual(t, 7, p.ID)
	}
}

func TestController_PageFailureAlertsAndKeepsCursor(t *testing.T) {
	f := catalog(20, 40)
	f.SetFetchPageError(&services.NetworkError{URL: "x", StatusCode: 503})
	c, view := newTestController(f, Options{Limit: 20})
	ctx := context.Background()

	err := c.LoadNextPage(ctx)
	var netErr *services.NetworkError
	require.True(t, errors.As(err, &netErr))
	require.Len(t, view.alerts, 1)
	assert.False(t, view.loading)
	assert.False(t, c.Store().Loading())
	assert.Equal(t, 0, c.Store().Cursor().Offset)

	f.ClearFetchPageError()
	require.NoError(t, c.LoadNextPage(ctx))

	_, pageCalls, _ := f.GetCalls()
	require.Len(t, pageCalls, 2)
	assert.Equal(t, 0, pageCalls[1].Offset, "retry asks for the same offset")
	assert.Len(t, c.Store().Items(), 20)
}

func TestController_Exhaustion(t *testing.T) {
	c, view := newTestController(catalog(20, 40), Options{Limit: 20})
	ctx := context.Background()

	require.NoError(t, c.LoadNextPage(ctx))
	require.NoError(t, c.LoadNextPage(ctx))
	assert.False(t, view.ended)

	require.NoError(t, c.LoadNextPage(ctx))
	assert.True(t, view.ended)
	assert.False(t, c.Store().Cursor().More)
	assert.Len(t, c.Store().Items(), 40)

	require.NoError(t, c.LoadNextPage(ctx))
	assert.False(t, c.Store().Loading())
}

func TestController_MaxOffset(t *testing.T) {
	f := catalog(20, 200)
	c, view := newTestController(f, Options{Limit: 20, MaxOffset: 100})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, c.LoadNextPage(ctx))
	}

	assert.Len(t, c.Store().Items(), 100)
	assert.True(t, view.ended)
	_, pageCalls, _ := f.GetCalls()
	assert.Len(t, pageCalls, 5, "no requests past the ceiling")
}

func TestController_OnScroll(t *testing.T) {
	ctx := context.Background()

	t.Run("far from bottom does nothing", func(t *testing.T) {
		f := catalog(20, 100)
		c, _ := newTestController(f, Options{Limit: 20})
		require.NoError(t, c.OnScroll(ctx, 301))
		_, pageCalls, _ := f.GetCalls()
		assert.Empty(t, pageCalls)
	})

	t.Run("within threshold loads", func(t *testing.T) {
		f := catalog(20, 100)
		c, _ := newTestController(f, Options{Limit: 20})
		require.NoError(t, c.OnScroll(ctx, 300))
		assert.Len(t, c.Store().Items(), 20)
	})

	t.Run("filter disables infinite scroll", func(t *testing.T) {
		f := catalog(20, 100)
		c, _ := newTestController(f, Options{Limit: 20})
		require.NoError(t, c.LoadNextPage(ctx))
		c.SetCategory("fire")

		require.NoError(t, c.OnScroll(ctx, 0))
		_, pageCalls, _ := f.GetCalls()
		assert.Len(t, pageCalls, 1)

		c.SetCategory(pokemon.TypeAll)
		require.NoError(t, c.OnScroll(ctx, 0))
		assert.Len(t, c.Store().Items(), 40, "back on all, scrolling resumes appending")
	})

	t.Run("loading flag gates overlapping loads", func(t *testing.T) {
		f := catalog(20, 100)
		c, _ := newTestController(f, Options{Limit: 20})
		_, ok := c.BeginLoad()
		require.True(t, ok)
		assert.False(t, c.NearBottom(0))
	})
}

func TestController_SetCategory(t *testing.T) {
	c, view := newTestController(catalog(20, 100), Options{Limit: 20})
	ctx := context.Background()
	require.NoError(t, c.LoadNextPage(ctx))

	c.SetCategory("water")
	assert.Equal(t, 1, view.rebuilds)
	assert.Equal(t, []int{3, 8, 13, 18}, ids(view.cards))

	c.SetCategory(pokemon.TypeAll)
	assert.Equal(t, 2, view.rebuilds)
	assert.Len(t, view.cards, 20)

	require.NoError(t, c.LoadNextPage(ctx))
	assert.Len(t, view.cards, 40, "appending continues after the rebuild")
	assert.Equal(t, ids(c.Store().Items()), ids(view.cards))
}

func TestController_PageArrivingUnderFilterRebuilds(t *testing.T) {
	c, view := newTestController(catalog(20, 100), Options{Limit: 20})
	ctx := context.Background()
	require.NoError(t, c.LoadNextPage(ctx))

	req, ok := c.BeginLoad()
	require.True(t, ok)
	c.SetCategory("electric")
	rebuilds := view.rebuilds

	require.NoError(t, c.Apply(c.Fetch(ctx, req)))
	assert.Equal(t, rebuilds+1, view.rebuilds)
	assert.Equal(t, []int{5, 10, 15, 20, 25, 30, 35, 40}, ids(view.cards))
}

func TestController_Reset(t *testing.T) {
	f := catalog(20, 100)
	c, view := newTestController(f, Options{Limit: 20})
	ctx := context.Background()

	require.NoError(t, c.LoadNextPage(ctx))
	require.NoError(t, c.LoadNextPage(ctx))
	c.SetCategory("fire")
	c.Open(c.Store().Items()[0])

	require.NoError(t, c.Reset(ctx))

	assert.Equal(t, pokemon.TypeAll, c.Store().Selected())
	assert.Len(t, c.Store().Items(), 20, "reset reloads the first page")
	assert.Equal(t, 20, c.Store().Cursor().Offset)
	assert.Equal(t, ids(c.Store().Items()), ids(view.cards))
	assert.False(t, c.Overlay().IsOpen())
	assert.False(t, view.ended)

	_, pageCalls, _ := f.GetCalls()
	assert.Equal(t, 0, pageCalls[len(pageCalls)-1].Offset)
}

func TestController_ResetDiscardsInFlightPage(t *testing.T) {
	f := catalog(20, 100)
	c, view := newTestController(f, Options{Limit: 20})
	ctx := context.Background()

	req, ok := c.BeginLoad()
	require.True(t, ok)
	res := c.Fetch(ctx, req)

	require.NoError(t, c.Reset(ctx))
	before := len(view.cards)

	require.NoError(t, c.Apply(res))
	assert.Len(t, c.Store().Items(), 20)
	assert.Len(t, view.cards, before)
}

func TestController_LoadCategories(t *testing.T) {
	t.Run("drops unusable types", func(t *testing.T) {
		f := services.NewMockFetcher()
		f.Types = []pokemon.Type{{Name: "normal"}, {Name: "unknown"}, {Name: "shadow"}, {Name: "fairy"}}
		c, _ := newTestController(f, Options{})

		types := c.LoadCategories(context.Background())
		assert.Equal(t, []pokemon.Type{{Name: "normal"}, {Name: "fairy"}}, types)
	})

	t.Run("failure degrades silently", func(t *testing.T) {
		f := services.NewMockFetcher()
		f.FetchTypesFunc = func(ctx context.Context) ([]pokemon.Type, error) {
			return nil, &services.ParseError{URL: "x", Err: errors.New("bad json")}
		}
		c, view := newTestController(f, Options{})

		assert.Empty(t, c.LoadCategories(context.Background()))
		assert.Empty(t, view.alerts)
	})
}

func TestController_Overlay(t *testing.T) {
	c, view := newTestController(catalog(20, 20), Options{Limit: 20})
	require.NoError(t, c.LoadNextPage(context.Background()))
	p := c.Store().Items()[4]

	c.Open(p)
	c.Flip()
	c.Flip()
	c.Flip()
	c.CloseOverlay()
	c.Flip() // no-op while closed

	assert.Equal(t, []overlayCall{
		{ID: 5, Flipped: false},
		{ID: 5, Flipped: true},
		{ID: 5, Flipped: false},
		{ID: 5, Flipped: true},
	}, view.overlays)
	assert.Equal(t, 1, view.hidden)

	c.Open(p)
	assert.Equal(t, OverlayFront, c.Overlay().State(), "reopening starts on the front")
}

func TestController_OpenByKey(t *testing.T) {
	c, view := newTestController(catalog(20, 20), Options{Limit: 20})
	require.NoError(t, c.LoadNextPage(context.Background()))

	assert.True(t, c.OpenByKey("#012"))
	assert.True(t, c.OpenByKey("  MON-3 "))
	assert.False(t, c.OpenByKey("999"))

	require.Len(t, view.overlays, 2)
	assert.Equal(t, 12, view.overlays[0].ID)
	assert.Equal(t, 3, view.overlays[1].ID)
}
