package dex

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jwebster45206/pokedex/internal/logger"
	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// DefaultScrollThreshold is how close to the bottom, in display units,
// a scroll has to get before the next page is requested.
const DefaultScrollThreshold = 300

type Options struct {
	Limit           int
	MaxOffset       int
	ScrollThreshold int
}

// Controller turns user interactions into Store mutations and Renderer
// updates. Like the Store it is single-writer: only Fetch may be called
// from another goroutine.
type Controller struct {
	store     *Store
	overlay   Overlay
	fetcher   services.Fetcher
	view      Renderer
	logger    *slog.Logger
	threshold int

	// rendered counts the cards already appended while unfiltered
	rendered int
}

func NewController(f services.Fetcher, view Renderer, log *slog.Logger, opts Options) *Controller {
	threshold := opts.ScrollThreshold
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	return &Controller{
		store:     NewStore(opts.Limit, opts.MaxOffset),
		fetcher:   f,
		view:      view,
		logger:    log,
		threshold: threshold,
	}
}

func (c *Controller) Store() *Store        { return c.store }
func (c *Controller) Overlay() *Overlay    { return &c.overlay }
func (c *Controller) ScrollThreshold() int { return c.threshold }

// LoadCategories fetches the type list. Failure is logged and leaves the
// filter with only "all".
func (c *Controller) LoadCategories(ctx context.Context) []pokemon.Type {
	return c.ApplyCategories(c.FetchCategories(ctx))
}

// FetchCategories is the network half of LoadCategories and may run on
// any goroutine.
func (c *Controller) FetchCategories(ctx context.Context) ([]pokemon.Type, error) {
	return c.fetcher.FetchTypes(ctx)
}

// ApplyCategories stores a fetched type list, or logs the failure.
func (c *Controller) ApplyCategories(types []pokemon.Type, err error) []pokemon.Type {
	if err != nil {
		logger.WithError(c.logger, err).Error("Failed to load types")
		return nil
	}
	c.store.SetTypes(types)
	c.logger.Info("Types loaded", "count", len(c.store.Types()))
	return c.store.Types()
}

// LoadNextPage runs a whole page load on the calling goroutine.
// It returns the page-level error, if any, after it has been surfaced.
func (c *Controller) LoadNextPage(ctx context.Context) error {
	req, ok := c.BeginLoad()
	if !ok {
		return nil
	}
	return c.Apply(c.Fetch(ctx, req))
}

// BeginLoad claims the next page and shows the loading indicator.
func (c *Controller) BeginLoad() (PageRequest, bool) {
	req, ok := c.store.BeginLoad()
	if !ok {
		return req, false
	}
	logger.WithRequestID(c.logger, req.ID).Debug("Loading page", "offset", req.Offset, "limit", req.Limit)
	c.view.SetLoading(true)
	return req, true
}

// Fetch performs the network part of a load claimed by BeginLoad.
func (c *Controller) Fetch(ctx context.Context, req PageRequest) PageResult {
	return FetchPage(ctx, c.fetcher, req, logger.WithRequestID(c.logger, req.ID))
}

// Apply folds a fetched page into the store and updates the view.
func (c *Controller) Apply(res PageResult) error {
	log := logger.WithRequestID(c.logger, res.Request.ID)

	out := c.store.ApplyPage(res)
	if out.Stale {
		log.Info("Discarding page from before reset", "offset", res.Request.Offset)
		return nil
	}
	c.view.SetLoading(false)

	if out.Err != nil {
		logger.WithError(log, out.Err).Error("Failed to load page", "offset", res.Request.Offset)
		c.view.Alert(out.Err)
		return out.Err
	}

	if len(out.Added) > 0 {
		log.Info("Page loaded",
			"offset", res.Request.Offset,
			"stubs", res.Stubs,
			"added", len(out.Added),
			"total", len(c.store.Items()))
		c.render()
	}

	if out.Exhausted {
		log.Info("Catalog exhausted", "offset", c.store.Cursor().Offset)
		c.view.ShowEnd(true)
	}
	return nil
}

// NearBottom reports whether a scroll at distance units from the bottom
// should start a load.
func (c *Controller) NearBottom(distance int) bool {
	if c.store.Filtering() || c.store.Loading() || !c.store.Cursor().More {
		return false
	}
	return distance <= c.threshold
}

// OnScroll loads the next page when the viewer is near the bottom and
// no filter is active.
func (c *Controller) OnScroll(ctx context.Context, distance int) error {
	if !c.NearBottom(distance) {
		return nil
	}
	return c.LoadNextPage(ctx)
}

// SetCategory applies a type filter and redraws the whole grid.
func (c *Controller) SetCategory(name string) {
	c.store.SetCategory(name)
	c.logger.Debug("Filter changed", "type", c.store.Selected(), "visible", len(c.store.Filtered()))
	c.rebuild()
}

// Reset clears everything back to the first-load state and loads the
// first page again.
func (c *Controller) Reset(ctx context.Context) error {
	c.Clear()
	return c.LoadNextPage(ctx)
}

// Clear is Reset without the reload, for callers that run the load
// asynchronously through BeginLoad/Fetch/Apply.
func (c *Controller) Clear() {
	c.store.Reset()
	c.CloseOverlay()
	c.view.ShowEnd(false)
	c.view.SetLoading(false)
	c.rebuild()
	c.logger.Info("Reset")
}

// Open shows the overlay for p on its front face.
func (c *Controller) Open(p pokemon.Pokemon) {
	c.overlay.Open(p)
	c.view.ShowOverlay(p, false)
}

// OpenByKey opens an already loaded entry by id or name.
func (c *Controller) OpenByKey(key string) bool {
	key = strings.ToLower(strings.TrimLeft(strings.TrimSpace(key), "#0"))
	p, ok := c.store.Lookup(key)
	if !ok {
		return false
	}
	c.Open(p)
	return true
}

// Flip turns the open card over.
func (c *Controller) Flip() {
	if !c.overlay.IsOpen() {
		return
	}
	c.overlay.Toggle()
	c.view.ShowOverlay(c.overlay.Item(), c.overlay.Flipped())
}

// CloseOverlay hides the card and resets it to the front face.
func (c *Controller) CloseOverlay() {
	if !c.overlay.IsOpen() {
		return
	}
	c.overlay.Close()
	c.view.HideOverlay()
}

func (c *Controller) render() {
	if c.store.Filtering() {
		c.rebuild()
		return
	}
	filtered := c.store.Filtered()
	if c.rendered > len(filtered) {
		c.rebuild()
		return
	}
	c.view.Append(filtered[c.rendered:])
	c.rendered = len(filtered)
}

func (c *Controller) rebuild() {
	filtered := c.store.Filtered()
	c.view.Rebuild(filtered)
	c.rendered = len(filtered)
}
