package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/wkgunawan/pokedex"
)

// DefaultPageSize is the number of summaries fetched per page.
const DefaultPageSize = 10

// minCachedSummaries is the bootstrap threshold: a cache below this size is
// treated as a floor and refreshed remotely.
const minCachedSummaries = 10

// Controller owns the in-memory catalog and its pagination cursor. Page
// loads are serialized by a single-flight guard: a second call while one is
// in flight is a no-op, not queued.
type Controller struct {
	client pokedex.Client
	cache  pokedex.CacheStore
	logger *slog.Logger
	notify EventFunc

	pageSize int

	mu              sync.Mutex
	all             []pokedex.Summary
	displayed       []pokedex.Summary
	cursor          Cursor
	loading         bool
	initiallyLoaded bool

	// onChange is invoked (outside the lock) after a successful page
	// mutation. It returns true when an attached search coordinator has an
	// active query and will republish the displayed list itself.
	onChange func() bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPageSize sets the page size for remote fetches.
// Defaults to DefaultPageSize if not specified.
func WithPageSize(n int) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger used for fail-soft cache errors.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithNotify sets the status event callback.
func WithNotify(notify EventFunc) ControllerOption {
	return func(c *Controller) {
		c.notify = notify
	}
}

// NewController creates a Controller backed by the given client and cache.
func NewController(client pokedex.Client, cache pokedex.CacheStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		client:   client,
		cache:    cache,
		logger:   slog.New(slog.DiscardHandler),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cursor = Cursor{PageSize: c.pageSize, HasMore: true}
	return c
}

// Snapshot returns a copy of the controller's published state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		All:             slices.Clone(c.all),
		Displayed:       slices.Clone(c.displayed),
		Cursor:          c.cursor,
		Loading:         c.loading,
		InitiallyLoaded: c.initiallyLoaded,
	}
}

// Bootstrap seeds the catalog from the local cache and, when the cache holds
// fewer than minCachedSummaries entries, refreshes from the remote API. With
// a sufficiently populated cache no remote call is made, which is what keeps
// cold starts working offline.
func (c *Controller) Bootstrap(ctx context.Context) error {
	cached, err := c.cache.Summaries(ctx)
	if err != nil {
		// Cache is an optimization; a failed read degrades to a cold start.
		c.logger.Warn("cache read failed during bootstrap", "err", err)
		cached = nil
	}

	if len(cached) > 0 {
		c.mu.Lock()
		c.all = cached
		c.displayed = pokedex.ValidSummaries(cached)
		c.initiallyLoaded = true
		c.mu.Unlock()
	}

	if len(cached) < minCachedSummaries {
		return c.LoadFirstPage(ctx)
	}
	return nil
}

// LoadFirstPage fetches the page at offset 0 and replaces the catalog with
// it. A failure never erases existing data: the error is surfaced only when
// the catalog was empty before the call.
func (c *Controller) LoadFirstPage(ctx context.Context) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	c.emit(Event{Type: EventLoading, Message: "Catching Pokemon..."})

	page, err := c.client.FetchPage(ctx, 0, c.pageSize)
	if err != nil {
		c.mu.Lock()
		wasEmpty := len(c.all) == 0
		c.mu.Unlock()

		if wasEmpty {
			c.emit(Event{Type: EventError, Message: "failed to load Pokemon"})
			return err
		}
		c.emit(Event{Type: EventIdle})
		return nil
	}

	sorted := slices.Clone(page.Results)
	pokedex.SortSummaries(sorted)

	c.mu.Lock()
	c.all = sorted
	c.cursor = Cursor{PageSize: c.pageSize, HasMore: len(sorted) > 0}
	if len(sorted) > 0 {
		c.cursor.Offset = c.pageSize
	}
	c.initiallyLoaded = true
	c.mu.Unlock()

	c.writeThrough(ctx, sorted)
	c.republish()
	c.emit(Event{Type: EventIdle})
	return nil
}

// LoadNextPage fetches the page at the current cursor and appends it. It is
// a no-op while a load is in flight or once the catalog is exhausted. A
// fetch failure leaves all state unchanged and is never user-visible:
// retrying is simply scrolling again.
func (c *Controller) LoadNextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.cursor.HasMore {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	offset := c.cursor.Offset
	c.mu.Unlock()
	defer c.end()

	c.emit(Event{Type: EventLoading, Message: "Loading more Pokemon..."})

	page, err := c.client.FetchPage(ctx, offset, c.pageSize)
	if err != nil {
		c.emit(Event{Type: EventIdle})
		return err
	}

	fresh := slices.Clone(page.Results)
	pokedex.SortSummaries(fresh)

	c.mu.Lock()
	c.all = append(c.all, fresh...)
	pokedex.SortSummaries(c.all)
	if len(fresh) > 0 {
		c.cursor.Offset += c.pageSize
		c.cursor.HasMore = true
	} else {
		c.cursor.HasMore = false
	}
	c.mu.Unlock()

	if len(fresh) > 0 {
		c.writeThrough(ctx, fresh)
	}
	c.republish()
	c.emit(Event{Type: EventIdle})
	return nil
}

// Refresh re-syncs the catalog from the first page. Exposed as the explicit
// user-triggered variant of LoadFirstPage.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.LoadFirstPage(ctx)
}

// begin acquires the single-flight loading guard.
func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

// end releases the single-flight loading guard.
func (c *Controller) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// emit delivers a status event if a callback is attached.
func (c *Controller) emit(event Event) {
	if c.notify != nil {
		c.notify(event)
	}
}

// writeThrough persists fetched summaries, fail-soft.
func (c *Controller) writeThrough(ctx context.Context, summaries []pokedex.Summary) {
	if err := c.cache.PutSummaries(ctx, summaries); err != nil {
		c.logger.Warn("cache write failed", "count", len(summaries), "err", err)
	}
}

// republish recomputes the displayed list after a catalog mutation, unless
// an active search session takes over.
func (c *Controller) republish() {
	if c.onChange != nil && c.onChange() {
		return
	}
	c.mu.Lock()
	c.displayed = pokedex.ValidSummaries(c.all)
	c.mu.Unlock()
}

// setDisplayed replaces the displayed list. Used by the search coordinator.
func (c *Controller) setDisplayed(list []pokedex.Summary) {
	c.mu.Lock()
	c.displayed = list
	c.mu.Unlock()
}

// restoreDisplayed resets the displayed list to the full catalog.
func (c *Controller) restoreDisplayed() {
	c.mu.Lock()
	c.displayed = pokedex.ValidSummaries(c.all)
	c.mu.Unlock()
}

// mergeIntoAll appends a summary discovered by search, keeping the catalog
// sorted and free of duplicate ids.
func (c *Controller) mergeIntoAll(summary pokedex.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pokedex.ContainsID(c.all, summary.ID) {
		return
	}
	c.all = append(c.all, summary)
	pokedex.SortSummaries(c.all)
}

// allSnapshot returns a copy of the backing catalog list.
func (c *Controller) allSnapshot() []pokedex.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.all)
}
