package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wkgunawan/pokedex"
)

// DetailLoader loads one entity detail at a time: a cached copy is published
// immediately as a provisional result, then a remote fetch always follows
// and overwrites the cache. A loader serves a single entity per load;
// Clear resets it for reuse with another id.
type DetailLoader struct {
	client pokedex.Client
	cache  pokedex.CacheStore
	logger *slog.Logger
	notify EventFunc

	mu      sync.Mutex
	loading bool
	id      int
	detail  *pokedex.Detail
}

// DetailLoaderOption configures a DetailLoader.
type DetailLoaderOption func(*DetailLoader)

// WithDetailLogger sets the logger used for fail-soft cache errors.
func WithDetailLogger(logger *slog.Logger) DetailLoaderOption {
	return func(l *DetailLoader) {
		l.logger = logger
	}
}

// WithDetailNotify sets the status event callback.
func WithDetailNotify(notify EventFunc) DetailLoaderOption {
	return func(l *DetailLoader) {
		l.notify = notify
	}
}

// NewDetailLoader creates a DetailLoader.
func NewDetailLoader(client pokedex.Client, cache pokedex.CacheStore, opts ...DetailLoaderOption) *DetailLoader {
	l := &DetailLoader{
		client: client,
		cache:  cache,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the detail for an id. The cached record, when present, is
// published first; the remote fetch then runs regardless of the cache hit.
// A remote failure after a cache hit is suppressed: stale-but-present data
// wins over a loud failure. A second call while a load is in flight is a
// no-op returning the currently published detail.
func (l *DetailLoader) Load(ctx context.Context, id int) (*pokedex.Detail, error) {
	l.mu.Lock()
	if l.loading {
		current := l.detail
		l.mu.Unlock()
		return current, nil
	}
	l.loading = true
	l.id = id
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	published := false
	if cached, err := l.cache.Detail(ctx, id); err == nil {
		l.mu.Lock()
		l.detail = cached
		l.mu.Unlock()
		published = true
	} else if pokedex.ErrorCode(err) != pokedex.ENOTFOUND {
		l.logger.Warn("detail cache read failed", "id", id, "err", err)
	}

	l.emit(Event{Type: EventLoading, Message: "Loading Pokemon Details..."})

	fresh, err := l.client.FetchDetailByID(ctx, id)
	if err != nil {
		if published {
			l.emit(Event{Type: EventIdle})
			l.mu.Lock()
			current := l.detail
			l.mu.Unlock()
			return current, nil
		}
		l.emit(Event{Type: EventError, Message: pokedex.ErrorMessage(err)})
		return nil, err
	}

	l.mu.Lock()
	l.detail = fresh
	l.mu.Unlock()

	if err := l.cache.PutDetail(ctx, fresh); err != nil {
		l.logger.Warn("detail cache write failed", "id", id, "err", err)
	}

	l.emit(Event{Type: EventIdle})
	return fresh, nil
}

// Detail returns the currently published detail, which may be provisional.
func (l *DetailLoader) Detail() *pokedex.Detail {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.detail
}

// Clear resets the loader for reuse with a new id.
func (l *DetailLoader) Clear() {
	l.mu.Lock()
	l.detail = nil
	l.id = 0
	l.mu.Unlock()
}

// emit delivers a status event if a callback is attached.
func (l *DetailLoader) emit(event Event) {
	if l.notify != nil {
		l.notify(event)
	}
}
