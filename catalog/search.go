package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wkgunawan/pokedex"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the delay between the last keystroke and the search
// session it settles into.
const DefaultDebounce = 500 * time.Millisecond

// Coordinator owns search-session state. Keystrokes are debounced into at
// most one pending timer; each settled query becomes a session identified by
// a generation number. Only the most recent generation may publish results:
// superseded sessions are invalidated, not aborted, and their late results
// are dropped before touching shared state.
type Coordinator struct {
	ctrl     *Controller
	client   pokedex.Client
	cache    pokedex.CacheStore
	logger   *slog.Logger
	notify   EventFunc
	debounce time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation int
	query      string
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithDebounce sets the debounce delay.
// Defaults to DefaultDebounce (500ms) if not specified.
func WithDebounce(d time.Duration) CoordinatorOption {
	return func(s *Coordinator) {
		s.debounce = d
	}
}

// NewCoordinator creates a Coordinator attached to a Controller. The
// coordinator re-runs the active query whenever the controller lands a new
// page, so paged-in entities join live search results.
func NewCoordinator(ctrl *Controller, opts ...CoordinatorOption) *Coordinator {
	s := &Coordinator{
		ctrl:     ctrl,
		client:   ctrl.client,
		cache:    ctrl.cache,
		logger:   ctrl.logger,
		notify:   ctrl.notify,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	ctrl.onChange = s.requery
	return s
}

// SetQuery records a query text change. A non-empty change (re)starts the
// debounce timer; at most one timer is pending at any time. An empty query
// transitions straight back to idle: the displayed list is restored to the
// full catalog and any in-flight session is invalidated.
func (s *Coordinator) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	if query == s.query {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = query

	if query == "" {
		s.generation++
		s.mu.Unlock()
		s.ctrl.restoreDisplayed()
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if s.query != query {
			s.mu.Unlock()
			return
		}
		s.generation++
		gen := s.generation
		s.mu.Unlock()
		s.run(ctx, query, gen)
	})
	s.mu.Unlock()
}

// Clear resets the coordinator to idle, restoring the full catalog.
func (s *Coordinator) Clear() {
	s.SetQuery(context.Background(), "")
}

// Search executes one search session synchronously, bypassing the debounce
// timer, and returns the merged result list. Any pending or in-flight
// session is superseded.
func (s *Coordinator) Search(ctx context.Context, query string) []pokedex.Summary {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = query
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if query == "" {
		s.ctrl.restoreDisplayed()
		return s.ctrl.Snapshot().Displayed
	}
	return s.run(ctx, query, gen)
}

// run executes one search session: publish local matches immediately, race
// the two remote lookups, then merge and publish if still current.
func (s *Coordinator) run(ctx context.Context, query string, gen int) []pokedex.Summary {
	local := s.localFilter(query)
	s.publish(gen, slices.Clone(local))

	byName, byID := s.remoteLookups(ctx, query)

	merged := slices.Clone(local)
	for _, detail := range []*pokedex.Detail{byName, byID} {
		if detail == nil {
			continue
		}
		if s.stale(gen) {
			// Superseded mid-merge: no cache writes, no publishes.
			return merged
		}
		s.writeThrough(ctx, detail)
		if !pokedex.ContainsID(merged, detail.ID) {
			merged = append(merged, detail.Summary())
			pokedex.SortSummaries(merged)
		}
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return merged
	}
	for _, detail := range []*pokedex.Detail{byName, byID} {
		if detail != nil {
			s.ctrl.mergeIntoAll(detail.Summary())
		}
	}
	s.ctrl.setDisplayed(slices.Clone(merged))
	s.mu.Unlock()

	if len(merged) == 0 {
		s.emit(Event{Type: EventNoResults, Message: fmt.Sprintf("no results for %q", query)})
	}
	return merged
}

// localFilter matches catalog entries whose name contains the query
// (case-insensitive) or whose decimal id contains the query digits.
func (s *Coordinator) localFilter(query string) []pokedex.Summary {
	needle := strings.ToLower(query)

	var matches []pokedex.Summary
	for _, summary := range s.ctrl.allSnapshot() {
		if !summary.Valid() {
			continue
		}
		if strings.Contains(strings.ToLower(summary.Name), needle) ||
			strings.Contains(strconv.Itoa(summary.ID), query) {
			matches = append(matches, summary)
		}
	}
	return matches
}

// remoteLookups runs the exact-name lookup and, for numeric queries, the
// by-id lookup concurrently. Each falls back to nil on error without
// aborting its sibling.
func (s *Coordinator) remoteLookups(ctx context.Context, query string) (byName, byID *pokedex.Detail) {
	g := new(errgroup.Group)

	g.Go(func() error {
		detail, err := s.client.FetchDetailByName(ctx, query)
		if err != nil {
			s.logger.Debug("name lookup failed", "query", query, "err", err)
			return nil
		}
		byName = detail
		return nil
	})

	if id, err := strconv.Atoi(query); err == nil {
		g.Go(func() error {
			detail, err := s.client.FetchDetailByID(ctx, id)
			if err != nil {
				s.logger.Debug("id lookup failed", "id", id, "err", err)
				return nil
			}
			byID = detail
			return nil
		})
	}

	_ = g.Wait()
	return byName, byID
}

// requery re-runs the active query after the catalog changed. Returns false
// when no query is active, letting the controller publish the full list.
func (s *Coordinator) requery() bool {
	s.mu.Lock()
	query := s.query
	if query == "" {
		s.mu.Unlock()
		return false
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go s.run(context.Background(), query, gen)
	return true
}

// publish replaces the displayed list if the session is still current.
func (s *Coordinator) publish(gen int, list []pokedex.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.ctrl.setDisplayed(list)
}

// stale reports whether the session has been superseded.
func (s *Coordinator) stale(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.generation
}

// writeThrough persists a search-discovered detail and its derived summary,
// fail-soft.
func (s *Coordinator) writeThrough(ctx context.Context, detail *pokedex.Detail) {
	if err := s.cache.PutDetail(ctx, detail); err != nil {
		s.logger.Warn("cache write failed", "id", detail.ID, "err", err)
	}
	if err := s.cache.PutSummaries(ctx, []pokedex.Summary{detail.Summary()}); err != nil {
		s.logger.Warn("cache write failed", "id", detail.ID, "err", err)
	}
}

// emit delivers a status event if a callback is attached.
func (s *Coordinator) emit(event Event) {
	if s.notify != nil {
		s.notify(event)
	}
}
