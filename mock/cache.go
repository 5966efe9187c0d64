package mock

import (
	"context"

	"github.com/wkgunawan/pokedex"
)

var _ pokedex.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of pokedex.CacheStore.
type CacheStore struct {
	PutSummariesFn func(ctx context.Context, summaries []pokedex.Summary) error
	PutDetailFn    func(ctx context.Context, detail *pokedex.Detail) error
	SummariesFn    func(ctx context.Context) ([]pokedex.Summary, error)
	DetailFn       func(ctx context.Context, id int) (*pokedex.Detail, error)
}

func (s *CacheStore) PutSummaries(ctx context.Context, summaries []pokedex.Summary) error {
	return s.PutSummariesFn(ctx, summaries)
}

func (s *CacheStore) PutDetail(ctx context.Context, detail *pokedex.Detail) error {
	return s.PutDetailFn(ctx, detail)
}

func (s *CacheStore) Summaries(ctx context.Context) ([]pokedex.Summary, error) {
	return s.SummariesFn(ctx)
}

func (s *CacheStore) Detail(ctx context.Context, id int) (*pokedex.Detail, error) {
	return s.DetailFn(ctx, id)
}

// NoopCacheStore returns a CacheStore whose writes succeed and whose reads
// miss, for tests that don't exercise the cache.
func NoopCacheStore() *CacheStore {
	return &CacheStore{
		PutSummariesFn: func(context.Context, []pokedex.Summary) error { return nil },
		PutDetailFn:    func(context.Context, *pokedex.Detail) error { return nil },
		SummariesFn:    func(context.Context) ([]pokedex.Summary, error) { return nil, nil },
		DetailFn: func(_ context.Context, id int) (*pokedex.Detail, error) {
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "detail %d not cached", id)
		},
	}
}
