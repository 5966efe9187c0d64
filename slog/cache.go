package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wkgunawan/pokedex"
)

// Ensure LoggingCacheStore implements pokedex.CacheStore.
var _ pokedex.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with debug logging.
type LoggingCacheStore struct {
	next   pokedex.CacheStore
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next pokedex.CacheStore, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, logger: logger}
}

// PutSummaries delegates to the wrapped store and logs the operation.
func (s *LoggingCacheStore) PutSummaries(ctx context.Context, summaries []pokedex.Summary) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache put summaries",
			"count", len(summaries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PutSummaries(ctx, summaries)
}

// PutDetail delegates to the wrapped store and logs the operation.
func (s *LoggingCacheStore) PutDetail(ctx context.Context, detail *pokedex.Detail) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache put detail",
			"id", detail.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PutDetail(ctx, detail)
}

// Summaries delegates to the wrapped store and logs the operation.
func (s *LoggingCacheStore) Summaries(ctx context.Context) (summaries []pokedex.Summary, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache read summaries",
			"count", len(summaries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summaries(ctx)
}

// Detail delegates to the wrapped store and logs the operation.
func (s *LoggingCacheStore) Detail(ctx context.Context, id int) (detail *pokedex.Detail, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache read detail",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Detail(ctx, id)
}
