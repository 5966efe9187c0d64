// Package slog provides logging decorators for pokedex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wkgunawan/pokedex"
)

// Ensure LoggingClient implements pokedex.Client.
var _ pokedex.Client = (*LoggingClient)(nil)

// LoggingClient wraps a Client with debug logging.
type LoggingClient struct {
	next   pokedex.Client
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next pokedex.Client, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// FetchPage delegates to the wrapped client and logs the operation.
func (c *LoggingClient) FetchPage(ctx context.Context, offset, limit int) (page *pokedex.ListPage, err error) {
	defer func(begin time.Time) {
		count := 0
		if page != nil {
			count = len(page.Results)
		}
		c.logger.Info("fetch page",
			"offset", offset,
			"limit", limit,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchPage(ctx, offset, limit)
}

// FetchDetailByID delegates to the wrapped client and logs the operation.
func (c *LoggingClient) FetchDetailByID(ctx context.Context, id int) (detail *pokedex.Detail, err error) {
	defer func(begin time.Time) {
		c.logger.Info("fetch detail by id",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchDetailByID(ctx, id)
}

// FetchDetailByName delegates to the wrapped client and logs the operation.
func (c *LoggingClient) FetchDetailByName(ctx context.Context, name string) (detail *pokedex.Detail, err error) {
	defer func(begin time.Time) {
		c.logger.Info("fetch detail by name",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchDetailByName(ctx, name)
}
