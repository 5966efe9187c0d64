package mock

import (
	"context"

	"github.com/wkgunawan/pokedex"
)

var _ pokedex.Client = (*Client)(nil)

// Client is a mock implementation of pokedex.Client.
type Client struct {
	FetchPageFn         func(ctx context.Context, offset, limit int) (*pokedex.ListPage, error)
	FetchDetailByIDFn   func(ctx context.Context, id int) (*pokedex.Detail, error)
	FetchDetailByNameFn func(ctx context.Context, name string) (*pokedex.Detail, error)
}

func (c *Client) FetchPage(ctx context.Context, offset, limit int) (*pokedex.ListPage, error) {
	return c.FetchPageFn(ctx, offset, limit)
}

func (c *Client) FetchDetailByID(ctx context.Context, id int) (*pokedex.Detail, error) {
	return c.FetchDetailByIDFn(ctx, id)
}

func (c *Client) FetchDetailByName(ctx context.Context, name string) (*pokedex.Detail, error) {
	return c.FetchDetailByNameFn(ctx, name)
}
