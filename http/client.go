// Package http provides an HTTP-based implementation of pokedex.Client
// against the PokeAPI JSON shape.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wkgunawan/pokedex"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// Ensure Client implements pokedex.Client at compile time.
var _ pokedex.Client = (*Client)(nil)

// Client fetches catalog data over HTTP. It owns no retry policy: each call
// is a single round trip whose failure is surfaced to the caller.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the remote API base URL.
// Defaults to DefaultBaseURL if not specified.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit throttles outgoing requests to rps requests per second with
// a burst of 1. Unset means no client-side throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new PokeAPI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}

	return c
}

// listResponse mirrors the paginated list payload.
type listResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// detailResponse mirrors the detail payload.
type detailResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Height    int    `json:"height"`
	Weight    int    `json:"weight"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"ability"`
		IsHidden bool `json:"is_hidden"`
	} `json:"abilities"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// FetchPage retrieves one page of catalog summaries.
func (c *Client) FetchPage(ctx context.Context, offset, limit int) (*pokedex.ListPage, error) {
	url := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", c.baseURL, offset, limit)

	var payload listResponse
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	page := &pokedex.ListPage{
		Count:   payload.Count,
		Results: make([]pokedex.Summary, 0, len(payload.Results)),
	}
	if payload.Next != nil {
		page.Next = *payload.Next
	}
	if payload.Previous != nil {
		page.Previous = *payload.Previous
	}
	for _, result := range payload.Results {
		page.Results = append(page.Results, pokedex.Summary{
			ID:        pokedex.SummaryIDFromURL(result.URL),
			Name:      result.Name,
			SourceURL: result.URL,
		})
	}

	return page, nil
}

// FetchDetailByID retrieves one detail record by entity id.
func (c *Client) FetchDetailByID(ctx context.Context, id int) (*pokedex.Detail, error) {
	return c.fetchDetail(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id))
}

// FetchDetailByName retrieves one detail record by exact name.
func (c *Client) FetchDetailByName(ctx context.Context, name string) (*pokedex.Detail, error) {
	return c.fetchDetail(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, strings.ToLower(name)))
}

func (c *Client) fetchDetail(ctx context.Context, url string) (*pokedex.Detail, error) {
	var payload detailResponse
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	detail := &pokedex.Detail{
		ID:       payload.ID,
		Name:     payload.Name,
		Height:   payload.Height,
		Weight:   payload.Weight,
		ImageURL: payload.Sprites.FrontDefault,
	}
	for _, a := range payload.Abilities {
		detail.Abilities = append(detail.Abilities, pokedex.Ability{
			Name:   a.Ability.Name,
			URL:    a.Ability.URL,
			Hidden: a.IsHidden,
		})
	}
	for _, t := range payload.Types {
		detail.Types = append(detail.Types, pokedex.TypeSlot{
			Slot: t.Slot,
			Name: t.Type.Name,
		})
	}

	return detail, nil
}

// get performs one GET round trip and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, url string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return pokedex.Errorf(pokedex.EUNAVAILABLE, "request canceled: %v", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pokedex.Errorf(pokedex.EINVALID, "invalid request URL %q: %v", url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return pokedex.Errorf(pokedex.EUNAVAILABLE, "request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pokedex.Errorf(pokedex.ENOTFOUND, "resource not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return pokedex.Errorf(pokedex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return pokedex.Errorf(pokedex.EDECODE, "failed to decode response from %s: %v", url, err)
	}

	return nil
}
