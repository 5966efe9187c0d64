package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wkgunawan/pokedex"
	pokehttp "github.com/wkgunawan/pokedex/http"
)

func TestClient_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("resolves summary ids from result URLs", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pokemon", r.URL.Path)
			assert.Equal(t, "0", r.URL.Query().Get("offset"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			fmt.Fprint(w, `{
				"count": 1302,
				"next": "https://pokeapi.co/api/v2/pokemon?offset=2&limit=2",
				"previous": null,
				"results": [
					{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"},
					{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"}
				]
			}`)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		page, err := client.FetchPage(context.Background(), 0, 2)
		require.NoError(t, err)

		assert.Equal(t, 1302, page.Count)
		assert.NotEmpty(t, page.Next)
		assert.Empty(t, page.Previous)
		require.Len(t, page.Results, 2)
		assert.Equal(t, pokedex.Summary{ID: 2, Name: "ivysaur", SourceURL: "https://pokeapi.co/api/v2/pokemon/2/"}, page.Results[0])
		assert.Equal(t, 1, page.Results[1].ID)
	})

	t.Run("malformed result URL yields id 0", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count": 1, "results": [{"name": "missingno", "url": "https://pokeapi.co/api/v2/pokemon/oops/"}]}`)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		page, err := client.FetchPage(context.Background(), 0, 1)
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, 0, page.Results[0].ID)
	})

	t.Run("returns EDECODE for a malformed payload", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count": "not-a-number"`)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		_, err := client.FetchPage(context.Background(), 0, 10)
		require.Error(t, err)
		assert.Equal(t, pokedex.EDECODE, pokedex.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE for server errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		_, err := client.FetchPage(context.Background(), 0, 10)
		require.Error(t, err)
		assert.Equal(t, pokedex.EUNAVAILABLE, pokedex.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE for unreachable host", func(t *testing.T) {
		t.Parallel()

		client := pokehttp.NewClient(
			pokehttp.WithBaseURL("http://non-existent-host.invalid"),
			pokehttp.WithTimeout(100*time.Millisecond),
		)

		_, err := client.FetchPage(context.Background(), 0, 10)
		require.Error(t, err)
		assert.Equal(t, pokedex.EUNAVAILABLE, pokedex.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			fmt.Fprint(w, `{"count": 0, "results": []}`)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.FetchPage(ctx, 0, 10)
		require.Error(t, err)
	})
}

func TestClient_FetchDetail(t *testing.T) {
	t.Parallel()

	detailBody := `{
		"id": 25,
		"name": "pikachu",
		"height": 4,
		"weight": 60,
		"abilities": [
			{"ability": {"name": "static", "url": "https://pokeapi.co/api/v2/ability/9/"}, "is_hidden": false},
			{"ability": {"name": "lightning-rod", "url": "https://pokeapi.co/api/v2/ability/31/"}, "is_hidden": true}
		],
		"types": [{"slot": 1, "type": {"name": "electric"}}],
		"sprites": {"front_default": "https://sprites.example.com/25.png"}
	}`

	t.Run("fetches by id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pokemon/25", r.URL.Path)
			fmt.Fprint(w, detailBody)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		detail, err := client.FetchDetailByID(context.Background(), 25)
		require.NoError(t, err)

		assert.Equal(t, 25, detail.ID)
		assert.Equal(t, "pikachu", detail.Name)
		assert.Equal(t, 4, detail.Height)
		assert.Equal(t, 60, detail.Weight)
		require.Len(t, detail.Abilities, 2)
		assert.Equal(t, "static", detail.Abilities[0].Name)
		assert.True(t, detail.Abilities[1].Hidden)
		require.Len(t, detail.Types, 1)
		assert.Equal(t, "electric", detail.Types[0].Name)
		assert.Equal(t, "https://sprites.example.com/25.png", detail.ImageURL)
	})

	t.Run("lowercases the name lookup", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pokemon/pikachu", r.URL.Path)
			fmt.Fprint(w, detailBody)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		detail, err := client.FetchDetailByName(context.Background(), "Pikachu")
		require.NoError(t, err)
		assert.Equal(t, 25, detail.ID)
	})

	t.Run("returns ENOTFOUND for unknown entities", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := pokehttp.NewClient(pokehttp.WithBaseURL(server.URL))

		_, err := client.FetchDetailByName(context.Background(), "missingno")
		require.Error(t, err)
		assert.Equal(t, pokedex.ENOTFOUND, pokedex.ErrorCode(err))
	})
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("throttles consecutive requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count": 0, "results": []}`)
		}))
		defer server.Close()

		client := pokehttp.NewClient(
			pokehttp.WithBaseURL(server.URL),
			pokehttp.WithRateLimit(20), // 50ms between requests
		)

		start := time.Now()
		for range 3 {
			_, err := client.FetchPage(context.Background(), 0, 10)
			require.NoError(t, err)
		}
		// First request is immediate, the next two wait ~50ms each.
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})
}
