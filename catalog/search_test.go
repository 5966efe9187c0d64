package catalog_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wkgunawan/pokedex"
	"github.com/wkgunawan/pokedex/catalog"
	"github.com/wkgunawan/pokedex/mock"
)

// namedSummaries is a seed catalog large enough to bootstrap offline.
func namedSummaries() []pokedex.Summary {
	names := map[int]string{
		1: "bulbasaur", 2: "ivysaur", 3: "venusaur", 4: "charmander",
		5: "charmeleon", 6: "charizard", 7: "squirtle", 8: "wartortle",
		9: "blastoise", 10: "caterpie", 11: "metapod", 25: "pikachu",
	}
	var summaries []pokedex.Summary
	for id, name := range names {
		summaries = append(summaries, pokedex.Summary{ID: id, Name: name})
	}
	pokedex.SortSummaries(summaries)
	return summaries
}

func notFoundClient() *mock.Client {
	return &mock.Client{
		FetchDetailByNameFn: func(_ context.Context, name string) (*pokedex.Detail, error) {
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "no pokemon %q", name)
		},
		FetchDetailByIDFn: func(_ context.Context, id int) (*pokedex.Detail, error) {
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "no pokemon %d", id)
		},
	}
}

// bootstrappedController seeds a controller from the given summaries without
// touching the network.
func bootstrappedController(t *testing.T, client pokedex.Client, summaries []pokedex.Summary, opts ...catalog.ControllerOption) *catalog.Controller {
	t.Helper()
	ctrl := catalog.NewController(client, cachedStore(summaries), opts...)
	require.NoError(t, ctrl.Bootstrap(context.Background()))
	return ctrl
}

func TestCoordinator_SetQuery(t *testing.T) {
	t.Parallel()

	t.Run("debounces a keystroke burst into one session", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var lookups []string
		client := notFoundClient()
		client.FetchDetailByNameFn = func(_ context.Context, name string) (*pokedex.Detail, error) {
			mu.Lock()
			lookups = append(lookups, name)
			mu.Unlock()
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "no pokemon %q", name)
		}

		ctrl := bootstrappedController(t, client, namedSummaries())
		coord := catalog.NewCoordinator(ctrl, catalog.WithDebounce(60*time.Millisecond))

		ctx := context.Background()
		coord.SetQuery(ctx, "p")
		time.Sleep(5 * time.Millisecond)
		coord.SetQuery(ctx, "pi")
		time.Sleep(5 * time.Millisecond)
		coord.SetQuery(ctx, "pik")

		time.Sleep(250 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"pik"}, lookups, "only the settled query reaches the network")

		displayed := ctrl.Snapshot().Displayed
		require.Len(t, displayed, 1)
		assert.Equal(t, "pikachu", displayed[0].Name)
	})

	t.Run("clearing the query cancels the pending session and restores the catalog", func(t *testing.T) {
		t.Parallel()

		var lookups atomic.Int64
		client := notFoundClient()
		client.FetchDetailByNameFn = func(_ context.Context, name string) (*pokedex.Detail, error) {
			lookups.Add(1)
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "no pokemon %q", name)
		}

		ctrl := bootstrappedController(t, client, namedSummaries())
		coord := catalog.NewCoordinator(ctrl, catalog.WithDebounce(80*time.Millisecond))

		ctx := context.Background()
		coord.SetQuery(ctx, "pika")
		coord.SetQuery(ctx, "")

		time.Sleep(200 * time.Millisecond)

		assert.Equal(t, int64(0), lookups.Load(), "cancelled timer never fires")
		assert.Len(t, ctrl.Snapshot().Displayed, len(namedSummaries()))
	})

	t.Run("a superseded session cannot publish late results", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		entered := make(chan struct{})

		client := notFoundClient()
		client.FetchDetailByNameFn = func(_ context.Context, name string) (*pokedex.Detail, error) {
			if name == "bulba" {
				close(entered)
				<-release
				return &pokedex.Detail{ID: 1, Name: "bulbasaur"}, nil
			}
			return nil, pokedex.Errorf(pokedex.ENOTFOUND, "no pokemon %q", name)
		}

		ctrl := bootstrappedController(t, client, namedSummaries())
		coord := catalog.NewCoordinator(ctrl, catalog.WithDebounce(10*time.Millisecond))

		ctx := context.Background()
		coord.SetQuery(ctx, "bulba")
		<-entered // first session is now blocked mid-lookup

		coord.SetQuery(ctx, "pika")
		assert.Eventually(t, func() bool {
			displayed := ctrl.Snapshot().Displayed
			return len(displayed) == 1 && displayed[0].Name == "pikachu"
		}, time.Second, 5*time.Millisecond)

		close(release)
		time.Sleep(50 * time.Millisecond)

		displayed := ctrl.Snapshot().Displayed
		require.Len(t, displayed, 1)
		assert.Equal(t, "pikachu", displayed[0].Name, "stale session result was dropped")
	})
}

func TestCoordinator_Search(t *testing.T) {
	t.Parallel()

	t.Run("numeric query deduplicates the local hit against the id lookup", func(t *testing.T) {
		t.Parallel()

		var detailWrites atomic.Int64
		store := cachedStore(summaryRange(1, 30))
		store.PutDetailFn = func(context.Context, *pokedex.Detail) error {
			detailWrites.Add(1)
			return nil
		}

		client := notFoundClient()
		client.FetchDetailByIDFn = func(_ context.Context, id int) (*pokedex.Detail, error) {
			require.Equal(t, 25, id)
			return &pokedex.Detail{ID: 25, Name: "pikachu"}, nil
		}

		ctrl := catalog.NewController(client, store)
		require.NoError(t, ctrl.Bootstrap(context.Background()))
		coord := catalog.NewCoordinator(ctrl)

		merged := coord.Search(context.Background(), "25")

		require.Len(t, merged, 1)
		assert.Equal(t, 25, merged[0].ID)
		assert.Equal(t, int64(1), detailWrites.Load(), "discovered detail is written through")
	})

	t.Run("remote-only match joins the catalog and the cache", func(t *testing.T) {
		t.Parallel()

		var cachedSummaries []pokedex.Summary
		store := cachedStore(namedSummaries())
		store.PutSummariesFn = func(_ context.Context, summaries []pokedex.Summary) error {
			cachedSummaries = append(cachedSummaries, summaries...)
			return nil
		}

		client := notFoundClient()
		client.FetchDetailByNameFn = func(_ context.Context, name string) (*pokedex.Detail, error) {
			require.Equal(t, "mewtwo", name)
			return &pokedex.Detail{ID: 150, Name: "mewtwo"}, nil
		}

		ctrl := catalog.NewController(client, store)
		require.NoError(t, ctrl.Bootstrap(context.Background()))
		coord := catalog.NewCoordinator(ctrl)

		merged := coord.Search(context.Background(), "mewtwo")

		require.Len(t, merged, 1)
		assert.Equal(t, 150, merged[0].ID)

		snap := ctrl.Snapshot()
		assert.True(t, pokedex.ContainsID(snap.All, 150), "discovered entity joins the backing catalog")
		require.Len(t, cachedSummaries, 1)
		assert.Equal(t, 150, cachedSummaries[0].ID)
	})

	t.Run("no matches anywhere emits a no-results event", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []catalog.Event
		notify := func(e catalog.Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}

		ctrl := bootstrappedController(t, notFoundClient(), namedSummaries(), catalog.WithNotify(notify))
		coord := catalog.NewCoordinator(ctrl)

		merged := coord.Search(context.Background(), "zzz")
		assert.Empty(t, merged)

		mu.Lock()
		defer mu.Unlock()
		require.NotEmpty(t, events)
		last := events[len(events)-1]
		assert.Equal(t, catalog.EventNoResults, last.Type)
		assert.Equal(t, `no results for "zzz"`, last.Message)
	})

	t.Run("empty query restores the full catalog", func(t *testing.T) {
		t.Parallel()

		ctrl := bootstrappedController(t, notFoundClient(), namedSummaries())
		coord := catalog.NewCoordinator(ctrl)
		ctx := context.Background()

		require.Len(t, coord.Search(ctx, "pika"), 1)
		assert.Len(t, coord.Search(ctx, ""), len(namedSummaries()))
	})
}

func TestCoordinator_RequeryOnPageLoad(t *testing.T) {
	t.Parallel()

	client := notFoundClient()
	client.FetchPageFn = func(_ context.Context, offset, limit int) (*pokedex.ListPage, error) {
		return &pokedex.ListPage{Results: []pokedex.Summary{
			{ID: 125, Name: "pikablu"},
		}}, nil
	}

	ctrl := bootstrappedController(t, client, namedSummaries())
	coord := catalog.NewCoordinator(ctrl)
	ctx := context.Background()

	merged := coord.Search(ctx, "pika")
	require.Len(t, merged, 1)

	// A page landing mid-search must fold new matches into the live results.
	require.NoError(t, ctrl.LoadNextPage(ctx))

	assert.Eventually(t, func() bool {
		displayed := ctrl.Snapshot().Displayed
		return len(displayed) == 2 &&
			pokedex.ContainsID(displayed, 25) &&
			pokedex.ContainsID(displayed, 125)
	}, time.Second, 5*time.Millisecond)
}
