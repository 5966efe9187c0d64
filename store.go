package pokedex

import "context"

// Cache record kinds. The persisted key space is "<kind>::<discriminator>"
// where the discriminator is the entity id for summaries/details and the
// email for users.
const (
	KindSummary = "summary"
	KindDetail  = "detail"
	KindUser    = "user"
)

// CacheStore is the durable local mirror of remote catalog data.
//
// The cache is an optimization, never a correctness dependency for
// summary/detail records: callers treat errors from those operations as
// fail-soft (log and continue). User records have no remote fallback, so
// their errors propagate to the caller.
type CacheStore interface {
	// PutSummaries upserts catalog summaries, last write wins. Writing a
	// summary with unchanged content leaves the stored record untouched.
	PutSummaries(ctx context.Context, summaries []Summary) error

	// PutDetail upserts one detail record.
	PutDetail(ctx context.Context, detail *Detail) error

	// Summaries returns all cached summaries sorted ascending by id.
	Summaries(ctx context.Context) ([]Summary, error)

	// Detail returns the cached detail for an id.
	// Returns ENOTFOUND on a miss.
	Detail(ctx context.Context, id int) (*Detail, error)
}
