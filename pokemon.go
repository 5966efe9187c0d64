package pokedex

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Summary is a lightweight catalog entry used for list display.
// Summaries are immutable once constructed; updates replace, never patch.
type Summary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SourceURL string `json:"url,omitempty"`
}

// Valid reports whether the summary carries a resolvable id. An id of 0
// denotes a malformed source URL; such entries stay in the backing list but
// are hidden from display.
func (s Summary) Valid() bool {
	return s.ID > 0
}

// SummaryIDFromURL extracts the entity id from the trailing numeric path
// segment of a resource URL (e.g. ".../pokemon/25/" -> 25). Returns 0 when
// the URL is empty or the segment is not a number.
func SummaryIDFromURL(rawURL string) int {
	segments := strings.FieldsFunc(rawURL, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return 0
	}
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Detail is the full entity record fetched on demand.
type Detail struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Height    int        `json:"height,omitempty"`
	Weight    int        `json:"weight,omitempty"`
	Abilities []Ability  `json:"abilities,omitempty"`
	Types     []TypeSlot `json:"types,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
}

// Summary derives the catalog entry for a detail record.
func (d *Detail) Summary() Summary {
	return Summary{
		ID:        d.ID,
		Name:      d.Name,
		SourceURL: fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", d.ID),
	}
}

// Ability is one ability slot of a detail record.
type Ability struct {
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// TypeSlot is one type slot of a detail record.
type TypeSlot struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

// ListPage is one page of the remote catalog listing.
type ListPage struct {
	Count    int
	Next     string
	Previous string
	Results  []Summary
}

// Client fetches catalog data from the remote API. Implementations are
// stateless and idempotent: no retries, no local side effects. Failures are
// surfaced as coded errors (EUNAVAILABLE, EDECODE, ENOTFOUND).
type Client interface {
	// FetchPage retrieves one page of catalog summaries.
	FetchPage(ctx context.Context, offset, limit int) (*ListPage, error)

	// FetchDetailByID retrieves one detail record by entity id.
	// Returns ENOTFOUND for an unknown id.
	FetchDetailByID(ctx context.Context, id int) (*Detail, error)

	// FetchDetailByName retrieves one detail record by exact name.
	// The name is lowercased before the lookup.
	// Returns ENOTFOUND for an unknown name.
	FetchDetailByName(ctx context.Context, name string) (*Detail, error)
}

// SortSummaries sorts summaries ascending by id in place.
func SortSummaries(summaries []Summary) {
	slices.SortFunc(summaries, func(a, b Summary) int { return a.ID - b.ID })
}

// ValidSummaries returns the display-facing subset of summaries, dropping
// entries with an unresolvable id.
func ValidSummaries(summaries []Summary) []Summary {
	valid := make([]Summary, 0, len(summaries))
	for _, s := range summaries {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}

// ContainsID reports whether summaries holds an entry with the given id.
func ContainsID(summaries []Summary, id int) bool {
	return slices.ContainsFunc(summaries, func(s Summary) bool { return s.ID == id })
}
