package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/wkgunawan/pokedex"
)

// Compile-time interface verification.
var _ pokedex.CacheStore = (*CacheService)(nil)

// CacheService implements pokedex.CacheStore using SQLite.
type CacheService struct {
	db *DB
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB) *CacheService {
	return &CacheService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// upsertRecord writes one cache document, last write wins. A row whose
// content hash matches the incoming payload is left untouched, including its
// cached_at timestamp, so identical writes are idempotent.
func upsertRecord(ctx context.Context, db *DB, kind, discriminator string, entityID int, payload []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO cache (kind, discriminator, entity_id, payload, content_hash, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, discriminator) DO UPDATE SET
			entity_id = excluded.entity_id,
			payload = excluded.payload,
			content_hash = excluded.content_hash,
			cached_at = excluded.cached_at
		WHERE cache.content_hash <> excluded.content_hash
	`, kind, discriminator, entityID, string(payload), hashContent(string(payload)),
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// PutSummaries upserts catalog summaries.
func (s *CacheService) PutSummaries(ctx context.Context, summaries []pokedex.Summary) error {
	for _, summary := range summaries {
		payload, err := json.Marshal(summary)
		if err != nil {
			return pokedex.Errorf(pokedex.ECACHE, "failed to encode summary %d: %v", summary.ID, err)
		}
		if err := upsertRecord(ctx, s.db, pokedex.KindSummary, strconv.Itoa(summary.ID), summary.ID, payload); err != nil {
			return pokedex.Errorf(pokedex.ECACHE, "failed to cache summary %d: %v", summary.ID, err)
		}
	}
	return nil
}

// PutDetail upserts one detail record.
func (s *CacheService) PutDetail(ctx context.Context, detail *pokedex.Detail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return pokedex.Errorf(pokedex.ECACHE, "failed to encode detail %d: %v", detail.ID, err)
	}
	if err := upsertRecord(ctx, s.db, pokedex.KindDetail, strconv.Itoa(detail.ID), detail.ID, payload); err != nil {
		return pokedex.Errorf(pokedex.ECACHE, "failed to cache detail %d: %v", detail.ID, err)
	}
	return nil
}

// Summaries returns all cached summaries sorted ascending by id.
func (s *CacheService) Summaries(ctx context.Context) ([]pokedex.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM cache WHERE kind = ? ORDER BY entity_id ASC
	`, pokedex.KindSummary)
	if err != nil {
		return nil, pokedex.Errorf(pokedex.ECACHE, "failed to query summaries: %v", err)
	}
	defer rows.Close()

	var summaries []pokedex.Summary
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, pokedex.Errorf(pokedex.ECACHE, "failed to scan summary: %v", err)
		}

		var summary pokedex.Summary
		if err := json.Unmarshal([]byte(payload), &summary); err != nil {
			return nil, pokedex.Errorf(pokedex.ECACHE, "failed to decode summary: %v", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, pokedex.Errorf(pokedex.ECACHE, "failed to read summaries: %v", err)
	}
	return summaries, nil
}

// Detail returns the cached detail for an id.
func (s *CacheService) Detail(ctx context.Context, id int) (*pokedex.Detail, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM cache WHERE kind = ? AND discriminator = ?
	`, pokedex.KindDetail, strconv.Itoa(id)).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, pokedex.Errorf(pokedex.ENOTFOUND, "detail %d not cached", id)
	}
	if err != nil {
		return nil, pokedex.Errorf(pokedex.ECACHE, "failed to query detail %d: %v", id, err)
	}

	var detail pokedex.Detail
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		return nil, pokedex.Errorf(pokedex.ECACHE, "failed to decode detail %d: %v", id, err)
	}
	return &detail, nil
}
