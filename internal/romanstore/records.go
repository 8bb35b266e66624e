package romanstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"writingsystems/internal/engines"
)

// DefaultSearchLimit caps Search when the caller passes a non-positive limit.
const DefaultSearchLimit = 50

var (
	// ErrMissingBatch reports a Save call without a batch identifier.
	ErrMissingBatch = errors.New("batch id is required")
	// ErrEmptyQuery reports a search query with no searchable characters.
	ErrEmptyQuery = errors.New("search query is empty")
)

// Record is one stored romanization.
type Record struct {
	ID            int64     `json:"id"`
	BatchID       string    `json:"batch_id"`
	RequestedTags string    `json:"requested_tags"`
	SearchKey     string    `json:"search_key"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	engines.RomanString
}

const recordColumns = "id, batch_id, original, original_lang_tag, requested_tags, romanized, engine, search_key, created_at, updated_at"

// SearchKey normalizes romanized text for prefix matching.
func SearchKey(romanized string) string {
	return slug.Make(romanized)
}

// Save upserts results under batchID. langTags records the tags the caller
// asked for. It returns the number of rows written.
func (s *Store) Save(ctx context.Context, batchID, langTags string, results []engines.RomanString) (int, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(batchID) == "" {
		return 0, ErrMissingBatch
	}
	if len(results) == 0 {
		return 0, nil
	}

	timestamp := s.now().UTC().Format(time.RFC3339Nano)
	saved := 0
	err := retryOnBusy(ctx, func() error {
		saved = 0
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO romanizations (
            batch_id, original, original_lang_tag, requested_tags, romanized,
            engine, search_key, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(original, original_lang_tag, engine, romanized) DO UPDATE SET
            batch_id = excluded.batch_id,
            requested_tags = excluded.requested_tags,
            updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare save: %w", err)
		}
		defer stmt.Close()

		for _, r := range results {
			if _, err := stmt.ExecContext(ctx,
				batchID,
				r.Original,
				r.OriginalLangTag,
				langTags,
				r.Romanized,
				r.Engine,
				SearchKey(r.Romanized),
				timestamp,
				timestamp,
			); err != nil {
				return fmt.Errorf("save %q (%s): %w", r.Romanized, r.Engine, err)
			}
			saved++
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

// Lookup returns every stored romanization of original in insertion order.
func (s *Store) Lookup(ctx context.Context, original string) ([]Record, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM romanizations WHERE original = ? ORDER BY id`,
		original,
	)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	return collectRecords(rows)
}

// Search returns records whose search key starts with the normalized query.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	key := SearchKey(query)
	if key == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	// slug output is limited to [a-z0-9-], so the key needs no LIKE escaping.
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM romanizations
         WHERE search_key LIKE ? ORDER BY search_key, id LIMIT ?`,
		key+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return collectRecords(rows)
}

// Count returns the number of stored romanizations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM romanizations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// Clear removes every stored romanization and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM romanizations`)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}
	return removed, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		record     Record
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.BatchID,
		&record.Original,
		&record.OriginalLangTag,
		&record.RequestedTags,
		&record.Romanized,
		&record.Engine,
		&record.SearchKey,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return Record{}, fmt.Errorf("scan record: %w", err)
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}
