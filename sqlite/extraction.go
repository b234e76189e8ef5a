package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/typemap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ typemap.ExtractionCache = (*ExtractionCache)(nil)

// ExtractionCache implements typemap.ExtractionCache using SQLite.
// A cached extraction is only returned while both the document content and
// the parser fingerprint match the stored record.
type ExtractionCache struct {
	db      *DB
	version string
}

// NewExtractionCache creates a new ExtractionCache. version is the parser
// fingerprint; records written under another one are treated as missing.
func NewExtractionCache(db *DB, version string) *ExtractionCache {
	return &ExtractionCache{db: db, version: version}
}

// FindExtraction returns the cached extraction for path and content.
func (c *ExtractionCache) FindExtraction(ctx context.Context, path string, content []byte) (*typemap.Extraction, error) {
	var (
		ext      = typemap.Extraction{Path: path}
		kind     string
		entries  string
		parsedAt string
	)

	err := c.db.QueryRowContext(ctx, `
		SELECT title, kind, skip_reason, entries, parsed_at
		FROM extractions
		WHERE path = ? AND content_hash = ? AND parser_version = ?
	`, path, hashContent(content), c.version).Scan(&ext.Title, &kind, &ext.SkipReason, &entries, &parsedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, typemap.Errorf(typemap.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	ext.Kind = typemap.Kind(kind)
	if ext.ParsedAt, err = parseRFC3339(parsedAt, "parsed_at"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entries), &ext.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries of %s: %w", path, err)
	}
	if len(ext.Entries) == 0 {
		ext.Entries = nil
	}

	return &ext, nil
}

// SaveExtraction stores ext for content, replacing any record for the same path.
// ParsedAt is set to the current time.
func (c *ExtractionCache) SaveExtraction(ctx context.Context, ext *typemap.Extraction, content []byte) error {
	if ext.Path == "" {
		return typemap.Errorf(typemap.EINVALID, "extraction path required")
	}

	entries := ext.Entries
	if entries == nil {
		entries = []typemap.Entry{}
	}
	buf, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries of %s: %w", ext.Path, err)
	}

	ext.ParsedAt = time.Now().UTC().Truncate(time.Second)

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO extractions (id, path, content_hash, parser_version, title, kind, skip_reason, entries, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			parser_version = excluded.parser_version,
			title = excluded.title,
			kind = excluded.kind,
			skip_reason = excluded.skip_reason,
			entries = excluded.entries,
			parsed_at = excluded.parsed_at
	`, uuid.New().String(), ext.Path, hashContent(content), c.version, ext.Title, string(ext.Kind),
		ext.SkipReason, string(buf), ext.ParsedAt.Format(time.RFC3339))

	return err
}
