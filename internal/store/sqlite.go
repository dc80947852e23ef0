// Package store is the authoritative local persistence layer: a small
// SQLite-backed key-value table holding the serialized document and
// its metadata record.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DocumentKey is the key the serialized board document lives under.
// The metadata record is stored under a key derived from it.
const DocumentKey = "board"

// Meta is the persistence metadata kept alongside the document. It is
// only used to display the last-saved time, never for deciding which
// copy of the document is authoritative.
type Meta struct {
	UpdatedAt time.Time `json:"updatedAt"`
}

// SQLiteStore implements document persistence on a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: the store is single-writer and this keeps
	// in-memory databases on the connection that ran the migrations.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveDocument writes the serialized document and its metadata record
// in a single transaction. The document is always written as one unit
// under one key, so a crash mid-save cannot leave a half-updated copy
// behind (relying on SQLite's own single-transaction atomicity).
func (s *SQLiteStore) SaveDocument(ctx context.Context, raw []byte) error {
	now := time.Now().UTC()

	meta, err := json.Marshal(Meta{UpdatedAt: now})
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT OR REPLACE INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)`

	if _, err := tx.ExecContext(ctx, upsert, DocumentKey, string(raw), now); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, metaKey(DocumentKey), string(meta), now); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	return tx.Commit()
}

// LoadDocument returns the raw serialized document and whether one was
// present. It does not interpret the bytes; corruption handling is the
// loader's concern.
func (s *SQLiteStore) LoadDocument(ctx context.Context) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM documents WHERE key = ?", DocumentKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading document: %w", err)
	}
	return []byte(value), true, nil
}

// LastUpdated reads the metadata record and reports when the document
// was last saved. Absent or unreadable metadata is reported as not
// present, never as an error.
func (s *SQLiteStore) LastUpdated(ctx context.Context) (time.Time, bool) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM documents WHERE key = ?", metaKey(DocumentKey))
	if err != nil {
		return time.Time{}, false
	}

	var meta Meta
	if err := json.Unmarshal([]byte(value), &meta); err != nil || meta.UpdatedAt.IsZero() {
		return time.Time{}, false
	}
	return meta.UpdatedAt, true
}

// SaveSnapshot retains one serialized pre-mutation copy of the
// document, overwriting whatever the slot held before.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, raw []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)`,
		snapshotKey(DocumentKey), string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the retained undo snapshot, if any.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM documents WHERE key = ?", snapshotKey(DocumentKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading snapshot: %w", err)
	}
	return []byte(value), true, nil
}

// DeleteSnapshot empties the undo slot.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE key = ?", snapshotKey(DocumentKey))
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// metaKey derives the metadata key for a document key.
func metaKey(key string) string {
	return key + ".meta"
}

// snapshotKey derives the undo-slot key for a document key.
func snapshotKey(key string) string {
	return key + ".undo"
}
