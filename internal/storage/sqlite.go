// Package storage provides the SQLite implementation of NoteStore.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kioku/internal/models"
)

// SQLiteStore implements NoteStore using SQLite. Collection order is kept in
// an explicit position column so retrieval indices stay stable.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		tags TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notes_position ON notes(position);
	`
	_, err := db.Exec(schema)
	return err
}

// Load returns all notes ordered by position.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.RawNote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content, category, tags FROM notes ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raw := []models.RawNote{}
	for rows.Next() {
		var note models.Note
		var tagsJSON string
		if err := rows.Scan(&note.Content, &note.Category, &tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		raw = append(raw, models.RawFromNote(note))
	}
	return raw, rows.Err()
}

// Save replaces the whole collection in a transaction.
func (s *SQLiteStore) Save(ctx context.Context, notes []models.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return err
	}
	if err := insertNotes(ctx, tx, 0, notes); err != nil {
		return err
	}
	return tx.Commit()
}

// Append adds notes after the current highest position.
func (s *SQLiteStore) Append(ctx context.Context, notes ...models.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position)+1, 0) FROM notes`).Scan(&next)
	if err != nil {
		return err
	}
	if err := insertNotes(ctx, tx, next, notes); err != nil {
		return err
	}
	return tx.Commit()
}

func insertNotes(ctx context.Context, tx *sql.Tx, start int, notes []models.Note) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (id, position, content, category, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, note := range notes {
		tags := note.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), start+i, note.Content, note.Category, string(tagsJSON), now,
		); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored notes.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
