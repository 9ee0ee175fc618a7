// Package storage defines note persistence backends.
package storage

import (
	"context"

	"github.com/hyperjump/kioku/internal/models"
)

// NoteStore loads and persists the note collection.
type NoteStore interface {
	// Load returns all notes in insertion order. Loose entries (bare
	// strings) are returned as raw notes so callers can normalize them.
	Load(ctx context.Context) ([]models.RawNote, error)

	// Save replaces the whole collection.
	Save(ctx context.Context, notes []models.Note) error

	// Append adds notes to the end of the collection.
	Append(ctx context.Context, notes ...models.Note) error

	Close() error
}
