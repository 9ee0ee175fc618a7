package storage

import (
	"fmt"

	"github.com/hyperjump/kioku/internal/config"
)

// New creates the NoteStore selected by the storage configuration.
func New(cfg *config.StorageConfig) (NoteStore, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.NotesPath), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.DatabasePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
