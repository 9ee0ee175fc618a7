// Package storage provides the JSON file implementation of NoteStore.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hyperjump/kioku/internal/models"
)

// FileStore keeps the note collection in a single JSON file. The file is a
// top-level array mixing bare strings and note objects.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// not required to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. A missing file is an empty collection, not an
// error.
func (s *FileStore) Load(ctx context.Context) ([]models.RawNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]models.RawNote, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.RawNote{}, nil
		}
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}

	var raw []models.RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse notes file %s: %w", s.path, err)
	}
	return raw, nil
}

// Save writes the whole collection, creating parent directories as needed.
// Notes are written as objects with readable indentation and unescaped text.
func (s *FileStore) Save(ctx context.Context, notes []models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(notes)
}

func (s *FileStore) save(notes []models.Note) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create notes directory: %w", err)
		}
	}

	if notes == nil {
		notes = []models.Note{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write notes file: %w", err)
	}
	return nil
}

// Append loads the collection, normalizes it, and saves it with the new
// notes added at the end.
func (s *FileStore) Append(ctx context.Context, notes ...models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.load()
	if err != nil {
		return err
	}
	existing, err := models.Normalize(raw)
	if err != nil {
		return err
	}
	return s.save(append(existing, notes...))
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
