package server

import (
	"context"
	"sync"

	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/search"
	"github.com/hyperjump/kioku/internal/storage"
)

// AppState holds the in-memory note collection shared by handlers. All
// access goes through the mutex so reloads and searches do not race.
type AppState struct {
	mu     sync.Mutex
	notes  []models.Note
	store  storage.NoteStore
	engine *search.Engine
}

// NewAppState creates state over the given store and engine. Call Reload to
// populate the collection.
func NewAppState(store storage.NoteStore, engine *search.Engine) *AppState {
	return &AppState{store: store, engine: engine}
}

// Reload reads the collection from the store, replacing the in-memory notes.
func (a *AppState) Reload(ctx context.Context) error {
	raw, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	notes, err := models.Normalize(raw)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.notes = notes
	a.mu.Unlock()
	return nil
}

// Notes returns a copy of the current collection.
func (a *AppState) Notes() []models.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Note, len(a.notes))
	copy(out, a.notes)
	return out
}

// Count returns the collection size.
func (a *AppState) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.notes)
}

// Replace persists notes as the whole collection and swaps them in.
func (a *AppState) Replace(ctx context.Context, notes []models.Note) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Save(ctx, notes); err != nil {
		return err
	}
	a.notes = notes
	a.engine.Cache().Invalidate()
	return nil
}

// Append persists new notes at the end of the collection and adds them to
// the in-memory copy.
func (a *AppState) Append(ctx context.Context, notes ...models.Note) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Append(ctx, notes...); err != nil {
		return err
	}
	a.notes = append(a.notes, notes...)
	a.engine.Cache().Invalidate()
	return nil
}

// Search runs a retrieval over the current collection. Note embeddings come
// from the engine's matrix cache, so repeated searches over an unchanged
// collection reuse the cached matrix.
func (a *AppState) Search(ctx context.Context, params models.SearchParams) ([]models.Result, error) {
	return a.engine.SearchNotes(ctx, params, a.Notes())
}

// Engine returns the retrieval engine.
func (a *AppState) Engine() *search.Engine {
	return a.engine
}
