package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/kioku/internal/models"
)

// MatrixCache holds the embedding matrix for the most recent note collection
// state, keyed by the collection fingerprint. A hit returns the stored
// matrix without touching the provider; any mutation of the collection
// changes the fingerprint and forces recomputation. Concurrent misses on the
// same fingerprint coalesce into a single provider call.
type MatrixCache struct {
	mu          sync.Mutex
	fingerprint string
	matrix      [][]float32
	inflight    map[string]*computation
}

type computation struct {
	done   chan struct{}
	matrix [][]float32
	err    error
}

// NewMatrixCache returns an empty cache.
func NewMatrixCache() *MatrixCache {
	return &MatrixCache{inflight: make(map[string]*computation)}
}

// GetOrCompute returns the embedding matrix for notes, encoding all note
// contents in collection order via emb on a fingerprint miss. Exactly one
// provider call happens per distinct collection state, even under
// concurrent callers.
func (c *MatrixCache) GetOrCompute(ctx context.Context, notes []models.Note, emb Embedder) ([][]float32, error) {
	fp := Fingerprint(notes)

	c.mu.Lock()
	if c.fingerprint == fp && c.matrix != nil {
		m := c.matrix
		c.mu.Unlock()
		return m, nil
	}
	if comp, ok := c.inflight[fp]; ok {
		c.mu.Unlock()
		<-comp.done
		return comp.matrix, comp.err
	}
	comp := &computation{done: make(chan struct{})}
	c.inflight[fp] = comp
	c.mu.Unlock()

	texts := make([]string, len(notes))
	for i, n := range notes {
		texts[i] = n.Content
	}
	m, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		err = fmt.Errorf("encode %d notes: %w", len(notes), err)
	}
	comp.matrix, comp.err = m, err

	c.mu.Lock()
	delete(c.inflight, fp)
	if err == nil {
		c.fingerprint = fp
		c.matrix = m
	}
	c.mu.Unlock()
	close(comp.done)

	return comp.matrix, comp.err
}

// Invalidate drops the cached matrix. The next GetOrCompute recomputes.
func (c *MatrixCache) Invalidate() {
	c.mu.Lock()
	c.fingerprint = ""
	c.matrix = nil
	c.mu.Unlock()
}

// Adopt pairs a previously persisted matrix with the collection that has
// the given fingerprint. Returns false when the fingerprint does not match
// the notes (stale artifact); the cache is left unchanged in that case.
func (c *MatrixCache) Adopt(notes []models.Note, m [][]float32, fingerprint string) bool {
	if Fingerprint(notes) != fingerprint {
		return false
	}
	c.mu.Lock()
	c.fingerprint = fingerprint
	c.matrix = m
	c.mu.Unlock()
	return true
}

// Cached returns the current matrix and its fingerprint, or ok=false when
// the cache is empty.
func (c *MatrixCache) Cached() (m [][]float32, fingerprint string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matrix == nil {
		return nil, "", false
	}
	return c.matrix, c.fingerprint, true
}
