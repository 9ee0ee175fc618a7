// Package search provides the semantic retrieval engine.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/kioku/internal/embedding"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/vector"
)

// Engine ranks notes against a query by cosine similarity. It holds no note
// state: the collection and its embedding matrix are passed in and owned by
// the caller.
type Engine struct {
	embedder embedding.Embedder
	cache    *embedding.MatrixCache
}

// NewEngine creates an engine with the given provider and matrix cache.
func NewEngine(embedder embedding.Embedder, cache *embedding.MatrixCache) *Engine {
	return &Engine{embedder: embedder, cache: cache}
}

// Cache returns the engine's embedding matrix cache.
func (e *Engine) Cache() *embedding.MatrixCache {
	return e.cache
}

// Matrix returns the embedding matrix for notes through the cache, along
// with the collection fingerprint it was computed for.
func (e *Engine) Matrix(ctx context.Context, notes []models.Note) ([][]float32, string, error) {
	m, err := e.cache.GetOrCompute(ctx, notes, e.embedder)
	if err != nil {
		return nil, "", err
	}
	return m, embedding.Fingerprint(notes), nil
}

// Search scores every note row against the embedded query, ranks by
// descending similarity (ties broken by original index), applies the
// min-similarity, category, and required-tags filters in rank order, and
// stops once TopK results are collected. An empty collection or matrix
// yields an empty result list, not an error. Row i of noteEmbs must
// correspond to notes[i].
func (e *Engine) Search(ctx context.Context, params models.SearchParams, notes []models.Note, noteEmbs [][]float32) ([]models.Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(notes) == 0 || len(noteEmbs) == 0 {
		return []models.Result{}, nil
	}
	if len(notes) != len(noteEmbs) {
		return nil, fmt.Errorf("%w: %d notes but %d embedding rows",
			models.ErrInvalidArgument, len(notes), len(noteEmbs))
	}

	queryEmb, err := e.embedder.Embed(ctx, params.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query (%d notes): %w", len(notes), err)
	}

	sims := make([]float64, len(notes))
	for i, row := range noteEmbs {
		sims[i] = vector.InnerProduct(row, queryEmb)
	}
	order := make([]int, len(notes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sims[order[i]] > sims[order[j]]
	})

	var required []string
	for _, tag := range params.RequiredTags {
		required = append(required, strings.ToLower(tag))
	}

	results := make([]models.Result, 0, params.TopK)
	for _, idx := range order {
		sim := sims[idx]
		if sim < params.MinSimilarity {
			continue
		}
		note := notes[idx]
		if params.Category != "" && note.Category != params.Category {
			continue
		}
		if len(required) > 0 && !hasAllTags(note.Tags, required) {
			continue
		}
		results = append(results, models.Result{Index: idx, Note: note, Similarity: sim})
		if len(results) >= params.TopK {
			break
		}
	}
	return results, nil
}

// SearchNotes embeds the whole collection through the matrix cache (one
// provider call per distinct collection state), then searches.
func (e *Engine) SearchNotes(ctx context.Context, params models.SearchParams, notes []models.Note) ([]models.Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return []models.Result{}, nil
	}
	noteEmbs, err := e.cache.GetOrCompute(ctx, notes, e.embedder)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, params, notes, noteEmbs)
}

// hasAllTags reports whether every required tag (already lowercased) is in
// tags, compared case-insensitively.
func hasAllTags(tags []string, required []string) bool {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

// Categories returns the sorted distinct categories in notes, for filter
// dropdowns.
func Categories(notes []models.Note) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range notes {
		if _, ok := seen[n.Category]; ok {
			continue
		}
		seen[n.Category] = struct{}{}
		out = append(out, n.Category)
	}
	sort.Strings(out)
	return out
}
