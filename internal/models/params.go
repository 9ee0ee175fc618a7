package models

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when search or chunking parameters are out
// of range. Callers reject before any computation happens.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultTopK is the number of results returned when top_k is unset.
const DefaultTopK = 5

// SearchParams represents a search request with optional filters.
type SearchParams struct {
	Query         string   `json:"query"`
	TopK          int      `json:"top_k,omitempty"`
	MinSimilarity float64  `json:"min_similarity,omitempty"`
	Category      string   `json:"category,omitempty"`
	RequiredTags  []string `json:"required_tags,omitempty"`
}

// Validate applies defaults and rejects out-of-range values.
// TopK defaults to 5 when unset (zero); negative values are rejected.
func (p *SearchParams) Validate() error {
	if p.TopK == 0 {
		p.TopK = DefaultTopK
	}
	if p.TopK < 1 {
		return fmt.Errorf("%w: top_k must be >= 1, got %d", ErrInvalidArgument, p.TopK)
	}
	if p.MinSimilarity < 0 || p.MinSimilarity > 1 {
		return fmt.Errorf("%w: min_similarity must be in [0,1], got %v", ErrInvalidArgument, p.MinSimilarity)
	}
	return nil
}
