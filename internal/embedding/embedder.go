// Package embedding provides text embedding providers and the
// fingerprint-keyed embedding matrix cache.
package embedding

import "context"

// Embedder maps text to fixed-length L2-normalized vectors. Row i of the
// EmbedBatch result corresponds to texts[i]. Implementations must be
// deterministic for a fixed model and input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
