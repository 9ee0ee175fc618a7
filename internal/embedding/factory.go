package embedding

import (
	"fmt"

	"github.com/hyperjump/kioku/internal/config"
)

// NewEmbedder builds the configured embedding provider. ONNX model load is
// deferred behind a Lazy wrapper so that commands which never embed (export,
// status) do not pay the startup cost.
func NewEmbedder(cfg *config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderONNX:
		c := *cfg
		return NewLazy(c.Dimensions, func() (Embedder, error) {
			return NewONNXEmbedder(c.ModelPath, c.Dimensions, c.MaxTokens, c.CacheSize)
		}), nil
	case config.ProviderOllama:
		return NewOllamaEmbedder(cfg.OllamaURL, cfg.OllamaModel, cfg.Dimensions, cfg.CacheSize), nil
	case config.ProviderMock:
		return NewMockEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
