package embedding

import (
	"context"
	"sync"
)

// Lazy defers construction of an expensive embedder (model load) until its
// first use. Initialization runs at most once; the handle is then held until
// Close. The composition root owns the Lazy value and passes it wherever an
// Embedder is needed.
type Lazy struct {
	build func() (Embedder, error)
	once  sync.Once
	mu    sync.Mutex
	emb   Embedder
	err   error
	dims  int
}

// NewLazy wraps build. dims is reported by Dimensions before the first
// initialization (the dimension is model-defined but known from config).
func NewLazy(dims int, build func() (Embedder, error)) *Lazy {
	return &Lazy{build: build, dims: dims}
}

// ensure runs build at most once and returns the handle. The mutex covers
// the emb/err fields so Dimensions and Close can read them while another
// goroutine is inside the first ensure.
func (l *Lazy) ensure() (Embedder, error) {
	l.once.Do(func() {
		emb, err := l.build()
		l.mu.Lock()
		l.emb, l.err = emb, err
		l.mu.Unlock()
	})
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.emb, l.err
}

// Embed initializes the underlying embedder on first use.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	emb, err := l.ensure()
	if err != nil {
		return nil, err
	}
	return emb.Embed(ctx, text)
}

// EmbedBatch initializes the underlying embedder on first use.
func (l *Lazy) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	emb, err := l.ensure()
	if err != nil {
		return nil, err
	}
	return emb.EmbedBatch(ctx, texts)
}

// Dimensions returns the underlying dimension when initialized, else the
// configured one. It never triggers initialization.
func (l *Lazy) Dimensions() int {
	l.mu.Lock()
	emb := l.emb
	l.mu.Unlock()
	if emb != nil {
		return emb.Dimensions()
	}
	return l.dims
}

// Close closes the underlying embedder if it was ever initialized.
func (l *Lazy) Close() error {
	l.mu.Lock()
	emb := l.emb
	l.mu.Unlock()
	if emb != nil {
		return emb.Close()
	}
	return nil
}
