package embedding

import (
	"container/list"
	"sync"
)

// TextCache is an LRU cache of per-text embeddings, used by providers whose
// inference is expensive (ONNX, Ollama) to avoid re-encoding repeated texts.
type TextCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.RWMutex
}

type textEntry struct {
	key   string
	value []float32
}

// NewTextCache creates a cache holding up to capacity entries.
func NewTextCache(capacity int) *TextCache {
	return &TextCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached embedding for key if present.
func (c *TextCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*textEntry).value, true
	}
	return nil, false
}

// Set stores the embedding for key, evicting the oldest entry if at capacity.
func (c *TextCache) Set(key string, value []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*textEntry).value = value
		return
	}

	elem := c.lru.PushFront(&textEntry{key: key, value: value})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*textEntry).key)
		}
	}
}
