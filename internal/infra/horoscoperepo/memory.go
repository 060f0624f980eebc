package horoscoperepo

import (
	"context"
	"sync"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

// MemoryRepository keeps bundles in process memory. Useful for tests and local dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[horoscope.Key]horoscope.Content
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[horoscope.Key]horoscope.Content)}
}

// Find returns the stored bundle for key.
func (r *MemoryRepository) Find(_ context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.items[key]
	return content, ok, nil
}

// Save stores content, replacing any bundle with the same key.
func (r *MemoryRepository) Save(_ context.Context, content horoscope.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[content.Key()] = content
	return nil
}

// Len reports how many bundles are stored.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

var _ horoscope.Repository = (*MemoryRepository)(nil)
