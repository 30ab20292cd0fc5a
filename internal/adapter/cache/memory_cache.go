package cache

import (
	"context"
	"sync"
	"time"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

type memoryEntry struct {
	image     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is an in-process domain.ChartCache used when no Redis is configured
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryCache creates an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

var _ domain.ChartCache = (*MemoryCache)(nil)

// Get returns a copy of the cached image if present and not expired
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.data, key)
		return nil, false
	}

	img := make([]byte, len(entry.image))
	copy(img, entry.image)
	return img, true
}

// Set stores a copy of the image
func (m *MemoryCache) Set(_ context.Context, key string, image []byte, ttl time.Duration) error {
	img := make([]byte, len(image))
	copy(img, image)

	entry := memoryEntry{image: img}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = entry
	m.mu.Unlock()
	return nil
}
