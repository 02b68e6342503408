package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// sweepEvery bounds how often a write scans for expired entries.
const sweepEvery = time.Minute

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryCacheRepository is the single-process store used when no Redis is configured.
type MemoryCacheRepository struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !entry.expires.IsZero() && !r.now().Before(entry.expires) {
		delete(r.entries, key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		str = fmt.Sprint(v)
	}

	entry := memoryEntry{value: str}
	if expiration > 0 {
		entry.expires = r.now().Add(expiration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.entries[key] = entry
	return nil
}

// sweep drops every expired entry, at most once per sweepEvery. Callers hold mu.
func (r *MemoryCacheRepository) sweep() {
	now := r.now()
	if now.Sub(r.lastSweep) < sweepEvery {
		return
	}
	r.lastSweep = now
	for key, entry := range r.entries {
		if !entry.expires.IsZero() && !now.Before(entry.expires) {
			delete(r.entries, key)
		}
	}
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.entries, key)
	}
	return nil
}
