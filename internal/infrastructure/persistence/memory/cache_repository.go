// Package memory provides an in-memory cache repository, used when
// Redis is disabled and in tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/foodml/recipelab/internal/ports/outbound"
)

// ErrNotFound is returned for missing or expired keys.
var ErrNotFound = errors.New("key not found")

type item struct {
	value     string
	expiresAt time.Time
}

// CacheRepository implements the cache port over a mutex-guarded map.
type CacheRepository struct {
	data  map[string]item
	mutex sync.RWMutex
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]item),
	}

	go repo.cleanup()

	return repo
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) (string, error) {
	r.mutex.RLock()
	it, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || time.Now().After(it.expiresAt) {
		return "", ErrNotFound
	}
	return it.value, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = item{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists and has not expired
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	it, exists := r.data[key]
	return exists && time.Now().Before(it.expiresAt), nil
}

// cleanup periodically evicts expired entries
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		r.mutex.Lock()
		for key, it := range r.data {
			if now.After(it.expiresAt) {
				delete(r.data, key)
			}
		}
		r.mutex.Unlock()
	}
}
