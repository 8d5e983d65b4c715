package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore process local cache, expired items are invisible to Get and dropped by Run
type MemoryStore struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryStore constructor
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: ttlcache.New[string, []byte](
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

// Run evict expired items until ctx is done
func (s *MemoryStore) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.items.Stop()
	}()
	s.items.Start()
}

// Get value by key
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := s.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

// Set value with ttl, zero ttl never expires
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.items.Set(key, value, ttl)
	return nil
}

// Delete keys
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.items.Delete(k)
	}
	return nil
}
