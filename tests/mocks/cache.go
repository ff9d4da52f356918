package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/terravest/platform/internal/shared/infra/cache"
)

// DummyCache is an in-memory cache mock. Values are stored as JSON bytes so
// it behaves exactly like the Redis adapter.
type DummyCache struct {
	store map[string][]byte
	mu    sync.RWMutex
}

var _ cache.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{store: make(map[string][]byte)}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil // cache miss
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// SetForTest seeds the cache directly, bypassing the service under test.
func (c *DummyCache) SetForTest(key string, val interface{}) {
	_ = c.Set(context.Background(), key, val, 0)
}

// Contains reports whether a key is currently cached.
func (c *DummyCache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}
