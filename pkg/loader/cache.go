package loader

import (
	"fmt"

	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/config"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores composed animation tables by cache key.
type Cache interface {
	Get(key string) (*animation.AnimationData, bool)
	Add(key string, data *animation.AnimationData)
	Remove(key string)
	Keys() []string
	Len() int
}

// unboundedCache never evicts.
type unboundedCache struct {
	entries map[string]*animation.AnimationData
}

// NewUnboundedCache returns a cache that keeps every composition until it is
// removed.
func NewUnboundedCache() Cache {
	return &unboundedCache{entries: make(map[string]*animation.AnimationData)}
}

func (c *unboundedCache) Get(key string) (*animation.AnimationData, bool) {
	data, ok := c.entries[key]
	return data, ok
}

func (c *unboundedCache) Add(key string, data *animation.AnimationData) {
	c.entries[key] = data
}

func (c *unboundedCache) Remove(key string) {
	delete(c.entries, key)
}

func (c *unboundedCache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

func (c *unboundedCache) Len() int {
	return len(c.entries)
}

// lruCache evicts the least recently used composition beyond its capacity.
type lruCache struct {
	entries *lru.Cache[string, *animation.AnimationData]
}

// NewLRUCache returns a cache holding at most size compositions.
func NewLRUCache(size int) (Cache, error) {
	entries, err := lru.New[string, *animation.AnimationData](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &lruCache{entries: entries}, nil
}

func (c *lruCache) Get(key string) (*animation.AnimationData, bool) {
	return c.entries.Get(key)
}

func (c *lruCache) Add(key string, data *animation.AnimationData) {
	c.entries.Add(key, data)
}

func (c *lruCache) Remove(key string) {
	c.entries.Remove(key)
}

func (c *lruCache) Keys() []string {
	return c.entries.Keys()
}

func (c *lruCache) Len() int {
	return c.entries.Len()
}

// NewCache builds the cache selected by the configuration.
func NewCache(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Policy {
	case config.CachePolicyLRU:
		return NewLRUCache(cfg.Size)
	case config.CachePolicyUnbounded, "":
		return NewUnboundedCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache policy '%s'", cfg.Policy)
	}
}
