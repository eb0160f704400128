package metadata

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	cacheNamespaceMeta    = "meta"
	cacheNamespaceCatalog = "catalog"

	// Upper bound on entries per namespace; TTL expiry does the real work,
	// the LRU bound just keeps a pathological key space from growing without
	// limit inside one process lifetime.
	cacheMaxEntries = 16384
)

// memCache is a process-wide in-memory store with one TTL per namespace.
// It is purely a performance optimization: contents are lost on restart.
type memCache struct {
	disabled bool
	meta     *expirable.LRU[string, any]
	catalog  *expirable.LRU[string, any]
}

func newMemCache(metaTTL, catalogTTL time.Duration, disabled bool) *memCache {
	if disabled {
		return &memCache{disabled: true}
	}
	return &memCache{
		meta:    expirable.NewLRU[string, any](cacheMaxEntries, nil, metaTTL),
		catalog: expirable.NewLRU[string, any](cacheMaxEntries, nil, catalogTTL),
	}
}

func (c *memCache) store(namespace string) *expirable.LRU[string, any] {
	switch namespace {
	case cacheNamespaceCatalog:
		return c.catalog
	default:
		return c.meta
	}
}

// wrap returns the cached value for namespace:key, or runs producer and
// stores its result. Producer failures propagate and are never cached, so a
// failed fetch is retried on the next call. When caching is disabled every
// call is a straight pass-through to the producer.
func (c *memCache) wrap(namespace, key string, producer func() (any, error)) (any, error) {
	if c == nil || c.disabled {
		return producer()
	}
	lru := c.store(namespace)
	if v, ok := lru.Get(key); ok {
		return v, nil
	}
	v, err := producer()
	if err != nil {
		return nil, err
	}
	lru.Add(key, v)
	return v, nil
}
