package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache with background eviction of expired entries.
type Cache struct {
	*gocache.Cache
}

func New(defaultExpiration, cleanupInterval time.Duration) *Cache {
	return &Cache{
		Cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}
