// Package cache keeps guest grade records in memory until they expire.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

type guestCache struct {
	c *gocache.Cache
}

var _ grade.Cache = (*guestCache)(nil)

// NewGuestCache creates a cache whose entries live for the configured guest TTL.
// An entry's TTL restarts on every write.
func NewGuestCache(conf *core.Config) *guestCache {
	ttl := conf.Academic.GuestCacheTTL
	cleanup := ttl / 4
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &guestCache{c: gocache.New(ttl, cleanup)}
}

func (gc *guestCache) Get(key string) ([]byte, bool) {
	v, found := gc.c.Get(key)
	if !found {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (gc *guestCache) Set(key string, data []byte) {
	gc.c.Set(key, data, gocache.DefaultExpiration)
}

func (gc *guestCache) Delete(key string) {
	gc.c.Delete(key)
}

// Len returns the number of live entries, expired ones included until cleanup.
func (gc *guestCache) Len() int {
	return gc.c.ItemCount()
}
