package usecase

import (
	"sync"
	"time"
)

const (
	defaultOptionCacheTTL = 5 * time.Minute
)

type cachedBody struct {
	body      []byte
	expiresAt time.Time
}

// optionCache keeps raw REST bodies per resolved resource path. Bodies are
// cached instead of options because fields sharing a path may transform
// records differently.
type optionCache struct {
	ttl   time.Duration
	cache sync.Map
	now   func() time.Time
}

func newOptionCache(ttl time.Duration) *optionCache {
	return &optionCache{ttl: ttl, now: time.Now}
}

func (c *optionCache) get(path string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	val, ok := c.cache.Load(path)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedBody)
	if c.now().After(cached.expiresAt) {
		c.cache.Delete(path)
		return nil, false
	}

	return cached.body, true
}

func (c *optionCache) set(path string, body []byte) {
	if c.ttl <= 0 {
		return
	}
	c.cache.Store(path, &cachedBody{
		body:      body,
		expiresAt: c.now().Add(c.ttl),
	})
}
