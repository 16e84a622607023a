// Package cache memoizes canonical results in memory for a per-entry lifetime.
//
// Stale entries are treated as absent and removed when they are next looked up.
// Nothing sweeps the cache in the background; the LRU bound caps its size instead.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/samber/mo"
)

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

func (e entry) stale(now time.Time) bool {
	return now.Sub(e.insertedAt) > e.ttl
}

// Cache is safe for concurrent use. Every operation holds one lock,
// so reads and writes of a key are linearizable.
type Cache struct {
	mu      sync.Mutex
	store   *simplelru.LRU[string, entry]
	now     func() time.Time
	observe func(hit bool)
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithObserver is called after every lookup.
func WithObserver(observe func(hit bool)) Option {
	return func(c *Cache) {
		c.observe = observe
	}
}

// New returns a cache holding at most size entries.
func New(size int, opts ...Option) (*Cache, error) {
	store, err := simplelru.NewLRU[string, entry](size, nil)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		store:   store,
		now:     time.Now,
		observe: func(bool) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the value stored under key unless it is missing or stale.
func (c *Cache) Get(key string) mo.Option[any] {
	c.mu.Lock()
	e, ok := c.store.Get(key)
	if ok && e.stale(c.now()) {
		c.store.Remove(key)
		ok = false
	}
	c.mu.Unlock()

	c.observe(ok)
	if !ok {
		return mo.None[any]()
	}
	return mo.Some(e.value)
}

// Put stores value for ttl. A non-positive ttl stores nothing.
func (c *Cache) Put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Add(key, entry{value: value, insertedAt: c.now(), ttl: ttl})
}

// Len counts entries, including stale ones not yet looked up.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Purge()
}

// Load is Get with a type assertion; a value of another type counts as absent.
func Load[T any](c *Cache, key string) mo.Option[T] {
	value, ok := c.Get(key).Get()
	if !ok {
		return mo.None[T]()
	}

	typed, ok := value.(T)
	if !ok {
		return mo.None[T]()
	}
	return mo.Some(typed)
}

// Key hashes a capability and its canonical arguments into a fixed-length key.
// Arguments are trimmed; callers canonicalize anything else (case, ordering) before calling.
func Key(capability string, args ...string) string {
	var b strings.Builder
	b.WriteString(capability)
	for _, arg := range args {
		b.WriteByte(0)
		b.WriteString(strings.TrimSpace(arg))
	}

	hash := sha256.Sum256([]byte(b.String()))
	return capability + ":" + hex.EncodeToString(hash[:])
}
