// Package cache implementa ingest.SnapshotCache: en proceso (por defecto) o Redis (REDIS_URL).
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
)

var _ ingest.SnapshotCache = (*MemoryCache)(nil)

// DefaultMaxEntries cantidad máxima de planillas que guarda NewMemoryCache.
const DefaultMaxEntries = 128

type entry struct {
	value   []byte
	stored  time.Time
	expires time.Time
}

// MemoryCache caché TTL en proceso con tope de entradas. Las vencidas se descartan al leerlas
// y en cada escritura; si sigue llena, Set desaloja la entrada más antigua.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]entry
	max   int
	now   func() time.Time
}

// NewMemoryCache crea una caché vacía con tope DefaultMaxEntries.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]entry), max: DefaultMaxEntries, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.items, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set guarda una copia de value. ttl <= 0 = sin vencimiento.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.sweep(now)
	if _, ok := c.items[key]; !ok && len(c.items) >= c.max {
		c.evictOldest()
	}
	e := entry{value: append([]byte(nil), value...), stored: now}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	c.items[key] = e
	return nil
}

// size cantidad de entradas guardadas, vencidas o no.
func (c *MemoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *MemoryCache) sweep(now time.Time) {
	for k, e := range c.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.items, k)
		}
	}
}

func (c *MemoryCache) evictOldest() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for k, e := range c.items {
		if !found || e.stored.Before(at) {
			oldest, at, found = k, e.stored, true
		}
	}
	if found {
		delete(c.items, oldest)
	}
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// Ping siempre disponible.
func (c *MemoryCache) Ping(context.Context) error { return nil }
