// Package cache implementa un LRU en memoria con TTL fijo, usado por el
// modo servidor para no repetir agregaciones recientes del mismo target.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry es un valor cacheado con su caducidad y su nodo en la lista LRU.
type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	element   *list.Element
}

// Memory es un LRU concurrente. Un ttl de 0 desactiva la caducidad.
type Memory[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	lru      *list.List
	now      func() time.Time
}

// New crea una caché de capacity entradas (100 si no es positiva).
func New[V any](capacity int, ttl time.Duration) *Memory[V] {
	if capacity <= 0 {
		capacity = 100
	}
	return &Memory[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V]),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get devuelve el valor si existe y no ha caducado, y lo marca como reciente.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.expired(e) {
		c.remove(e)
		return zero, false
	}
	c.lru.MoveToFront(e.element)
	return e.value, true
}

// Set inserta o reemplaza key, expulsando la entrada menos usada si hace falta.
func (c *Memory[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.lru.MoveToFront(e.element)
		return
	}

	if len(c.items) >= c.capacity {
		if back := c.lru.Back(); back != nil {
			c.remove(back.Value.(*entry[V]))
		}
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lru.PushFront(e)
	c.items[key] = e
}

// Len cuenta también entradas caducadas que aún no se han purgado.
func (c *Memory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge elimina las entradas caducadas y devuelve cuántas quitó.
func (c *Memory[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, e := range c.items {
		if c.expired(e) {
			c.remove(e)
			removed++
		}
	}
	return removed
}

// Must be called with c.mu held.
func (c *Memory[V]) expired(e *entry[V]) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// Must be called with c.mu held.
func (c *Memory[V]) remove(e *entry[V]) {
	delete(c.items, e.key)
	c.lru.Remove(e.element)
}
