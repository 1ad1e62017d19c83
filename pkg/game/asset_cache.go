package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrAlreadyCached is returned by Put when the key already holds a value.
var ErrAlreadyCached = errors.New("asset already cached")

// AssetCache maps asset keys to loaded resources.
//
// Each key is written once: the first Put wins and later puts for the same
// key return ErrAlreadyCached without touching the stored value. A key that
// failed to load holds a nil placeholder, so Has is true and Lookup is not.
type AssetCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewAssetCache creates an empty cache.
func NewAssetCache() *AssetCache {
	return &AssetCache{entries: make(map[string]any)}
}

// Put stores value under key.
func (c *AssetCache) Put(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyCached, key)
	}
	c.entries[key] = value
	return nil
}

// Get returns the raw value and whether the key was written at all.
func (c *AssetCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Has reports whether key was written, including failed placeholders.
func (c *AssetCache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Failed reports whether key holds a failure placeholder.
func (c *AssetCache) Failed(key string) bool {
	v, ok := c.Get(key)
	return ok && v == nil
}

// Len returns the number of keys.
func (c *AssetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns all keys sorted.
func (c *AssetCache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Image returns the texture stored under key, or nil when missing, failed or
// not an image.
func (c *AssetCache) Image(key string) *ebiten.Image {
	img, _ := Lookup[*ebiten.Image](c, key)
	return img
}

// Lookup returns the value under key as T. ok is false when the key is
// missing, holds a failure placeholder or holds another type.
func Lookup[T any](c *AssetCache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok || v == nil {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
