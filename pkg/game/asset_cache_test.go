package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetCacheWriteOnce(t *testing.T) {
	c := NewAssetCache()

	require.NoError(t, c.Put("A", "first"))
	err := c.Put("A", "second")
	assert.True(t, errors.Is(err, ErrAlreadyCached))

	v, ok := Lookup[string](c, "A")
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestAssetCacheFailedPlaceholder(t *testing.T) {
	c := NewAssetCache()
	require.NoError(t, c.Put("BROKEN", nil))

	assert.True(t, c.Has("BROKEN"))
	assert.True(t, c.Failed("BROKEN"))
	_, ok := Lookup[string](c, "BROKEN")
	assert.False(t, ok)
	assert.Nil(t, c.Image("BROKEN"))

	assert.False(t, c.Has("MISSING"))
	assert.False(t, c.Failed("MISSING"))
}

func TestAssetCacheLookupWrongType(t *testing.T) {
	c := NewAssetCache()
	require.NoError(t, c.Put("N", 42))

	_, ok := Lookup[string](c, "N")
	assert.False(t, ok)
	n, ok := Lookup[int](c, "N")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	assert.Nil(t, c.Image("N"))
}

func TestAssetCacheConcurrentPut(t *testing.T) {
	c := NewAssetCache()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := c.Put("SHARED", i); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"SHARED"}, c.Keys())
}
