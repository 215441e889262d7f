package lrucache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyfill/internal/adapters/lrucache"
	"go.trai.ch/polyfill/internal/core/domain"
)

func TestCache_GetAdd(t *testing.T) {
	c, err := lrucache.New(2)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	id := domain.CanonicalIdentity{Family: "chrome", Major: 38}
	c.Add("ua-1", id)
	got, ok := c.Get("ua-1")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := lrucache.New(2)
	require.NoError(t, err)

	c.Add("a", domain.CanonicalIdentity{Family: "a"})
	c.Add("b", domain.CanonicalIdentity{Family: "b"})
	_, _ = c.Get("a")
	c.Add("c", domain.CanonicalIdentity{Family: "c"})

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used and should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_InvalidSize(t *testing.T) {
	_, err := lrucache.New(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create identity cache")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c, err := lrucache.New(domain.DefaultCacheSize)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				key := fmt.Sprintf("ua-%d", i)
				c.Add(key, domain.CanonicalIdentity{Family: "ie", Major: i % 12})
				if got, ok := c.Get(key); ok {
					assert.Equal(t, i%12, got.Major, "worker %d", w)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 500, c.Len())
}
