// Package lrucache implements the bounded normalization cache.
package lrucache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IdentityCache = (*Cache)(nil)

// Cache is a thread-safe least-recently-used identity cache.
type Cache struct {
	entries *lru.Cache[string, domain.CanonicalIdentity]
}

// New creates a cache holding at most size identities.
func New(size int) (*Cache, error) {
	entries, err := lru.New[string, domain.CanonicalIdentity](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create identity cache"), "size", size)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached identity for raw.
func (c *Cache) Get(raw string) (domain.CanonicalIdentity, bool) {
	return c.entries.Get(raw)
}

// Add stores id under raw.
func (c *Cache) Add(raw string, id domain.CanonicalIdentity) {
	c.entries.Add(raw, id)
}

// Len returns the number of cached identities.
func (c *Cache) Len() int {
	return c.entries.Len()
}
