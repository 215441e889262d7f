// Package catalog provides the capability registry backed by an on-disk
// catalog of YAML metadata and shim sources.
//
// A catalog is a directory holding one sub-directory per capability:
//
//	catalog/
//	  aliases.yaml            optional extra alias groups
//	  Array.prototype.map/
//	    config.yaml           support ranges, dependencies, aliases, license
//	    polyfill.js           raw source
//	    min.js                minified source (optional)
//	    detect.js             feature-detect expression (optional)
package catalog

import (
	"context"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry implements ports.CapabilityRegistry and ports.CatalogLoader.
// It reports domain.ErrRegistryNotReady until a catalog has been loaded.
// Reloading swaps the whole catalog atomically.
type Registry struct {
	concurrency int
	mu          sync.Mutex
	current     atomic.Pointer[snapshot]
}

// NewRegistry creates an empty registry. concurrency bounds the number of
// capability directories read in parallel; zero means unbounded.
func NewRegistry(concurrency int) *Registry {
	return &Registry{concurrency: concurrency}
}

// NewMemory creates a registry that is ready immediately, holding caps and
// the extra alias groups.
func NewMemory(caps []*domain.CapabilityMetadata, groups map[string][]string) (*Registry, error) {
	s, err := newSnapshot(caps, groups)
	if err != nil {
		return nil, err
	}
	r := &Registry{}
	r.current.Store(s)
	return r, nil
}

// Load reads the catalog at dir and makes it current.
// A failed load leaves the previously loaded catalog in place.
func (r *Registry) Load(ctx context.Context, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return zerr.With(domain.ErrCatalogNotFound, "path", dir)
	}

	s, err := loadFS(ctx, os.DirFS(dir), r.concurrency)
	if err != nil {
		return zerr.With(err, "path", dir)
	}
	r.current.Store(s)
	return nil
}

// Ready reports whether a catalog has been loaded.
func (r *Registry) Ready() bool {
	return r.current.Load() != nil
}

func (r *Registry) loaded() (*snapshot, error) {
	s := r.current.Load()
	if s == nil {
		return nil, domain.ErrRegistryNotReady
	}
	return s, nil
}

// ListCapabilities returns the names of all known capabilities in name order.
func (r *Registry) ListCapabilities(_ context.Context) ([]string, error) {
	s, err := r.loaded()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.names), nil
}

// GetCapability returns the metadata for name. The returned value is shared
// and must not be modified.
func (r *Registry) GetCapability(_ context.Context, name string) (*domain.CapabilityMetadata, bool, error) {
	s, err := r.loaded()
	if err != nil {
		return nil, false, err
	}
	meta, ok := s.capabilities[name]
	return meta, ok, nil
}

// GetConfigAliases returns the members of the alias group name.
func (r *Registry) GetConfigAliases(_ context.Context, name string) ([]string, error) {
	s, err := r.loaded()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.groups[name]), nil
}
