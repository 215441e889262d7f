package catalog

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"path"
	"slices"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/engine/useragent"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// snapshot is an immutable, fully validated view of a catalog.
type snapshot struct {
	capabilities map[string]*domain.CapabilityMetadata
	names        []string
	groups       map[string][]string
}

// loadFS reads every capability directory of fsys concurrently and validates
// the result. Directories without a metadata file are skipped.
func loadFS(ctx context.Context, fsys fs.FS, concurrency int) (*snapshot, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogReadFailed.Error())
	}

	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}

	results := make([]*domain.CapabilityMetadata, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meta, err := readCapability(fsys, dir)
			if err != nil {
				return err
			}
			results[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	caps := make([]*domain.CapabilityMetadata, 0, len(results))
	for _, meta := range results {
		if meta != nil {
			caps = append(caps, meta)
		}
	}

	extra, err := readAliasFile(fsys)
	if err != nil {
		return nil, err
	}

	return newSnapshot(caps, extra)
}

// readCapability reads one capability directory. It returns nil metadata
// when the directory carries no metadata file.
func readCapability(fsys fs.FS, dir string) (*domain.CapabilityMetadata, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, domain.CatalogMetaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "capability", dir)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogParseFailed.Error()), "capability", dir)
	}

	raw, err := readSource(fsys, dir, domain.CatalogRawFile, true)
	if err != nil {
		return nil, err
	}
	minified, err := readSource(fsys, dir, domain.CatalogMinFile, false)
	if err != nil {
		return nil, err
	}
	detect, err := readSource(fsys, dir, domain.CatalogDetectFile, false)
	if err != nil {
		return nil, err
	}

	return &domain.CapabilityMetadata{
		Name:          dir,
		SupportRanges: manifest.Browsers,
		Dependencies:  manifest.Dependencies,
		ConfigAliases: manifest.Aliases,
		License:       manifest.License,
		RawSource:     raw,
		MinSource:     minified,
		DetectSource:  detect,
	}, nil
}

func readSource(fsys fs.FS, dir, name string, required bool) (string, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, name))
	switch {
	case err == nil:
		return string(data), nil
	case !required && errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()),
			"capability", dir), "file", name)
	}
}

func readAliasFile(fsys fs.FS) (AliasFile, error) {
	data, err := fs.ReadFile(fsys, domain.CatalogAliasFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "file", domain.CatalogAliasFile)
	}
	var aliases AliasFile
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogParseFailed.Error()), "file", domain.CatalogAliasFile)
	}
	return aliases, nil
}

// newSnapshot validates caps and derives the alias groups. Groups declared by
// capabilities are merged with extra.
func newSnapshot(caps []*domain.CapabilityMetadata, extra AliasFile) (*snapshot, error) {
	s := &snapshot{
		capabilities: make(map[string]*domain.CapabilityMetadata, len(caps)),
		groups:       make(map[string][]string),
	}

	for _, meta := range caps {
		if meta.Name == domain.AllCapabilities {
			return nil, zerr.With(domain.ErrReservedCapabilityName, "capability", meta.Name)
		}
		if _, exists := s.capabilities[meta.Name]; exists {
			return nil, zerr.With(domain.ErrCapabilityExists, "capability", meta.Name)
		}
		s.capabilities[meta.Name] = meta
	}
	s.names = slices.Sorted(maps.Keys(s.capabilities))

	for _, name := range s.names {
		meta := s.capabilities[name]
		for _, dep := range meta.Dependencies {
			if _, ok := s.capabilities[dep]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrMissingDependency, "capability", name), "dependency", dep)
			}
		}
		for family, rng := range meta.SupportRanges {
			if _, err := useragent.ParseRange(rng); err != nil {
				return nil, zerr.With(zerr.With(err, "capability", name), "family", family)
			}
		}
		for _, alias := range meta.ConfigAliases {
			s.groups[alias] = append(s.groups[alias], name)
		}
	}

	for group, members := range extra {
		for _, member := range members {
			if _, ok := s.capabilities[member]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrCapabilityNotFound, "alias", group), "capability", member)
			}
			s.groups[group] = append(s.groups[group], member)
		}
	}
	for group, members := range s.groups {
		slices.Sort(members)
		s.groups[group] = slices.Compact(members)
	}

	return s, nil
}
