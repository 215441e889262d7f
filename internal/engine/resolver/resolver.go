// Package resolver expands requested capabilities through alias groups and
// declared dependencies until no new names are discovered.
package resolver

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver runs providers over requested capabilities to a fixed point.
type Resolver struct {
	providers   []Provider
	parallelism int
}

// New creates a Resolver. parallelism bounds the number of names expanded
// concurrently; zero or less means unbounded.
func New(providers []Provider, parallelism int) *Resolver {
	return &Resolver{providers: providers, parallelism: parallelism}
}

// Result is the outcome of a resolution.
type Result struct {
	// Capabilities holds every discovered capability keyed by name. Alias
	// groups and "all" are replaced by their members and never appear here.
	Capabilities map[string]domain.ResolvedCapability
	// Failed lists names whose expansion failed. They are kept unexpanded.
	Failed []string
}

// expansion is the provider output for one visited name.
type expansion struct {
	children []string
	replaced bool
	err      error
}

type resolveState struct {
	visited  map[string]bool
	order    []string
	edges    map[string][]string
	replaced map[string]bool
	failed   []string
}

// Resolve expands requests. Names are visited at most once, so circular
// provider output terminates. Expansion of independent names runs
// concurrently, one breadth-first wave at a time.
//
// domain.ErrRegistryNotReady and context cancellation abort the resolution.
// Any other provider failure is isolated to the failing name.
func (r *Resolver) Resolve(ctx context.Context, requests []domain.CapabilityRequest) (*Result, error) {
	roots := make(map[string]domain.Flags, len(requests))
	for _, req := range requests {
		roots[req.Name] = roots[req.Name].Union(req.Flags)
	}

	state := &resolveState{
		visited:  make(map[string]bool, len(roots)),
		edges:    make(map[string][]string),
		replaced: make(map[string]bool),
	}

	wave := make([]string, 0, len(roots))
	for _, name := range sortedKeys(roots) {
		state.visit(name)
		wave = append(wave, name)
	}

	for len(wave) > 0 {
		results, err := r.expandWave(ctx, wave)
		if err != nil {
			return nil, err
		}

		var next []string
		for i, name := range wave {
			res := results[i]
			if res.err != nil {
				state.failed = append(state.failed, name)
				continue
			}
			if res.replaced {
				state.replaced[name] = true
			}
			for _, child := range res.children {
				if child == name || slices.Contains(state.edges[name], child) {
					continue
				}
				state.edges[name] = append(state.edges[name], child)
				if !state.visited[child] {
					state.visit(child)
					next = append(next, child)
				}
			}
		}
		wave = next
	}

	return &Result{
		Capabilities: state.propagate(roots),
		Failed:       state.failed,
	}, nil
}

func (s *resolveState) visit(name string) {
	s.visited[name] = true
	s.order = append(s.order, name)
}

// expandWave runs the provider chain for every name of the wave concurrently.
func (r *Resolver) expandWave(ctx context.Context, wave []string) ([]expansion, error) {
	results := make([]expansion, len(wave))

	g, gctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}
	for i, name := range wave {
		g.Go(func() error {
			res := r.expand(gctx, name)
			if res.err != nil && isFatal(gctx, res.err) {
				return res.err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrRegistryNotReady) {
			return nil, err
		}
		return nil, zerr.Wrap(err, "capability resolution aborted")
	}
	return results, nil
}

// expand asks the providers in priority order until one applies.
func (r *Resolver) expand(ctx context.Context, name string) expansion {
	for _, provider := range r.providers {
		names, ok, err := provider(ctx, name)
		if err != nil {
			return expansion{err: err}
		}
		if ok {
			return expansion{
				children: names,
				replaced: !slices.Contains(names, name),
			}
		}
	}
	return expansion{}
}

func isFatal(ctx context.Context, err error) bool {
	return errors.Is(err, domain.ErrRegistryNotReady) || ctx.Err() != nil
}

// propagate computes flags and provenance over the discovery edges until
// nothing changes. Flags are the union over every discovering path.
// Provenance is the discovering name appended to the discoverer's own
// provenance; directly requested names keep an empty provenance.
func (s *resolveState) propagate(roots map[string]domain.Flags) map[string]domain.ResolvedCapability {
	flags := make(map[string]domain.Flags, len(s.order))
	provenance := make(map[string][]string, len(s.order))
	for name, f := range roots {
		flags[name] = f
	}

	for changed := true; changed; {
		changed = false
		for _, parent := range s.order {
			chain := append(slices.Clone(provenance[parent]), parent)
			for _, child := range s.edges[parent] {
				merged := flags[child].Union(flags[parent])
				if !slices.Equal(merged, flags[child]) {
					flags[child] = merged
					changed = true
				}
				if _, isRoot := roots[child]; isRoot {
					continue
				}
				for _, p := range chain {
					if p != child && !slices.Contains(provenance[child], p) {
						provenance[child] = append(provenance[child], p)
						changed = true
					}
				}
			}
		}
	}

	out := make(map[string]domain.ResolvedCapability, len(s.order))
	for _, name := range s.order {
		if s.replaced[name] {
			continue
		}
		f := flags[name]
		if f == nil {
			f = domain.Flags{}
		}
		out[name] = domain.ResolvedCapability{
			Name:    name,
			Flags:   f,
			AliasOf: provenance[name],
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
