// Package filter selects the resolved capabilities that apply to a runtime.
package filter

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runtime is the identity capabilities are filtered against.
type Runtime interface {
	Family() string
	Satisfies(rangeExpr string) bool
	IsUnknown() bool
}

// Filter looks up capability metadata and applies the inclusion rules.
type Filter struct {
	registry    ports.CapabilityRegistry
	parallelism int
}

// New creates a Filter. parallelism bounds concurrent metadata lookups;
// zero or less means unbounded.
func New(registry ports.CapabilityRegistry, parallelism int) *Filter {
	return &Filter{registry: registry, parallelism: parallelism}
}

// Result is the outcome of filtering.
type Result struct {
	// Included holds the applicable capabilities in name order.
	Included []domain.IncludedCapability
	Warnings domain.Warnings
}

type lookup struct {
	meta   *domain.CapabilityMetadata
	found  bool
	failed bool
}

// Apply filters resolved against rt. Metadata for every capability is looked
// up concurrently and joined before the rules are applied.
//
// Unknown names and failed lookups are reported as warnings. Only
// domain.ErrRegistryNotReady and context cancellation fail the call.
func (f *Filter) Apply(
	ctx context.Context,
	resolved map[string]domain.ResolvedCapability,
	rt Runtime,
	policy domain.UnknownPolicy,
) (*Result, error) {
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	slices.Sort(names)

	lookups := make([]lookup, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if f.parallelism > 0 {
		g.SetLimit(f.parallelism)
	}
	for i, name := range names {
		g.Go(func() error {
			meta, found, err := f.registry.GetCapability(gctx, name)
			if err != nil {
				if errors.Is(err, domain.ErrRegistryNotReady) || gctx.Err() != nil {
					return err
				}
				lookups[i] = lookup{failed: true}
				return nil
			}
			lookups[i] = lookup{meta: meta, found: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrRegistryNotReady) {
			return nil, err
		}
		return nil, zerr.Wrap(err, domain.ErrCapabilityLookupFailed.Error())
	}

	res := &Result{}
	for i, name := range names {
		l := lookups[i]
		switch {
		case l.failed:
			res.Warnings.Failed = append(res.Warnings.Failed, name)
		case !l.found || l.meta == nil:
			res.Warnings.Unknown = append(res.Warnings.Unknown, name)
		case Applies(l.meta, resolved[name].Flags, rt, policy):
			res.Included = append(res.Included, domain.IncludedCapability{
				ResolvedCapability: resolved[name],
				Metadata:           l.meta,
			})
		}
	}
	return res, nil
}

// Applies reports whether a capability with meta and flags is served to rt:
// its support range for the runtime family is satisfied, it is flagged
// always, or the runtime is unknown and policy serves unknown runtimes.
func Applies(meta *domain.CapabilityMetadata, flags domain.Flags, rt Runtime, policy domain.UnknownPolicy) bool {
	if rng, ok := meta.SupportRanges[rt.Family()]; ok && rt.Satisfies(rng) {
		return true
	}
	if flags.Has(domain.FlagAlways) {
		return true
	}
	return rt.IsUnknown() && policy == domain.UnknownPolyfill
}

// Exclude removes the named capabilities from resolved, however they were
// discovered. resolved is not modified.
func Exclude(resolved map[string]domain.ResolvedCapability, excludes []string) map[string]domain.ResolvedCapability {
	if len(excludes) == 0 {
		return resolved
	}
	out := make(map[string]domain.ResolvedCapability, len(resolved))
	for name, rc := range resolved {
		if !slices.ContainsFunc(excludes, func(ex string) bool { return strings.TrimSpace(ex) == name }) {
			out[name] = rc
		}
	}
	return out
}
