package resolver

import (
	"context"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
)

// Provider expands a capability name into further names.
//
// A provider that does not apply to name returns ok == false and the next
// provider is asked. A provider that applies returns ok == true and stops the
// chain; when its expansion does not contain name itself, name is considered
// replaced by the expansion and is absent from the resolved set.
type Provider func(ctx context.Context, name string) (expansion []string, ok bool, err error)

// DefaultProviders returns the providers in priority order: alias groups,
// declared dependencies, then the reserved "all" wildcard.
func DefaultProviders(registry ports.CapabilityRegistry) []Provider {
	return []Provider{
		ConfigAliasProvider(registry),
		DependencyProvider(registry),
		AllProvider(registry),
	}
}

// ConfigAliasProvider replaces an alias group by its member capabilities.
func ConfigAliasProvider(registry ports.CapabilityRegistry) Provider {
	return func(ctx context.Context, name string) ([]string, bool, error) {
		members, err := registry.GetConfigAliases(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if len(members) == 0 {
			return nil, false, nil
		}
		return members, true, nil
	}
}

// DependencyProvider keeps a known capability and adds its declared
// dependencies. Deeper dependencies are reached when the resolver visits
// the added names.
func DependencyProvider(registry ports.CapabilityRegistry) Provider {
	return func(ctx context.Context, name string) ([]string, bool, error) {
		meta, found, err := registry.GetCapability(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if !found {
			return nil, false, nil
		}
		expansion := make([]string, 0, len(meta.Dependencies)+1)
		expansion = append(expansion, name)
		expansion = append(expansion, meta.Dependencies...)
		return expansion, true, nil
	}
}

// AllProvider replaces the reserved name "all" by every known capability.
func AllProvider(registry ports.CapabilityRegistry) Provider {
	return func(ctx context.Context, name string) ([]string, bool, error) {
		if name != domain.AllCapabilities {
			return nil, false, nil
		}
		names, err := registry.ListCapabilities(ctx)
		if err != nil {
			return nil, false, err
		}
		return names, true, nil
	}
}
