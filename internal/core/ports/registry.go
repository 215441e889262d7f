// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/polyfill/internal/core/domain"
)

// CapabilityRegistry is the read-only catalog of capability metadata.
//
// Every method returns domain.ErrRegistryNotReady until the catalog has been
// loaded; callers must surface that condition instead of treating it as an
// empty catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type CapabilityRegistry interface {
	// ListCapabilities returns the names of all known capabilities in name order.
	ListCapabilities(ctx context.Context) ([]string, error)

	// GetCapability returns the metadata for name.
	// found is false when the registry does not know the capability.
	GetCapability(ctx context.Context, name string) (meta *domain.CapabilityMetadata, found bool, err error)

	// GetConfigAliases returns the capability names an alias group stands for,
	// in name order. It returns nil when name is not an alias group.
	GetConfigAliases(ctx context.Context, name string) ([]string, error)
}

// CatalogLoader populates a registry from a catalog directory.
// Until Load succeeds the registry reports domain.ErrRegistryNotReady.
type CatalogLoader interface {
	Load(ctx context.Context, dir string) error
	Ready() bool
}
