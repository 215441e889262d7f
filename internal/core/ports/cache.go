package ports

import "go.trai.ch/polyfill/internal/core/domain"

// IdentityCache stores normalized identities keyed by the raw identity string.
// Implementations must be safe for concurrent use and bounded in size.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type IdentityCache interface {
	// Get returns the cached identity for raw, if present.
	Get(raw string) (domain.CanonicalIdentity, bool)
	// Add stores the identity for raw, evicting the least recently used entry if full.
	Add(raw string, id domain.CanonicalIdentity)
}
