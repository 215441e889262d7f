package domain

import "go.trai.ch/zerr"

var (
	// ErrRegistryNotReady is returned when the capability registry has not finished loading.
	ErrRegistryNotReady = zerr.New("capability registry not ready")

	// ErrCapabilityExists is returned when attempting to add a capability with a name that already exists.
	ErrCapabilityExists = zerr.New("capability already exists")

	// ErrMissingDependency is returned when a graph node references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the registry declares cyclic dependencies between capabilities.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrCapabilityNotFound is returned when a requested capability is not known to the registry.
	ErrCapabilityNotFound = zerr.New("capability not found")

	// ErrCapabilityLookupFailed is returned when the metadata of a single capability could not be read.
	ErrCapabilityLookupFailed = zerr.New("capability lookup failed")

	// ErrInvalidUnknownPolicy is returned when the unknown-runtime policy is neither 'ignore' nor 'polyfill'.
	ErrInvalidUnknownPolicy = zerr.New("invalid unknown policy, expected 'ignore' or 'polyfill'")

	// ErrReservedCapabilityName is returned when a catalog entry uses a reserved name (e.g., "all").
	ErrReservedCapabilityName = zerr.New("capability name 'all' is reserved")

	// ErrCatalogNotFound is returned when the catalog directory does not exist.
	ErrCatalogNotFound = zerr.New("catalog directory not found")

	// ErrCatalogReadFailed is returned when a catalog file cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read catalog file")

	// ErrCatalogParseFailed is returned when a catalog metadata file cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog metadata")

	// ErrInvalidSupportRange is returned when a support range expression cannot be parsed.
	ErrInvalidSupportRange = zerr.New("invalid support range expression")

	// ErrConfigReadFailed is returned when the service configuration cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the service configuration cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
