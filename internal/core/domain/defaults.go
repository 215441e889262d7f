package domain

const (
	// MaxUserAgentLength bounds the identity string before any parsing.
	MaxUserAgentLength = 200

	// DefaultCacheSize is the capacity of the normalization cache.
	DefaultCacheSize = 5000

	// DefaultCatalogPath is the catalog directory used when none is configured.
	DefaultCatalogPath = "catalog"

	// DefaultListenAddr is the address the serving layer binds to by default.
	DefaultListenAddr = ":8080"

	// DefaultConfigFile is the name of the service configuration file.
	DefaultConfigFile = "polyfill.yaml"

	// CatalogMetaFile is the metadata file inside each capability directory.
	CatalogMetaFile = "config.yaml"
	// CatalogRawFile holds the unminified shim source.
	CatalogRawFile = "polyfill.js"
	// CatalogMinFile holds the minified shim source.
	CatalogMinFile = "min.js"
	// CatalogDetectFile holds the feature-detect expression.
	CatalogDetectFile = "detect.js"
	// CatalogAliasFile optionally declares additional alias groups at the catalog root.
	CatalogAliasFile = "aliases.yaml"
)
