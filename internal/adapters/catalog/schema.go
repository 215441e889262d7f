package catalog

import "go.trai.ch/polyfill/internal/core/domain"

// Manifest represents the structure of a capability's config.yaml.
type Manifest struct {
	// Browsers maps runtime family to the version range that needs the shim.
	Browsers     map[string]string `yaml:"browsers"`
	Dependencies []string          `yaml:"dependencies,omitempty"`
	Aliases      []string          `yaml:"aliases,omitempty"`
	License      string            `yaml:"license,omitempty"`
}

// ManifestOf renders metadata back into its config.yaml form.
func ManifestOf(meta *domain.CapabilityMetadata) Manifest {
	return Manifest{
		Browsers:     meta.SupportRanges,
		Dependencies: meta.Dependencies,
		Aliases:      meta.ConfigAliases,
		License:      meta.License,
	}
}

// AliasFile represents the optional aliases.yaml at the catalog root.
// It maps an alias group name to the capabilities it stands for.
type AliasFile map[string][]string
