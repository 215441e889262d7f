package domain

import "slices"

const (
	// FlagAlways forces inclusion regardless of runtime support ranges.
	FlagAlways = "always"
	// FlagGated wraps the shim in a client-side feature-detection guard.
	FlagGated = "gated"

	// AllCapabilities is the reserved name that expands to every known capability.
	AllCapabilities = "all"
)

// Flags is a sorted, duplicate-free set of capability flags.
type Flags []string

// NewFlags builds a canonical flag set from arbitrary input.
func NewFlags(flags ...string) Flags {
	if len(flags) == 0 {
		return Flags{}
	}
	sorted := make([]string, 0, len(flags))
	for _, f := range flags {
		if f != "" {
			sorted = append(sorted, f)
		}
	}
	slices.Sort(sorted)
	return Flags(slices.Compact(sorted))
}

// Has reports whether the set contains flag.
func (f Flags) Has(flag string) bool {
	_, found := slices.BinarySearch(f, flag)
	return found
}

// Union returns a new set holding the flags of both sets.
func (f Flags) Union(other Flags) Flags {
	merged := make([]string, 0, len(f)+len(other))
	merged = append(merged, f...)
	merged = append(merged, other...)
	return NewFlags(merged...)
}

// CapabilityRequest is a single capability asked for by the caller.
type CapabilityRequest struct {
	Name  string
	Flags Flags
}

// ResolvedCapability is a capability discovered during alias resolution.
// AliasOf lists, in discovery order, the requesting capabilities that caused
// its inclusion; it is empty for directly requested capabilities.
type ResolvedCapability struct {
	Name    string   `json:"-"`
	Flags   Flags    `json:"flags"`
	AliasOf []string `json:"aliasOf,omitempty"`
}

// CapabilityMetadata is the read-only catalog entry for a capability.
type CapabilityMetadata struct {
	Name string
	// SupportRanges maps runtime family to the version range needing the shim.
	SupportRanges map[string]string
	Dependencies  []string
	ConfigAliases []string
	License       string
	RawSource     string
	MinSource     string
	// DetectSource is the client-side feature test; empty when the catalog has none.
	DetectSource string
}

// Source returns the minified or raw source, falling back to raw when no
// minified build exists.
func (m *CapabilityMetadata) Source(minify bool) string {
	if minify && m.MinSource != "" {
		return m.MinSource
	}
	return m.RawSource
}
