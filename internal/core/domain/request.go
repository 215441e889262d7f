package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// UnknownPolicy controls how runtimes outside the baseline registry are served.
type UnknownPolicy string

const (
	// UnknownIgnore serves nothing to unknown runtimes.
	UnknownIgnore UnknownPolicy = "ignore"
	// UnknownPolyfill serves every requested shim to unknown runtimes.
	UnknownPolyfill UnknownPolicy = "polyfill"
)

// ParseUnknownPolicy validates a policy string. An empty string selects UnknownIgnore.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch UnknownPolicy(s) {
	case "", UnknownIgnore:
		return UnknownIgnore, nil
	case UnknownPolyfill:
		return UnknownPolyfill, nil
	default:
		return "", zerr.With(ErrInvalidUnknownPolicy, "unknown", s)
	}
}

// Request is the input of a single resolution pipeline run.
type Request struct {
	// Capabilities maps requested capability names to their flags.
	Capabilities map[string]Flags
	UserAgent    string
	Unknown      UnknownPolicy
	// Excludes removes the named capabilities from the included set,
	// however they were discovered.
	Excludes []string
	Minify   bool
}

// Warnings collects non-fatal conditions met while resolving a request.
type Warnings struct {
	// Unknown lists requested or discovered names the registry does not know.
	Unknown []string `json:"unknown,omitempty"`
	// Failed lists capabilities whose metadata lookup failed.
	Failed []string `json:"failed,omitempty"`
}

// Empty reports whether no warning has been recorded.
func (w Warnings) Empty() bool {
	return len(w.Unknown) == 0 && len(w.Failed) == 0
}

// IncludedCapability is a capability that survived applicability filtering,
// carried with the metadata fetched for it.
type IncludedCapability struct {
	ResolvedCapability
	Metadata *CapabilityMetadata
}

// DefaultFeatureSet is requested when a caller names no capabilities.
const DefaultFeatureSet = "default"

// ParseFeatureList parses a comma separated list of "name|flag|flag" entries.
// Every entry additionally receives the global flags. An empty list requests
// DefaultFeatureSet. Repeated names have their flags merged.
func ParseFeatureList(list string, global ...string) map[string]Flags {
	if strings.TrimSpace(list) == "" {
		list = DefaultFeatureSet
	}

	out := make(map[string]Flags)
	for entry := range strings.SplitSeq(list, ",") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		flags := make([]string, 0, len(parts)-1+len(global))
		for _, f := range parts[1:] {
			flags = append(flags, strings.TrimSpace(f))
		}
		flags = append(flags, global...)
		out[name] = out[name].Union(NewFlags(flags...))
	}
	return out
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(list string) []string {
	var out []string
	for item := range strings.SplitSeq(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
