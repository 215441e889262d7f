package useragent

import (
	"maps"
	"slices"
)

// Baselines maps a runtime family to the minimum version range for which any
// compatibility data exists. Families absent from the table are unknown.
type Baselines map[string]string

// DefaultBaselines returns the baseline registry served by default.
func DefaultBaselines() Baselines {
	return Baselines{
		"ie":          ">=7",
		"ie_mob":      ">=8",
		"chrome":      "*",
		"safari":      ">=4",
		"ios_saf":     ">=4",
		"ios_chr":     ">=4",
		"firefox":     ">=3.6",
		"firefox_mob": ">=4",
		"android":     ">=3",
		"opera":       ">=11",
		"op_mob":      ">=10",
		"op_mini":     ">=5",
		"bb":          ">=6",
		"samsung_mob": ">=4",
	}
}

// Lookup returns the baseline range for family.
func (b Baselines) Lookup(family string) (string, bool) {
	r, ok := b[family]
	return r, ok
}

// Families returns the known family names in order.
func (b Baselines) Families() []string {
	return slices.Sorted(maps.Keys(b))
}
