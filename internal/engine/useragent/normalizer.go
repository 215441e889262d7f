// Package useragent canonicalizes untrusted runtime identity strings into a
// family/major.minor.0 identity and answers compatibility questions about it.
package useragent

import (
	"regexp"
	"strings"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
)

// maxCanonicalLength bounds inputs eligible for the canonical fast path.
const maxCanonicalLength = 22

// canonicalForm matches identities already written as family/major[.minor[.patch]].
var canonicalForm = regexp.MustCompile(`^(\w+)/(\d+)(?:\.(\d+)(?:\.(\d+))?)?$`)

// Normalizer turns raw identity strings into Identities.
// It is safe for concurrent use; the only shared mutable state is the injected cache.
type Normalizer struct {
	cache     ports.IdentityCache
	baselines Baselines
	aliases   AliasTable
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithBaselines replaces the default baseline registry.
func WithBaselines(b Baselines) Option {
	return func(n *Normalizer) { n.baselines = b }
}

// WithAliases replaces the default alias table.
func WithAliases(a AliasTable) Option {
	return func(n *Normalizer) { n.aliases = a }
}

// NewNormalizer creates a Normalizer backed by cache. A nil cache disables caching.
func NewNormalizer(cache ports.IdentityCache, opts ...Option) *Normalizer {
	n := &Normalizer{
		cache:     cache,
		baselines: DefaultBaselines(),
		aliases:   DefaultAliases(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Baselines returns the baseline registry in use.
func (n *Normalizer) Baselines() Baselines {
	return n.baselines
}

// Parse canonicalizes raw. It never fails; unrecognised input produces an
// identity for which IsUnknown reports true.
func (n *Normalizer) Parse(raw string) *Identity {
	return &Identity{id: n.canonicalize(raw), baselines: n.baselines}
}

// Normalize returns the canonical "family/major.minor.0" form of raw.
func (n *Normalizer) Normalize(raw string) string {
	return n.canonicalize(raw).String()
}

func (n *Normalizer) canonicalize(raw string) domain.CanonicalIdentity {
	raw = truncate(raw, domain.MaxUserAgentLength)

	if id, ok := parseCanonical(raw); ok {
		return id
	}

	if n.cache != nil {
		if id, ok := n.cache.Get(raw); ok {
			return id
		}
	}

	agent := ParseAgent(stripWebViewWrappers(raw))
	agent.Family = strings.ToLower(agent.Family)
	if rule, ok := n.aliases[agent.Family]; ok {
		agent = rule.Apply(agent)
	}

	id := domain.CanonicalIdentity{
		Family: agent.Family,
		Major:  agent.Version.Major,
		Minor:  agent.Version.Minor,
	}

	if n.cache != nil {
		n.cache.Add(raw, id)
	}
	return id
}

// parseCanonical short-circuits identities already in canonical form.
// They are case-folded but not alias-resolved.
func parseCanonical(raw string) (domain.CanonicalIdentity, bool) {
	if len(raw) >= maxCanonicalLength {
		return domain.CanonicalIdentity{}, false
	}
	m := canonicalForm.FindStringSubmatch(raw)
	if m == nil {
		return domain.CanonicalIdentity{}, false
	}
	return domain.CanonicalIdentity{
		Family: strings.ToLower(m[1]),
		Major:  atoi(m[2]),
		Minor:  atoi(m[3]),
	}, true
}

// truncate limits s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// Identity is a normalized runtime identity bound to a baseline registry.
type Identity struct {
	id        domain.CanonicalIdentity
	baselines Baselines
}

// NewIdentity binds an already canonical identity to baselines.
func NewIdentity(id domain.CanonicalIdentity, baselines Baselines) *Identity {
	id.Patch = 0
	return &Identity{id: id, baselines: baselines}
}

// Canonical returns the underlying identity triple.
func (i *Identity) Canonical() domain.CanonicalIdentity {
	return i.id
}

// Family returns the canonical family name.
func (i *Identity) Family() string {
	return i.id.Family
}

// Major returns the major version component.
func (i *Identity) Major() int {
	return i.id.Major
}

// Version returns the dotted version, e.g. "38.0.0".
func (i *Identity) Version() string {
	return i.id.Version()
}

// String returns "family/major.minor.0".
func (i *Identity) String() string {
	return i.id.String()
}

func (i *Identity) version() Version {
	return Version{Major: i.id.Major, Minor: i.id.Minor, Patch: i.id.Patch}
}

// Satisfies reports whether the identity lies inside expr. Satisfaction is
// always gated on the family's baseline: families outside the registry, or
// versions below their baseline, never satisfy anything.
func (i *Identity) Satisfies(expr string) bool {
	return SatisfiesRange(i.version(), expr) && i.MeetsBaseline()
}

// Baseline returns the configured minimum range for the family.
func (i *Identity) Baseline() (string, bool) {
	return i.baselines.Lookup(i.id.Family)
}

// MeetsBaseline reports whether the family is known and the version is
// within its baseline.
func (i *Identity) MeetsBaseline() bool {
	baseline, ok := i.Baseline()
	if !ok {
		return false
	}
	return SatisfiesRange(i.version(), baseline)
}

// IsUnknown reports whether the family is absent from the baseline registry
// or fails its baseline.
func (i *Identity) IsUnknown() bool {
	return !i.MeetsBaseline()
}

// DebugName describes the identity for explanatory output.
func (i *Identity) DebugName(policy domain.UnknownPolicy) string {
	if i.IsUnknown() {
		return "Unknown (using policy: " + string(policy) + ")"
	}
	return i.String()
}

// maxLabelledMajor caps the major versions reported as distinct series.
const maxLabelledMajor = 200

// MetricsLabels returns the family and major version used to label
// per-runtime counters. Families outside the baseline registry and majors
// above maxLabelledMajor all report as other/0, so client input cannot grow
// the number of series.
func (i *Identity) MetricsLabels() (string, int) {
	if _, ok := i.Baseline(); !ok || i.id.Major > maxLabelledMajor {
		return "other", 0
	}
	return i.id.Family, i.id.Major
}
