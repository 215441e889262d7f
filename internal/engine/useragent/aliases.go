package useragent

// AliasKind tags the variant held by an AliasRule.
type AliasKind uint8

const (
	// AliasRename replaces the family and keeps the parsed version.
	AliasRename AliasKind = iota + 1
	// AliasRenameWithVersion replaces both family and version with fixed values.
	AliasRenameWithVersion
	// AliasVersionRangeMap maps version ranges of the family to fixed targets.
	AliasVersionRangeMap
	// AliasCustom delegates to a function that sees the full parsed agent.
	AliasCustom
)

// RangeTarget is one entry of a version-range alias table.
type RangeTarget struct {
	Range   string
	Family  string
	Version Version
}

// Override is a partial identity returned by custom alias functions.
// A nil Version leaves the parsed version untouched.
type Override struct {
	Family  string
	Version *Version
}

// AliasRule rewrites a detected family into a canonical one.
// Only the fields of the variant named by Kind are meaningful.
type AliasRule struct {
	Kind    AliasKind
	Family  string
	Version Version
	Ranges  []RangeTarget
	Custom  func(Agent) (Override, bool)
}

// Rename maps a family onto target, keeping the version.
func Rename(target string) AliasRule {
	return AliasRule{Kind: AliasRename, Family: target}
}

// RenameWithVersion maps a family onto target at a fixed version.
func RenameWithVersion(target string, major, minor, patch int) AliasRule {
	return AliasRule{
		Kind:    AliasRenameWithVersion,
		Family:  target,
		Version: Version{Major: major, Minor: minor, Patch: patch},
	}
}

// VersionRangeMap maps version ranges onto fixed targets. Entries are tried
// in order and the first satisfied range wins.
func VersionRangeMap(targets ...RangeTarget) AliasRule {
	return AliasRule{Kind: AliasVersionRangeMap, Ranges: targets}
}

// Custom maps a family using fn. fn returns false to leave the agent as parsed.
func Custom(fn func(Agent) (Override, bool)) AliasRule {
	return AliasRule{Kind: AliasCustom, Custom: fn}
}

// Apply resolves agent through the rule and returns the rewritten agent.
func (r AliasRule) Apply(agent Agent) Agent {
	switch r.Kind {
	case AliasRename:
		agent.Family = r.Family
	case AliasRenameWithVersion:
		agent.Family = r.Family
		agent.Version = r.Version
	case AliasVersionRangeMap:
		for _, t := range r.Ranges {
			if SatisfiesRange(agent.Version, t.Range) {
				agent.Family = t.Family
				agent.Version = t.Version
				break
			}
		}
	case AliasCustom:
		if r.Custom == nil {
			return agent
		}
		if o, ok := r.Custom(agent); ok {
			if o.Family != "" {
				agent.Family = o.Family
			}
			if o.Version != nil {
				agent.Version = *o.Version
			}
		}
	}
	return agent
}

// AliasTable maps lower-cased detected families to their alias rule.
type AliasTable map[string]AliasRule

func target(rng, family string, major int) RangeTarget {
	return RangeTarget{Range: rng, Family: family, Version: Version{Major: major}}
}

// DefaultAliases returns the alias table served by default.
func DefaultAliases() AliasTable {
	return AliasTable{
		"blackberry webkit": Rename("bb"),
		"blackberry":        Rename("bb"),

		"pale moon (firefox variant)": Rename("firefox"),
		"firefox mobile":              Rename("firefox_mob"),
		"firefox namoroka":            Rename("firefox"),
		"firefox shiretoko":           Rename("firefox"),
		"firefox minefield":           Rename("firefox"),
		"firefox alpha":               Rename("firefox"),
		"firefox beta":                Rename("firefox"),
		"microb":                      Rename("firefox"),
		"mozilladeveloperpreview":     Rename("firefox"),
		"iceweasel":                   Rename("firefox"),

		"opera tablet": Rename("opera"),
		"opera mobile": Rename("op_mob"),
		"opera mini":   Rename("op_mini"),

		"chrome mobile": Rename("chrome"),
		"chrome frame":  Rename("chrome"),
		"chromium":      Rename("chrome"),

		"ie mobile":         Rename("ie_mob"),
		"ie large screen":   Rename("ie"),
		"internet explorer": Rename("ie"),
		"edge":              Rename("ie"),
		"edge mobile":       Rename("ie"),
		"uc browser":        VersionRangeMap(target("9.9.*", "ie", 10)),

		"chrome mobile ios": Rename("ios_chr"),

		"mobile safari":            Rename("ios_saf"),
		"iphone":                   Rename("ios_saf"),
		"iphone simulator":         Rename("ios_saf"),
		"mobile safari uiwebview":  Rename("ios_saf"),
		"facebook":                 Custom(facebookOnIOS),
		"samsung internet":         Rename("samsung_mob"),
		"phantomjs":                RenameWithVersion("safari", 5, 0, 0),
		"yandex browser": VersionRangeMap(
			target("14.10", "chrome", 37),
			target("14.8", "chrome", 36),
			target("14.7", "chrome", 35),
			target("14.5", "chrome", 34),
			target("14.4", "chrome", 33),
			target("14.2", "chrome", 32),
			target("13.12", "chrome", 30),
			target("13.10", "chrome", 28),
		),
	}
}

// facebookOnIOS maps the in-app browser to the iOS web view it renders through.
func facebookOnIOS(a Agent) (Override, bool) {
	if a.OS.Family != "iOS" {
		return Override{}, false
	}
	return Override{
		Family:  "ios_saf",
		Version: &Version{Major: a.OS.Major, Minor: a.OS.Minor},
	}, true
}
