// Package bundler assembles ordered capability sources into the artifact
// served to a runtime.
package bundler

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/polyfill/internal/core/domain"
)

const creditsLine = "For detailed credits and licence information see http://github.com/financial-times/polyfill-service."

// globalThis binds the isolating closure to the calling runtime's global
// object: window in a browser, self in a worker, global on a server.
const globalThis = ".call('object' === typeof window && window || " +
	"'object' === typeof self && self || " +
	"'object' === typeof global && global || {});"

// Explanation is the request context rendered into the verbose header.
type Explanation struct {
	// Runtime is the detected identity, e.g. "ie/8.0.0" or
	// "Unknown (using policy: ignore)".
	Runtime string
	// Requested lists the requested capability names as given by the caller.
	Requested []string
	Warnings  domain.Warnings
}

// Unsupported describes a runtime below its family baseline.
type Unsupported struct {
	Runtime string
	// Baseline is the family's supported range; empty when the family is unknown.
	Baseline string
}

// Bundle is an assembled artifact.
type Bundle struct {
	Source string
	// Order lists the emitted capabilities in emission order.
	Order []string
}

// Digest returns a stable content hash suitable for an HTTP entity tag.
func (b *Bundle) Digest() string {
	return Digest(b.Source)
}

// Digest hashes arbitrary artifact text the same way Bundle.Digest does.
func Digest(source string) string {
	return strconv.FormatUint(xxhash.Sum64String(source), 16)
}

// Build orders included and assembles the artifact.
func Build(included []domain.IncludedCapability, minify bool, exp Explanation) (*Bundle, error) {
	ordered, err := Order(included)
	if err != nil {
		return nil, err
	}

	order := make([]string, len(ordered))
	for i, c := range ordered {
		order[i] = c.Name
	}
	return &Bundle{Source: Assemble(ordered, minify, exp), Order: order}, nil
}

// BuildUnsupported returns the artifact served to runtimes that cannot be
// polyfilled: the explanatory header only, empty when minified.
func BuildUnsupported(u Unsupported, minify bool) *Bundle {
	if minify {
		return &Bundle{}
	}
	lines := []string{"Unsupported UA detected: " + u.Runtime}
	if u.Baseline != "" {
		lines = append(lines, "Version range for polyfill support in this family is: "+u.Baseline)
	}
	return &Bundle{Source: comment(lines)}
}

// Assemble concatenates the sources of ordered, which must already be in
// emission order. Gated capabilities with a detect expression only run when
// the expression is falsy in the client. Non-empty output is wrapped in a
// closure invoked against the global object. Verbose output is preceded by
// an explanatory comment; minified output carries none.
func Assemble(ordered []domain.IncludedCapability, minify bool, exp Explanation) string {
	lf := "\n"
	if minify {
		lf = ""
	}

	var body strings.Builder
	for _, c := range ordered {
		src := c.Metadata.Source(minify)
		if c.Flags.Has(domain.FlagGated) && c.Metadata.DetectSource != "" {
			body.WriteString("if (!(" + strings.TrimSpace(c.Metadata.DetectSource) + ")) {" + lf + src + "}" + lf + lf)
			continue
		}
		body.WriteString(src)
	}

	var out strings.Builder
	if !minify {
		out.WriteString(comment(explain(ordered, exp)))
	}
	if body.Len() > 0 {
		out.WriteString("(function(undefined) {" + lf + body.String() + lf + "})" + lf + globalThis)
	}
	return out.String()
}

func explain(ordered []domain.IncludedCapability, exp Explanation) []string {
	lines := []string{
		creditsLine,
		"",
		"UA detected: " + exp.Runtime,
		"Features requested: " + strings.Join(exp.Requested, ","),
		"",
	}
	for _, c := range ordered {
		lines = append(lines, licenseLine(c))
	}
	if len(exp.Warnings.Unknown) > 0 {
		lines = append(lines, "", "These features were not recognised:")
		lines = append(lines, bullets(exp.Warnings.Unknown)...)
	}
	if len(exp.Warnings.Failed) > 0 {
		lines = append(lines, "", "These features could not be loaded:")
		lines = append(lines, bullets(exp.Warnings.Failed)...)
	}
	return lines
}

func licenseLine(c domain.IncludedCapability) string {
	license := c.Metadata.License
	if license == "" {
		license = "CC0"
	}
	line := "- " + c.Name + ", License: " + license
	if len(c.AliasOf) > 0 {
		line += ` (required by "` + strings.Join(c.AliasOf, `", "`) + `")`
	}
	return line
}

func bullets(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = " - " + n
	}
	return out
}

func comment(lines []string) string {
	return "/* " + strings.Join(lines, "\n * ") + " */\n\n"
}
