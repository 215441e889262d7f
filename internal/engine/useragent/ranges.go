package useragent

import (
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/zerr"
)

// Version is a numeric version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// constraints caches parsed range expressions. Range expressions come from the
// immutable catalog and alias tables, so the set is bounded.
var constraints sync.Map // map[string]*semver.Constraints

// ParseRange parses a range expression such as ">=7", "6 - 8", "9.9.*" or "*".
func ParseRange(expr string) (*semver.Constraints, error) {
	if c, ok := constraints.Load(expr); ok {
		return c.(*semver.Constraints), nil
	}
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidSupportRange.Error()), "range", expr)
	}
	constraints.Store(expr, c)
	return c, nil
}

// SatisfiesRange reports whether v lies inside expr. Malformed expressions
// never match.
func SatisfiesRange(v Version, expr string) bool {
	c, err := ParseRange(expr)
	if err != nil {
		return false
	}
	return c.Check(semver.New(uint64(max(v.Major, 0)), uint64(max(v.Minor, 0)), uint64(max(v.Patch, 0)), "", ""))
}
