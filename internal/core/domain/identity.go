package domain

import "strconv"

// UnknownFamily is the family reported for identity strings no rule recognises.
const UnknownFamily = "other"

// CanonicalIdentity is the normalized runtime identity that every compatibility
// decision is based on. Patch is always zero once normalization has run.
type CanonicalIdentity struct {
	Family string `json:"family"`
	Major  int    `json:"major"`
	Minor  int    `json:"minor"`
	Patch  int    `json:"patch"`
}

// Version returns the dotted version triple, e.g. "38.0.0".
func (c CanonicalIdentity) Version() string {
	return strconv.Itoa(c.Major) + "." + strconv.Itoa(c.Minor) + "." + strconv.Itoa(c.Patch)
}

// String returns the canonical "family/major.minor.patch" form.
func (c CanonicalIdentity) String() string {
	return c.Family + "/" + c.Version()
}
