package distribution

import (
	"fmt"
	"strings"
)

// Family enumerates the supported distribution families.
type Family int

const (
	// FamilyUnknown is the zero value; it is never produced by ParseFamily.
	FamilyUnknown Family = iota
	FamilyNormal
	FamilyLogNormal
	FamilyExponential
	FamilyWeibull
	FamilyGamma
	FamilyBeta
	FamilyExtendedBeta
)

// familyNames is the canonical spelling of every supported family.
var familyNames = map[Family]string{
	FamilyNormal:       "normal",
	FamilyLogNormal:    "lognormal",
	FamilyExponential:  "exponential",
	FamilyWeibull:      "weibull",
	FamilyGamma:        "gamma",
	FamilyBeta:         "beta",
	FamilyExtendedBeta: "extendedbeta",
}

// String returns the canonical lower-case name of f.
func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}

	return fmt.Sprintf("family(%d)", int(f))
}

// Supported reports whether f is one of the enumerated families.
func (f Family) Supported() bool {
	_, ok := familyNames[f]

	return ok
}

// Gaussian reports whether f is the Normal family.
func (f Family) Gaussian() bool { return f == FamilyNormal }

// ParseFamily maps a name to a Family. Matching ignores case and the
// separators '-', '_' and ' ', so "Log-Normal" and "extended_beta" are accepted.
func ParseFamily(name string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for f, s := range familyNames {
		if s == key {
			return f, nil
		}
	}

	return FamilyUnknown, fmt.Errorf("%w: %q", ErrUnsupportedDistribution, name)
}
