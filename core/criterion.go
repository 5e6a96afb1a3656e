package core

import (
	"fmt"
	"strings"
)

// Criterion names the statistical criterion a residual is built under.
// The zero value CriterionUnset means "not chosen"; it resolves per family.
type Criterion string

const (
	CriterionUnset Criterion = ""

	// WLAV is the weighted least absolute value: ρ = |x−μ|/(rsc·σ).
	WLAV Criterion = "wlav"
	// RWLAV is the linear relaxation of WLAV, tight at any minimiser.
	RWLAV Criterion = "rwlav"
	// WLS is the weighted least squares: ρ = (x−μ)²/(rsc·σ²).
	WLS Criterion = "wls"
	// RWLS is the rotated second-order-cone relaxation of WLS.
	RWLS Criterion = "rwls"
	// GMM is the rwlav-style residual over a Gaussian mixture decomposition.
	GMM Criterion = "gmm"
	// MLE is the shifted negative log-likelihood.
	MLE Criterion = "mle"
	// Mixed is a settings-only mode: every measurement carries its own criterion.
	Mixed Criterion = "mixed"
)

// criteria lists every named criterion in a stable order.
var criteria = []Criterion{WLAV, RWLAV, WLS, RWLS, GMM, MLE, Mixed}

// Criteria returns the named criteria, mixed included, in a stable order.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)

	return out
}

// ParseCriterion maps a case-insensitive name to a Criterion. The empty
// string parses to CriterionUnset.
func ParseCriterion(name string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(name)))
	if c == CriterionUnset {
		return CriterionUnset, nil
	}
	if err := c.Validate(); err != nil {
		return CriterionUnset, err
	}

	return c, nil
}

// Validate returns ErrUnknownCriterion unless c is unset or enumerated.
func (c Criterion) Validate() error {
	if c == CriterionUnset {
		return nil
	}
	for _, k := range criteria {
		if c == k {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownCriterion, string(c))
}

// IsSet reports whether c was chosen explicitly.
func (c Criterion) IsSet() bool { return c != CriterionUnset }

// PerMeasurement reports whether c can be attached to a single measurement.
// Mixed is a settings mode, not a residual shape.
func (c Criterion) PerMeasurement() bool { return c.IsSet() && c != Mixed }

// Relaxation reports whether c is an exact convex relaxation (rwlav, rwls)
// or built on one (gmm).
func (c Criterion) Relaxation() bool { return c == RWLAV || c == RWLS || c == GMM }

func (c Criterion) String() string {
	if c == CriterionUnset {
		return "unset"
	}

	return string(c)
}
