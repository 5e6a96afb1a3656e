package criterion

import "errors"

var (
	// ErrMissingCriterion indicates mixed mode with a measurement that carries
	// no criterion of its own. It is never recovered by substituting a default.
	ErrMissingCriterion = errors.New("criterion: missing per-measurement criterion in mixed mode")

	// ErrCriterionFamilyMismatch indicates a criterion that cannot describe the
	// measurement's distribution family, e.g. wlav on a Weibull measurement.
	ErrCriterionFamilyMismatch = errors.New("criterion: criterion incompatible with distribution family")
)
