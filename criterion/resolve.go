package criterion

import (
	"fmt"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
)

// Default returns the criterion used when neither settings nor the
// measurement choose one.
func Default(f distribution.Family) core.Criterion {
	if f.Gaussian() {
		return core.RWLAV
	}

	return core.MLE
}

// Compatible reports whether c can describe errors of family f.
//
// Errors:
//   - core.ErrUnknownCriterion for a name outside the enumeration, unset or mixed.
//   - ErrCriterionFamilyMismatch for wlav|rwlav|wls|rwls on a non-Normal family.
func Compatible(c core.Criterion, f distribution.Family) error {
	switch c {
	case core.WLAV, core.RWLAV, core.WLS, core.RWLS:
		if !f.Gaussian() {
			return fmt.Errorf("%w: %s requires a normal distribution, got %s", ErrCriterionFamilyMismatch, c, f)
		}

		return nil
	case core.GMM, core.MLE:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a per-measurement criterion", core.ErrUnknownCriterion, string(c))
	}
}

// Resolve computes the criterion of every measurement in set under s.
//
// Implementation:
//   - Stage 1: validate s.
//   - Stage 2: walk the measurements in ID order and pick each criterion.
//   - Stage 3: check compatibility with the measurement's family.
//
// Errors (the first one encountered, wrapped with the measurement ID):
//   - core.ErrUnknownCriterion, core.ErrInvalidParameter from s.Validate.
//   - ErrMissingCriterion in mixed mode.
//   - ErrCriterionFamilyMismatch.
//
// On error the returned Assignment is empty.
func Resolve(set *core.MeasurementSet, s core.Settings) (Assignment, error) {
	var ms []core.Measurement
	if set != nil {
		ms = set.Measurements()
	}

	return ResolveMeasurements(ms, s)
}

// ResolveMeasurements is Resolve over a snapshot taken by the caller, in
// the order given. Callers that plan from the same snapshot see exactly the
// measurements that were resolved.
func ResolveMeasurements(ms []core.Measurement, s core.Settings) (Assignment, error) {
	if err := s.Validate(); err != nil {
		return Assignment{}, err
	}

	byID := make(map[string]core.Criterion, len(ms))
	for _, m := range ms {
		c, err := pick(m, s.Criterion)
		if err != nil {
			return Assignment{}, fmt.Errorf("measurement %q: %w", m.ID, err)
		}
		if err = Compatible(c, m.Dist.Family()); err != nil {
			return Assignment{}, fmt.Errorf("measurement %q: %w", m.ID, err)
		}
		byID[m.ID] = c
	}

	return Assignment{byID: byID}, nil
}

// pick applies the resolution rules to one measurement.
func pick(m core.Measurement, global core.Criterion) (core.Criterion, error) {
	switch {
	case global == core.Mixed:
		if !m.Crit.IsSet() {
			return core.CriterionUnset, ErrMissingCriterion
		}

		return m.Crit, nil
	case global.IsSet():
		return global, nil
	case m.Crit.IsSet():
		return m.Crit, nil
	default:
		return Default(m.Dist.Family()), nil
	}
}
