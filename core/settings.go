// SPDX-License-Identifier: MIT

// Package core: estimation settings. This file defines:
//   - documented defaults (constants), the single source of truth,
//   - Settings, an immutable value passed explicitly through every call,
//   - functional WithX options and NewSettings, which validates.

package core

import (
	"fmt"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCriterion leaves the choice to per-measurement overrides and the
	// family default (Normal → rwlav, other families → mle).
	DefaultCriterion = CriterionUnset

	// DefaultRescaler divides every residual; 1.0 leaves them unscaled.
	DefaultRescaler = 1.0

	// DefaultNumberOfGaussian is the component count K used by the gmm criterion.
	DefaultNumberOfGaussian = 10
)

// Settings is the global configuration of one formulation run.
//
// Settings is a plain value: copy it freely. No process-wide state is kept,
// so concurrent runs with different settings never interfere.
type Settings struct {
	// Criterion is one of wlav|rwlav|wls|rwls|gmm|mle|mixed, or unset.
	Criterion Criterion
	// Rescaler must be finite and > 0.
	Rescaler float64
	// NumberOfGaussian must be >= 1.
	NumberOfGaussian int
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Criterion:        DefaultCriterion,
		Rescaler:         DefaultRescaler,
		NumberOfGaussian: DefaultNumberOfGaussian,
	}
}

// Option mutates Settings under construction. Options never panic; values
// are checked once by NewSettings through Validate.
type Option func(*Settings)

// WithCriterion sets the global criterion.
func WithCriterion(c Criterion) Option {
	return func(s *Settings) { s.Criterion = c }
}

// WithRescaler sets the global rescaler.
func WithRescaler(r float64) Option {
	return func(s *Settings) { s.Rescaler = r }
}

// WithNumberOfGaussian sets the gmm component count.
func WithNumberOfGaussian(k int) Option {
	return func(s *Settings) { s.NumberOfGaussian = k }
}

// NewSettings applies opts left-to-right over DefaultSettings and validates
// the result.
func NewSettings(opts ...Option) (Settings, error) {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks every field.
//
// Errors:
//   - ErrUnknownCriterion for a criterion outside the enumeration.
//   - ErrInvalidParameter for a non-positive or non-finite rescaler.
//   - ErrInvalidComponentCount (wrapping ErrInvalidParameter) for K < 1.
func (s Settings) Validate() error {
	if err := s.Criterion.Validate(); err != nil {
		return err
	}
	if !(s.Rescaler > 0) || math.IsInf(s.Rescaler, 0) {
		return fmt.Errorf("%w: rescaler=%v must be finite and > 0", ErrInvalidParameter, s.Rescaler)
	}
	if s.NumberOfGaussian < 1 {
		return fmt.Errorf("%w: number_of_gaussian=%d", ErrInvalidComponentCount, s.NumberOfGaussian)
	}

	return nil
}
