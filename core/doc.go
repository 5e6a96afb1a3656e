// Package core defines the measurement data model of the residual
// formulation engine: Criterion, VariableRef, Measurement, the thread-safe
// MeasurementSet and the immutable Settings value.
//
// Measurements reference state variables by VariableRef.Key and never own
// them. Settings are passed explicitly through every call; there is no
// package-level mutable state.
//
// Errors:
//
//	ErrInvalidParameter      - non-positive or non-finite scale, weight or rescaler.
//	ErrInvalidComponentCount - number_of_gaussian < 1 (wraps ErrInvalidParameter).
//	ErrUnknownCriterion      - criterion name outside the enumeration.
//	ErrEmptyMeasurementID    - measurement ID is the empty string.
//	ErrDuplicateMeasurement  - ID already present in the set.
//	ErrMeasurementNotFound   - requested measurement does not exist.
//	ErrNilDistribution       - measurement without a distribution.
package core
