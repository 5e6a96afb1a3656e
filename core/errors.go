// SPDX-License-Identifier: MIT
// Package core: sentinel error set for the measurement data model.
//
// Every message is prefixed with "core: ..." so it can be grepped in logs.
// Callers match with errors.Is; context is attached at the detection site
// with fmt.Errorf("ctx: %w", ErrX).

package core

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/psse/distribution"
)

var (
	// ErrInvalidParameter is shared with the distribution adapter so that a
	// non-positive scale, rescaler or weight matches the same sentinel
	// regardless of which layer detected it.
	ErrInvalidParameter = distribution.ErrInvalidParameter

	// ErrInvalidComponentCount indicates number_of_gaussian < 1. It wraps
	// ErrInvalidParameter, so both sentinels match.
	ErrInvalidComponentCount = fmt.Errorf("core: invalid gaussian component count: %w", ErrInvalidParameter)

	// ErrUnknownCriterion indicates a criterion name outside the enumeration.
	ErrUnknownCriterion = errors.New("core: unknown criterion")

	// ErrEmptyMeasurementID indicates a measurement without an ID.
	ErrEmptyMeasurementID = errors.New("core: measurement ID is empty")

	// ErrDuplicateMeasurement indicates an ID already present in the set.
	ErrDuplicateMeasurement = errors.New("core: duplicate measurement ID")

	// ErrMeasurementNotFound indicates a lookup of an absent ID.
	ErrMeasurementNotFound = errors.New("core: measurement not found")

	// ErrNilDistribution indicates a measurement without a distribution. It
	// wraps distribution.ErrUnsupportedDistribution.
	ErrNilDistribution = fmt.Errorf("core: measurement has no distribution: %w", distribution.ErrUnsupportedDistribution)
)
