// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
package matrix

const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	// Coefficient blocks handed to a solver must be finite.
	DefaultValidateNaNInf = true

	// ZeroSum is the accumulator start value of every dot product.
	ZeroSum = 0.0
)
