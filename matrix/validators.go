// SPDX-License-Identifier: MIT
// Package matrix: canonical validation checks shared by kernels.
// Validators return plain sentinels tagged with the validator name; call
// sites wrap them with their own operation tag.

package matrix

import "fmt"

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix if m == nil.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateVecLen returns ErrDimensionMismatch unless len(x) == n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("%w: len=%d, want %d", ErrDimensionMismatch, len(x), n))
	}

	return nil
}
