// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// All methods are O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set assigns v at position (i, j); ErrOutOfRange or ErrNaNInf on failure.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
