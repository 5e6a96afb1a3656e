// SPDX-License-Identifier: MIT

// Package matrix - matrix-vector kernels used to evaluate linear constraint
// blocks A·x ⋈ b.
package matrix

import "fmt"

const (
	opMatVec   = "MatVec"
	opResidual = "Residual"
)

func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 {
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Residual computes r = m·x − b.
//
// Errors: those of MatVec, plus ErrDimensionMismatch when len(b) != m.Rows().
func Residual(m Matrix, x, b []float64) ([]float64, error) {
	y, err := MatVec(m, x)
	if err != nil {
		return nil, matrixErrorf(opResidual, err)
	}
	if err = ValidateVecLen(b, len(y)); err != nil {
		return nil, matrixErrorf(opResidual, err)
	}
	for i := range y {
		y[i] -= b[i]
	}

	return y, nil
}
