// SPDX-License-Identifier: MIT

// Package matrix provides the dense, row-major coefficient matrix used to
// export the linear part of an emitted formulation (see model.LinearBlock)
// and the matrix-vector kernels that evaluate it.
//
// Conventions:
//   - Public accessors never panic on bad indices; they return ErrOutOfRange.
//   - Set rejects NaN and ±Inf (DefaultValidateNaNInf), so a block handed to
//     an LP solver is always finite.
//   - Kernels have fixed loop orders and are deterministic.
package matrix
