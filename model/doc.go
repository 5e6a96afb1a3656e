// Package model is the symbolic form in which residual formulations are
// handed to an external solver-model builder.
//
// A Model owns decision variables (named, boxed, indexed by a dense VarID)
// and constraints of five shapes:
//
//	Linear            Σ a_i·x_i + c  ⋈ 0        (⋈ ∈ {==, >=, <=})
//	AbsEquality       ρ = |Σ a_i·x_i + c|
//	QuadEquality      ρ = k·(Σ a_i·x_i + c)²
//	RotatedCone       k·ρ ≥ (Σ a_i·x_i + c)²
//	NonlinearEquality ρ = f(x), with exact f', f'' callbacks
//
// Every constraint can report its Violation at a point, which is how tests
// and diagnostics check that an emitted formulation holds.
//
// Batch gives all-or-nothing emission: variables and constraints staged in
// the callback become visible only if it returns nil. LinearBlock exports the
// linear rows as a matrix.Dense for LP-style solvers.
//
// Errors:
//
//	ErrUnboundVariable    - unknown name or VarID.
//	ErrDuplicateVariable  - name already registered.
//	ErrEmptyName          - empty variable name.
//	ErrInvalidBounds      - NaN bounds or lower > upper.
//	ErrNilConstraint      - nil constraint or missing callbacks.
//	ErrInvalidCoefficient - NaN or infinite coefficient.
//	ErrDimensionMismatch  - value vector of the wrong length.
//	ErrEmptyLinearBlock   - LinearBlock without linear rows.
package model
