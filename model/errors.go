package model

import "errors"

// Sentinel errors for the modeling layer. Match with errors.Is.
var (
	// ErrUnboundVariable indicates a reference to a variable the model does
	// not know, by name or by VarID.
	ErrUnboundVariable = errors.New("model: unbound variable")

	// ErrDuplicateVariable indicates a second variable with an existing name.
	ErrDuplicateVariable = errors.New("model: duplicate variable name")

	// ErrEmptyName indicates a variable without a name.
	ErrEmptyName = errors.New("model: variable name is empty")

	// ErrInvalidBounds indicates NaN bounds or lower > upper.
	ErrInvalidBounds = errors.New("model: invalid variable bounds")

	// ErrNilConstraint indicates a nil constraint or a nonlinear constraint
	// without its function.
	ErrNilConstraint = errors.New("model: nil constraint")

	// ErrInvalidCoefficient indicates a NaN or infinite coefficient.
	ErrInvalidCoefficient = errors.New("model: invalid coefficient")

	// ErrDimensionMismatch indicates a value vector whose length differs
	// from the number of variables.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrEmptyLinearBlock indicates LinearBlock on a model without linear
	// constraints.
	ErrEmptyLinearBlock = errors.New("model: no linear constraints")
)
