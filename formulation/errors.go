// SPDX-License-Identifier: MIT
// Package formulation: sentinel errors of the residual builder.
//
// Errors raised by lower layers (core, criterion, gmm, distribution, model)
// are propagated unchanged and wrapped with the measurement ID, so callers
// match them with errors.Is against the sentinel of the layer that owns it.

package formulation

import "errors"

var (
	// ErrUnknownFormulation indicates a solver formulation name outside the
	// enumeration.
	ErrUnknownFormulation = errors.New("formulation: unknown formulation")

	// ErrFormulationMismatch indicates a criterion the chosen solver
	// formulation cannot express convexly, e.g. mle under a conic formulation
	// built WithStrictConvexity.
	ErrFormulationMismatch = errors.New("formulation: criterion not supported by formulation")

	// ErrNilModel indicates Build or BuildMeasurement without a target model.
	ErrNilModel = errors.New("formulation: nil model")

	// ErrNilRegisterer indicates NewMetrics without a registerer.
	ErrNilRegisterer = errors.New("formulation: nil prometheus registerer")
)
