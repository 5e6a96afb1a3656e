// Package psse is a residual formulation engine for power-system state
// estimation: it turns noisy measurements into the residual variables and
// constraints a nonlinear or convex solver minimises.
//
// 🚀 What does it do?
//
//	Given measurements tied to state variables and a probability
//	distribution each, psse:
//		• resolves the statistical criterion per measurement (wlav, rwlav,
//		  wls, rwls, gmm, mle, or mixed per-measurement control)
//		• emits exact or exactly-relaxed residual constraints with a shared
//		  rescaling convention
//		• decomposes non-Gaussian distributions into weighted Gaussian
//		  components for the gmm criterion
//		• supplies log-density with exact first and second derivatives for
//		  maximum-likelihood residuals
//
// ✨ Layout
//
//	distribution/ - families, log-density and its derivatives (gonum distuv)
//	core/         - Measurement, MeasurementSet, Criterion, Settings
//	criterion/    - per-measurement criterion resolution
//	gmm/          - Gaussian mixture decomposition (EM on a quantile grid)
//	rescale/      - the shared rescaler convention
//	model/        - symbolic variables and constraints handed to a solver
//	formulation/  - the residual formulation builder, build metrics
//	matrix/       - dense coefficient blocks for the linear part
//	converters/   - YAML documents ↔ core types
//	cmd/seformulate - inspection CLI (build, decompose)
//
// Network equations, bounds, warm starts and the solver itself live outside
// this module.
//
//	go get github.com/katalvlaran/psse
package psse
