// SPDX-License-Identifier: MIT
// Package formulation
//
// options.go - functional options for NewBuilder.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors panic on nil inputs; Build itself never panics.
//   • Defaults: a discard logger, gmm.DefaultOptions(), no metrics and
//     sequential planning, no convexity check.

package formulation

import (
	"log/slog"

	"github.com/katalvlaran/psse/gmm"
)

// BuilderOption customises a Builder.
type BuilderOption func(*builderConfig)

// DefaultParallelism plans measurements one at a time.
const DefaultParallelism = 1

type builderConfig struct {
	logger      *slog.Logger
	decompose   []gmm.Option
	metrics     *Metrics
	parallelism int
	strict      bool
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		logger:      slog.New(slog.DiscardHandler),
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger routes build diagnostics to l. Panics on nil.
func WithLogger(l *slog.Logger) BuilderOption {
	if l == nil {
		panic("formulation: WithLogger(nil)")
	}

	return func(c *builderConfig) { c.logger = l }
}

// WithDecomposeOptions forwards options to gmm.Decompose for every gmm
// measurement. Repeated use appends.
func WithDecomposeOptions(opts ...gmm.Option) BuilderOption {
	return func(c *builderConfig) { c.decompose = append(c.decompose, opts...) }
}

// WithMetrics records emitted residuals, constraints, failures and mixture
// fit times in m. Panics on nil.
func WithMetrics(m *Metrics) BuilderOption {
	if m == nil {
		panic("formulation: WithMetrics(nil)")
	}

	return func(c *builderConfig) { c.metrics = m }
}

// WithParallelism plans up to n measurements concurrently, mixture fits
// included. Emission stays a single ordered batch. Panics on n < 1.
func WithParallelism(n int) BuilderOption {
	if n < 1 {
		panic("formulation: WithParallelism(n < 1)")
	}

	return func(c *builderConfig) { c.parallelism = n }
}

// WithStrictConvexity rejects wlav, wls and mle under the Linearized and
// Conic formulations with ErrFormulationMismatch.
func WithStrictConvexity() BuilderOption {
	return func(c *builderConfig) { c.strict = true }
}
