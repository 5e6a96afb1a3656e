package gmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Defaults: single source of truth for Decompose.
const (
	// DefaultGridSize is the number of equal-mass quantile points EM is fit on.
	DefaultGridSize = 2000

	// DefaultMaxIterations caps the EM loop.
	DefaultMaxIterations = 500

	// DefaultTolerance stops EM once the mean log-likelihood changes by less
	// than Tolerance·max(1, |ll|) between iterations.
	DefaultTolerance = 1e-10

	// DefaultMinSigmaRatio floors every component sigma at this fraction of
	// the grid span.
	DefaultMinSigmaRatio = 1e-6

	// minWeight keeps every weight strictly positive before renormalisation.
	minWeight = 1e-12
)

// Options configures Decompose.
type Options struct {
	GridSize      int
	MaxIterations int
	Tolerance     float64
	MinSigmaRatio float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		GridSize:      DefaultGridSize,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		MinSigmaRatio: DefaultMinSigmaRatio,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithGridSize sets the number of quantile points.
func WithGridSize(n int) Option { return func(o *Options) { o.GridSize = n } }

// WithMaxIterations sets the EM iteration cap.
func WithMaxIterations(n int) Option { return func(o *Options) { o.MaxIterations = n } }

// WithTolerance sets the relative log-likelihood convergence tolerance.
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tolerance = tol } }

// WithMinSigmaRatio sets the sigma floor relative to the grid span.
func WithMinSigmaRatio(r float64) Option { return func(o *Options) { o.MinSigmaRatio = r } }

// Validate checks o against a component count k.
func (o Options) Validate(k int) error {
	switch {
	case o.GridSize < 2 || o.GridSize < k:
		return fmt.Errorf("%w: grid size %d must be >= max(2, k=%d)", ErrInvalidOption, o.GridSize, k)
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations %d must be >= 1", ErrInvalidOption, o.MaxIterations)
	case !(o.Tolerance >= 0) || math.IsInf(o.Tolerance, 0):
		return fmt.Errorf("%w: tolerance %v must be finite and >= 0", ErrInvalidOption, o.Tolerance)
	case !(o.MinSigmaRatio > 0) || o.MinSigmaRatio >= 1:
		return fmt.Errorf("%w: min sigma ratio %v must be in (0,1)", ErrInvalidOption, o.MinSigmaRatio)
	}

	return nil
}

// Component is one weighted Gaussian of a mixture.
type Component struct {
	Weight float64
	Mean   float64
	Sigma  float64
}

func (c Component) normal() distuv.Normal { return distuv.Normal{Mu: c.Mean, Sigma: c.Sigma} }

// Mixture is a fitted Gaussian mixture, components sorted by mean.
type Mixture struct {
	Components []Component

	// LogLikelihood is the mean log-likelihood of the quantile grid.
	LogLikelihood float64
	// Iterations is the number of EM iterations run.
	Iterations int
	// Converged is false when MaxIterations was hit first.
	Converged bool
}

// Len returns the number of components.
func (m Mixture) Len() int { return len(m.Components) }

// TotalWeight returns Σ w_n; 1 for a fitted mixture up to rounding.
func (m Mixture) TotalWeight() float64 {
	w := make([]float64, len(m.Components))
	for i, c := range m.Components {
		w[i] = c.Weight
	}

	return floats.Sum(w)
}

// Pdf returns Σ w_n·φ((x−μ_n)/σ_n)/σ_n.
func (m Mixture) Pdf(x float64) float64 {
	var p float64
	for _, c := range m.Components {
		p += c.Weight * c.normal().Prob(x)
	}

	return p
}

// LogPdf returns log Pdf(x), computed with log-sum-exp.
func (m Mixture) LogPdf(x float64) float64 {
	if len(m.Components) == 0 {
		return math.Inf(-1)
	}
	terms := make([]float64, len(m.Components))
	for i, c := range m.Components {
		terms[i] = math.Log(c.Weight) + c.normal().LogProb(x)
	}

	return floats.LogSumExp(terms)
}

// CDF returns Σ w_n·Φ((x−μ_n)/σ_n).
func (m Mixture) CDF(x float64) float64 {
	var p float64
	for _, c := range m.Components {
		p += c.Weight * c.normal().CDF(x)
	}

	return p
}

// Mean returns Σ w_n·μ_n.
func (m Mixture) Mean() float64 {
	var mu float64
	for _, c := range m.Components {
		mu += c.Weight * c.Mean
	}

	return mu
}
