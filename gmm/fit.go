package gmm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/psse/distribution"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// holdoutLowerQ and holdoutUpperQ bound the goodness-of-fit grid.
	holdoutLowerQ = 0.001
	holdoutUpperQ = 0.999
)

// HoldoutGrid returns n points evenly spaced in x between the 0.1% and 99.9%
// quantiles of d. The fitting grid is equal-mass in probability, so the two
// grids do not share points in practice.
func HoldoutGrid(d distribution.Distribution, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: holdout grid needs n >= 2, got %d", ErrInvalidOption, n)
	}
	if d == nil || !d.Family().Supported() {
		return nil, fmt.Errorf("%w: %v", distribution.ErrUnsupportedDistribution, d)
	}

	return floats.Span(make([]float64, n), d.Quantile(holdoutLowerQ), d.Quantile(holdoutUpperQ)), nil
}

// KLDivergence returns KL(p‖q) between the target density p = d.Pdf and the
// mixture density q = mx.Pdf, both evaluated on grid and normalised to sum
// to 1. Smaller is better; +Inf means the mixture vanishes where d does not.
func KLDivergence(d distribution.Distribution, mx Mixture, grid []float64) (float64, error) {
	if len(grid) == 0 {
		return math.NaN(), fmt.Errorf("%w: empty grid", ErrInvalidOption)
	}
	p := make([]float64, len(grid))
	q := make([]float64, len(grid))
	for i, x := range grid {
		p[i] = d.Pdf(x)
		q[i] = mx.Pdf(x)
	}
	sp, sq := floats.Sum(p), floats.Sum(q)
	if !(sp > 0) || !(sq > 0) || math.IsInf(sp, 0) || math.IsInf(sq, 0) {
		return math.NaN(), fmt.Errorf("%w: densities do not normalise on the grid (target %v, mixture %v)", ErrDegenerateFit, sp, sq)
	}
	floats.Scale(1/sp, p)
	floats.Scale(1/sq, q)

	return stat.KullbackLeibler(p, q), nil
}
