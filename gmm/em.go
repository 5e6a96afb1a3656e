package gmm

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/psse/distribution"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Decompose approximates d by k weighted Gaussian components.
//
// Algorithm:
//  1. Discretise d into N equal-mass points x_i = Q((i−½)/N), each carrying
//     probability 1/N. The points are sorted because Q is monotone.
//  2. Initialise by splitting the points into k contiguous blocks of equal
//     mass and moment-matching one component per block.
//  3. Run expectation-maximisation: responsibilities via log-sum-exp, then
//     weighted means, variances and weights. Sigmas are floored at
//     MinSigmaRatio·span(x) so no component collapses onto a point.
//  4. Stop when the mean log-likelihood settles or MaxIterations is hit.
//  5. Floor weights at a tiny positive value, renormalise to sum to 1 and
//     sort the components by mean.
//
// The result is deterministic for a given (d, k, options).
//
// Errors:
//   - ErrInvalidComponentCount for k < 1, before any work.
//   - distribution.ErrUnsupportedDistribution for nil or unknown families.
//   - distribution.ErrInvalidParameter from d.Validate.
//   - ErrInvalidOption for out-of-range options.
//   - ErrDegenerateFit if a parameter ends up non-finite.
//
// Complexity: O(MaxIterations·N·k) time, O(N·k) memory.
func Decompose(d distribution.Distribution, k int, opts ...Option) (Mixture, error) {
	if k < 1 {
		return Mixture{}, fmt.Errorf("%w: k=%d", ErrInvalidComponentCount, k)
	}
	if d == nil || !d.Family().Supported() {
		return Mixture{}, fmt.Errorf("%w: cannot decompose %v", distribution.ErrUnsupportedDistribution, d)
	}
	if err := d.Validate(); err != nil {
		return Mixture{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(k); err != nil {
		return Mixture{}, err
	}

	x := quantileGrid(d, o.GridSize)
	floor := o.MinSigmaRatio * (x[len(x)-1] - x[0])
	if !(floor > 0) {
		floor = o.MinSigmaRatio
	}

	comps := initBlocks(x, k, floor)
	f := newFitter(x, k, floor)

	mx := Mixture{LogLikelihood: math.Inf(-1)}
	for it := 1; it <= o.MaxIterations; it++ {
		ll := f.expectation(comps)
		f.maximisation(comps)
		mx.Iterations = it
		if math.Abs(ll-mx.LogLikelihood) <= o.Tolerance*math.Max(1, math.Abs(ll)) {
			mx.LogLikelihood = ll
			mx.Converged = true

			break
		}
		mx.LogLikelihood = ll
	}

	normaliseWeights(comps)
	sort.SliceStable(comps, func(i, j int) bool { return comps[i].Mean < comps[j].Mean })
	for _, c := range comps {
		if !finite(c.Weight) || !finite(c.Mean) || !finite(c.Sigma) {
			return Mixture{}, fmt.Errorf("%w: %+v", ErrDegenerateFit, c)
		}
	}
	mx.Components = comps

	return mx, nil
}

// quantileGrid returns x_i = Q((i−½)/n), i = 1..n.
func quantileGrid(d distribution.Distribution, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = d.Quantile((float64(i) + 0.5) / float64(n))
	}

	return x
}

// initBlocks moment-matches one component to each of k contiguous blocks.
func initBlocks(x []float64, k int, floor float64) []Component {
	n := len(x)
	comps := make([]Component, k)
	for j := 0; j < k; j++ {
		lo, hi := j*n/k, (j+1)*n/k
		block := x[lo:hi]
		mean, std := stat.PopMeanStdDev(block, nil)
		comps[j] = Component{
			Weight: float64(hi-lo) / float64(n),
			Mean:   mean,
			Sigma:  atLeast(std, floor),
		}
	}

	return comps
}

// fitter holds the EM work buffers.
type fitter struct {
	x     []float64
	floor float64
	resp  [][]float64 // resp[j][i]: responsibility of component j for x_i
	terms []float64
}

func newFitter(x []float64, k int, floor float64) *fitter {
	resp := make([][]float64, k)
	for j := range resp {
		resp[j] = make([]float64, len(x))
	}

	return &fitter{x: x, floor: floor, resp: resp, terms: make([]float64, k)}
}

// expectation fills resp and returns the mean log-likelihood of the grid.
func (f *fitter) expectation(comps []Component) float64 {
	var ll float64
	for i, xi := range f.x {
		for j, c := range comps {
			f.terms[j] = math.Log(c.Weight) + c.normal().LogProb(xi)
		}
		lse := floats.LogSumExp(f.terms)
		for j := range comps {
			f.resp[j][i] = math.Exp(f.terms[j] - lse)
		}
		ll += lse
	}

	return ll / float64(len(f.x))
}

// maximisation updates comps in place from resp. A component that lost all
// responsibility keeps its location and scale and only gets the weight floor.
func (f *fitter) maximisation(comps []Component) {
	n := float64(len(f.x))
	for j := range comps {
		r := f.resp[j]
		mass := floats.Sum(r)
		if !(mass > 0) {
			comps[j].Weight = minWeight

			continue
		}
		mean, std := stat.PopMeanStdDev(f.x, r)
		comps[j] = Component{
			Weight: math.Max(mass/n, minWeight),
			Mean:   mean,
			Sigma:  atLeast(std, f.floor),
		}
	}
}

// normaliseWeights floors weights at minWeight and rescales them to sum to 1.
func normaliseWeights(comps []Component) {
	var total float64
	for i := range comps {
		comps[i].Weight = math.Max(comps[i].Weight, minWeight)
		total += comps[i].Weight
	}
	for i := range comps {
		comps[i].Weight /= total
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// atLeast returns max(v, floor), mapping NaN to floor.
func atLeast(v, floor float64) float64 {
	if !(v > floor) {
		return floor
	}

	return v
}
