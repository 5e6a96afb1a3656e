// Package rescale is the single rescaling convention shared by every
// residual formulation.
//
// A residual coefficient is always built as value / (rsc · s₁ · s₂ · …):
// the rescaler and every scale factor sit in the denominator, the sign stays
// in the numerator. Building coefficients only through Denominator and Apply
// keeps the criteria from drifting apart.
package rescale

import (
	"fmt"
	"math"

	"github.com/katalvlaran/psse/core"
)

// Resolve returns the effective rescaler of a measurement: *override when
// it is set, global otherwise.
//
// Errors: core.ErrInvalidParameter when the chosen value is not finite and
// > 0. A set override of 0 is rejected, never replaced by global.
func Resolve(override *float64, global float64) (float64, error) {
	rsc := global
	if override != nil {
		rsc = *override
	}
	if !valid(rsc) {
		return math.NaN(), fmt.Errorf("%w: rescaler=%v must be finite and > 0", core.ErrInvalidParameter, rsc)
	}

	return rsc, nil
}

// Denominator returns rsc · Π factors.
//
// Errors: core.ErrInvalidParameter when rsc or any factor is not finite and
// > 0, or when the product under- or overflows.
func Denominator(rsc float64, factors ...float64) (float64, error) {
	if !valid(rsc) {
		return math.NaN(), fmt.Errorf("%w: rescaler=%v must be finite and > 0", core.ErrInvalidParameter, rsc)
	}
	d := rsc
	for i, f := range factors {
		if !valid(f) {
			return math.NaN(), fmt.Errorf("%w: scale factor #%d=%v must be finite and > 0", core.ErrInvalidParameter, i, f)
		}
		d *= f
	}
	if !valid(d) {
		return math.NaN(), fmt.Errorf("%w: denominator %v out of range", core.ErrInvalidParameter, d)
	}

	return d, nil
}

// Apply returns value / denominator.
func Apply(value, denominator float64) float64 { return value / denominator }

// Coefficient is Apply(1, Denominator(rsc, factors...)).
func Coefficient(rsc float64, factors ...float64) (float64, error) {
	d, err := Denominator(rsc, factors...)
	if err != nil {
		return math.NaN(), err
	}

	return Apply(1, d), nil
}

func valid(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
