package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Weibull has density (k/λ)(x/λ)^(k−1)·exp(−(x/λ)^k) on [0, +Inf), with
// k = Shape and λ = Scale.
type Weibull struct {
	Shape float64
	Scale float64
}

// NewWeibull returns a validated Weibull.
func NewWeibull(shape, scale float64) (Weibull, error) {
	w := Weibull{Shape: shape, Scale: scale}

	return w, w.Validate()
}

func (w Weibull) dist() distuv.Weibull { return distuv.Weibull{K: w.Shape, Lambda: w.Scale} }

// Family returns FamilyWeibull.
func (Weibull) Family() Family { return FamilyWeibull }

// Validate requires finite Shape > 0 and Scale > 0.
func (w Weibull) Validate() error {
	if !positive(w.Shape) {
		return invalidf(FamilyWeibull, "shape=%v must be > 0", w.Shape)
	}
	if !positive(w.Scale) {
		return invalidf(FamilyWeibull, "scale=%v must be > 0", w.Scale)
	}

	return nil
}

// LogPdf returns ln(k/λ) + (k−1)ln(x/λ) − (x/λ)^k.
//
// At x = 0 the value depends on the shape: −ln λ for k = 1, −Inf for k > 1,
// +Inf for k < 1.
func (w Weibull) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x == 0 {
		switch {
		case w.Shape == 1:
			return -math.Log(w.Scale)
		case w.Shape > 1:
			return math.Inf(-1)
		default:
			return math.Inf(1)
		}
	}

	return w.dist().LogProb(x)
}

// GradLogPdf returns (k−1)/x − (k/λ)(x/λ)^(k−1).
func (w Weibull) GradLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}
	if x > 0 {
		return w.dist().ScoreInput(x)
	}
	if w.Shape == 1 {
		return -1 / w.Scale
	}

	// k > 1 ⇒ +Inf, k < 1 ⇒ −Inf; the power term is dominated.
	return ratio(w.Shape-1, 0)
}

// HesLogPdf returns −(k−1)/x² − (k(k−1)/λ²)(x/λ)^(k−2).
func (w Weibull) HesLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}
	k, lam := w.Shape, w.Scale
	if k == 1 {
		return 0
	}
	if x == 0 {
		return ratio(-(k - 1), 0)
	}

	return -(k-1)/(x*x) - (k*(k-1)/(lam*lam))*math.Pow(x/lam, k-2)
}

func (w Weibull) Pdf(x float64) float64 {
	if x < 0 {
		return 0
	}

	return math.Exp(w.LogPdf(x))
}

func (w Weibull) CDF(x float64) float64      { return w.dist().CDF(x) }
func (w Weibull) Quantile(p float64) float64 { return w.dist().Quantile(p) }
func (w Weibull) Mean() float64              { return w.dist().Mean() }
func (w Weibull) StdDev() float64            { return w.dist().StdDev() }

// Mode returns λ((k−1)/k)^(1/k) for k > 1 and 0 for k = 1. For k < 1 the
// density diverges at 0 and ErrUnboundedDensity is returned.
func (w Weibull) Mode() (float64, error) {
	if w.Shape < 1 {
		return math.NaN(), invalidMode(FamilyWeibull, "shape=%v < 1", w.Shape)
	}

	return w.dist().Mode(), nil
}

// Support returns [0, +Inf).
func (Weibull) Support() (lo, hi float64) { return 0, math.Inf(1) }
