package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Exponential has density Rate·exp(−Rate·x) on [0, +Inf).
type Exponential struct {
	Rate float64
}

// NewExponential returns a validated Exponential.
func NewExponential(rate float64) (Exponential, error) {
	e := Exponential{Rate: rate}

	return e, e.Validate()
}

func (e Exponential) dist() distuv.Exponential { return distuv.Exponential{Rate: e.Rate} }

// Family returns FamilyExponential.
func (Exponential) Family() Family { return FamilyExponential }

// Validate requires a finite Rate > 0.
func (e Exponential) Validate() error {
	if !positive(e.Rate) {
		return invalidf(FamilyExponential, "rate=%v must be > 0", e.Rate)
	}

	return nil
}

// LogPdf returns ln λ − λx on the support.
func (e Exponential) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}

	return e.dist().LogProb(x)
}

// GradLogPdf returns −λ on the support, including the right limit at 0.
func (e Exponential) GradLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}
	if x == 0 {
		return -e.Rate
	}

	return e.dist().ScoreInput(x)
}

// HesLogPdf is identically 0 on the support: the log density is affine.
func (e Exponential) HesLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}

	return 0
}

func (e Exponential) Pdf(x float64) float64      { return e.dist().Prob(x) }
func (e Exponential) CDF(x float64) float64      { return e.dist().CDF(x) }
func (e Exponential) Quantile(p float64) float64 { return e.dist().Quantile(p) }
func (e Exponential) Mean() float64              { return e.dist().Mean() }
func (e Exponential) StdDev() float64            { return e.dist().StdDev() }

// Mode returns 0, where the density equals λ.
func (Exponential) Mode() (float64, error) { return 0, nil }

// Support returns [0, +Inf).
func (Exponential) Support() (lo, hi float64) { return 0, math.Inf(1) }
