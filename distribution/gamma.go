package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma has density x^(k−1)·exp(−x/θ) / (Γ(k)·θ^k) on [0, +Inf), with
// k = Shape and θ = Scale.
type Gamma struct {
	Shape float64
	Scale float64
}

// NewGamma returns a validated Gamma.
func NewGamma(shape, scale float64) (Gamma, error) {
	g := Gamma{Shape: shape, Scale: scale}

	return g, g.Validate()
}

// dist converts to gonum's rate parameterisation.
func (g Gamma) dist() distuv.Gamma { return distuv.Gamma{Alpha: g.Shape, Beta: 1 / g.Scale} }

// Family returns FamilyGamma.
func (Gamma) Family() Family { return FamilyGamma }

// Validate requires finite Shape > 0 and Scale > 0.
func (g Gamma) Validate() error {
	if !positive(g.Shape) {
		return invalidf(FamilyGamma, "shape=%v must be > 0", g.Shape)
	}
	if !positive(g.Scale) {
		return invalidf(FamilyGamma, "scale=%v must be > 0", g.Scale)
	}

	return nil
}

// LogPdf returns (k−1)ln x − x/θ − ln Γ(k) − k ln θ.
func (g Gamma) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}

	return g.dist().LogProb(x)
}

// GradLogPdf returns (k−1)/x − 1/θ.
func (g Gamma) GradLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}

	return ratio(g.Shape-1, x) - 1/g.Scale
}

// HesLogPdf returns −(k−1)/x².
func (g Gamma) HesLogPdf(x float64) float64 {
	if outside(x, 0, math.Inf(1)) {
		return math.NaN()
	}

	return ratio(-(g.Shape - 1), x*x)
}

func (g Gamma) Pdf(x float64) float64      { return math.Exp(g.LogPdf(x)) }
func (g Gamma) CDF(x float64) float64      { return g.dist().CDF(x) }
func (g Gamma) Quantile(p float64) float64 { return g.dist().Quantile(p) }
func (g Gamma) Mean() float64              { return g.dist().Mean() }
func (g Gamma) StdDev() float64            { return g.dist().StdDev() }

// Mode returns (k−1)θ for k >= 1. For k < 1 the density diverges at 0 and
// ErrUnboundedDensity is returned.
func (g Gamma) Mode() (float64, error) {
	if g.Shape < 1 {
		return math.NaN(), invalidMode(FamilyGamma, "shape=%v < 1", g.Shape)
	}

	return g.dist().Mode(), nil
}

// Support returns [0, +Inf).
func (Gamma) Support() (lo, hi float64) { return 0, math.Inf(1) }
