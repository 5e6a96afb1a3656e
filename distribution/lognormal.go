package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// LogNormal is the distribution of exp(Y) with Y ~ N(Mu, Sigma²).
// Mu and Sigma are the parameters of the underlying normal, not the moments.
type LogNormal struct {
	Mu    float64
	Sigma float64
}

// NewLogNormal returns a validated LogNormal.
func NewLogNormal(mu, sigma float64) (LogNormal, error) {
	l := LogNormal{Mu: mu, Sigma: sigma}

	return l, l.Validate()
}

func (l LogNormal) dist() distuv.LogNormal { return distuv.LogNormal{Mu: l.Mu, Sigma: l.Sigma} }

// Family returns FamilyLogNormal.
func (LogNormal) Family() Family { return FamilyLogNormal }

// Validate requires a finite Mu and a finite Sigma > 0.
func (l LogNormal) Validate() error {
	if !finite(l.Mu) {
		return invalidf(FamilyLogNormal, "mu=%v must be finite", l.Mu)
	}
	if !positive(l.Sigma) {
		return invalidf(FamilyLogNormal, "sigma=%v must be > 0", l.Sigma)
	}

	return nil
}

// LogPdf returns −ln x − ln σ − ½ln(2π) − (ln x − μ)²/(2σ²) for x > 0.
// The density vanishes at 0, so x <= 0 yields −Inf.
func (l LogNormal) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x <= 0 {
		return math.Inf(-1)
	}

	return l.dist().LogProb(x)
}

// GradLogPdf returns −(1 + (ln x − μ)/σ²)/x for x > 0.
func (l LogNormal) GradLogPdf(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		return math.NaN()
	}
	s2 := l.Sigma * l.Sigma

	return -(1 + (math.Log(x)-l.Mu)/s2) / x
}

// HesLogPdf returns (1 + (ln x − μ − 1)/σ²)/x² for x > 0.
func (l LogNormal) HesLogPdf(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		return math.NaN()
	}
	s2 := l.Sigma * l.Sigma

	return (1 + (math.Log(x)-l.Mu-1)/s2) / (x * x)
}

func (l LogNormal) Pdf(x float64) float64 { return math.Exp(l.LogPdf(x)) }

func (l LogNormal) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}

	return l.dist().CDF(x)
}

func (l LogNormal) Quantile(p float64) float64 { return l.dist().Quantile(p) }
func (l LogNormal) Mean() float64              { return l.dist().Mean() }
func (l LogNormal) StdDev() float64            { return l.dist().StdDev() }

// Mode returns exp(μ − σ²).
func (l LogNormal) Mode() (float64, error) { return l.dist().Mode(), nil }

// Support returns [0, +Inf).
func (LogNormal) Support() (lo, hi float64) { return 0, math.Inf(1) }
