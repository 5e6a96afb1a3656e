package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the Gaussian family N(Mu, Sigma²). It is the only family the
// absolute-value and least-squares criteria accept.
type Normal struct {
	Mu    float64
	Sigma float64
}

// NewNormal returns a validated Normal.
func NewNormal(mu, sigma float64) (Normal, error) {
	n := Normal{Mu: mu, Sigma: sigma}

	return n, n.Validate()
}

func (n Normal) dist() distuv.Normal { return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma} }

// Family returns FamilyNormal.
func (Normal) Family() Family { return FamilyNormal }

// Validate requires a finite Mu and a finite Sigma > 0.
func (n Normal) Validate() error {
	if !finite(n.Mu) {
		return invalidf(FamilyNormal, "mu=%v must be finite", n.Mu)
	}
	if !positive(n.Sigma) {
		return invalidf(FamilyNormal, "sigma=%v must be > 0", n.Sigma)
	}

	return nil
}

// LogPdf returns −½ln(2π) − ln σ − (x−μ)²/(2σ²).
func (n Normal) LogPdf(x float64) float64 { return n.dist().LogProb(x) }

// GradLogPdf returns −(x−μ)/σ².
func (n Normal) GradLogPdf(x float64) float64 { return n.dist().ScoreInput(x) }

// HesLogPdf returns −1/σ², constant over the real line.
func (n Normal) HesLogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}

	return -1 / (n.Sigma * n.Sigma)
}

func (n Normal) Pdf(x float64) float64      { return n.dist().Prob(x) }
func (n Normal) CDF(x float64) float64      { return n.dist().CDF(x) }
func (n Normal) Quantile(p float64) float64 { return n.dist().Quantile(p) }
func (n Normal) Mean() float64              { return n.Mu }
func (n Normal) StdDev() float64            { return n.Sigma }

// Mode returns Mu.
func (n Normal) Mode() (float64, error) { return n.Mu, nil }

// Support returns (−Inf, +Inf).
func (Normal) Support() (lo, hi float64) { return math.Inf(-1), math.Inf(1) }
