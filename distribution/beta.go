package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Beta has density x^(α−1)(1−x)^(β−1)/B(α,β) on [0,1].
type Beta struct {
	Alpha float64
	Beta  float64
}

// NewBeta returns a validated Beta.
func NewBeta(alpha, beta float64) (Beta, error) {
	b := Beta{Alpha: alpha, Beta: beta}

	return b, b.Validate()
}

func (b Beta) dist() distuv.Beta { return distuv.Beta{Alpha: b.Alpha, Beta: b.Beta} }

// Family returns FamilyBeta.
func (Beta) Family() Family { return FamilyBeta }

// Validate requires finite Alpha > 0 and Beta > 0.
func (b Beta) Validate() error { return validateBetaShape(FamilyBeta, b.Alpha, b.Beta) }

// LogPdf returns (α−1)ln x + (β−1)ln(1−x) − ln B(α,β).
func (b Beta) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}

	return b.dist().LogProb(x)
}

// GradLogPdf returns (α−1)/x − (β−1)/(1−x).
func (b Beta) GradLogPdf(x float64) float64 {
	if outside(x, 0, 1) {
		return math.NaN()
	}

	return ratio(b.Alpha-1, x) - ratio(b.Beta-1, 1-x)
}

// HesLogPdf returns −(α−1)/x² − (β−1)/(1−x)².
func (b Beta) HesLogPdf(x float64) float64 {
	if outside(x, 0, 1) {
		return math.NaN()
	}

	return ratio(-(b.Alpha-1), x*x) + ratio(-(b.Beta-1), (1-x)*(1-x))
}

func (b Beta) Pdf(x float64) float64 {
	if outside(x, 0, 1) {
		return 0
	}

	return math.Exp(b.LogPdf(x))
}

func (b Beta) CDF(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}

	return b.dist().CDF(x)
}

func (b Beta) Quantile(p float64) float64 { return b.dist().Quantile(p) }
func (b Beta) Mean() float64              { return b.dist().Mean() }
func (b Beta) StdDev() float64            { return b.dist().StdDev() }

// Mode returns (α−1)/(α+β−2) for α, β > 1, the boundary point with finite
// density when one shape equals 1, and 0.5 for the uniform case.
func (b Beta) Mode() (float64, error) { return betaMode(FamilyBeta, b.Alpha, b.Beta) }

// Support returns [0, 1].
func (Beta) Support() (lo, hi float64) { return 0, 1 }

// ExtendedBeta is a Beta(Alpha, Beta) stretched onto [Min, Max]:
//
//	pdf(x) = Beta.pdf((x−Min)/(Max−Min)) / (Max−Min)
//
// It is the usual shape for bounded pseudo-measurements such as load
// forecasts with hard physical limits.
type ExtendedBeta struct {
	Alpha float64
	Beta  float64
	Min   float64
	Max   float64
}

// NewExtendedBeta returns a validated ExtendedBeta.
func NewExtendedBeta(alpha, beta, lo, hi float64) (ExtendedBeta, error) {
	e := ExtendedBeta{Alpha: alpha, Beta: beta, Min: lo, Max: hi}

	return e, e.Validate()
}

func (e ExtendedBeta) std() Beta      { return Beta{Alpha: e.Alpha, Beta: e.Beta} }
func (e ExtendedBeta) width() float64 { return e.Max - e.Min }

// unit maps x onto the standard [0,1] support.
func (e ExtendedBeta) unit(x float64) float64 { return (x - e.Min) / e.width() }

// Family returns FamilyExtendedBeta.
func (ExtendedBeta) Family() Family { return FamilyExtendedBeta }

// Validate requires valid shapes and finite Min < Max.
func (e ExtendedBeta) Validate() error {
	if err := validateBetaShape(FamilyExtendedBeta, e.Alpha, e.Beta); err != nil {
		return err
	}
	if !finite(e.Min) || !finite(e.Max) || e.Min >= e.Max {
		return invalidf(FamilyExtendedBeta, "support [%v,%v] must be finite with min < max", e.Min, e.Max)
	}

	return nil
}

// LogPdf returns Beta.LogPdf(t) − ln(Max−Min) with t the unit coordinate.
func (e ExtendedBeta) LogPdf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if outside(x, e.Min, e.Max) {
		return math.Inf(-1)
	}

	return e.std().LogPdf(e.unit(x)) - math.Log(e.width())
}

// GradLogPdf returns Beta.GradLogPdf(t)/(Max−Min).
func (e ExtendedBeta) GradLogPdf(x float64) float64 {
	if outside(x, e.Min, e.Max) {
		return math.NaN()
	}

	return e.std().GradLogPdf(e.unit(x)) / e.width()
}

// HesLogPdf returns Beta.HesLogPdf(t)/(Max−Min)².
func (e ExtendedBeta) HesLogPdf(x float64) float64 {
	if outside(x, e.Min, e.Max) {
		return math.NaN()
	}
	w := e.width()

	return e.std().HesLogPdf(e.unit(x)) / (w * w)
}

func (e ExtendedBeta) Pdf(x float64) float64 {
	if outside(x, e.Min, e.Max) {
		return 0
	}

	return math.Exp(e.LogPdf(x))
}

func (e ExtendedBeta) CDF(x float64) float64 { return e.std().CDF(e.unit(x)) }

func (e ExtendedBeta) Quantile(p float64) float64 {
	return e.Min + e.width()*e.std().Quantile(p)
}

func (e ExtendedBeta) Mean() float64   { return e.Min + e.width()*e.std().Mean() }
func (e ExtendedBeta) StdDev() float64 { return e.width() * e.std().StdDev() }

// Mode maps the standard Beta mode onto [Min, Max].
func (e ExtendedBeta) Mode() (float64, error) {
	t, err := betaMode(FamilyExtendedBeta, e.Alpha, e.Beta)
	if err != nil {
		return math.NaN(), err
	}

	return e.Min + e.width()*t, nil
}

// Support returns [Min, Max].
func (e ExtendedBeta) Support() (lo, hi float64) { return e.Min, e.Max }

// validateBetaShape is shared by Beta and ExtendedBeta.
func validateBetaShape(f Family, alpha, beta float64) error {
	if !positive(alpha) {
		return invalidf(f, "alpha=%v must be > 0", alpha)
	}
	if !positive(beta) {
		return invalidf(f, "beta=%v must be > 0", beta)
	}

	return nil
}

// betaMode returns the mode on [0,1] or ErrUnboundedDensity when a shape
// parameter below 1 sends the density to +Inf at a boundary.
func betaMode(f Family, alpha, beta float64) (float64, error) {
	switch {
	case alpha < 1 || beta < 1:
		return math.NaN(), invalidMode(f, "alpha=%v, beta=%v (a shape below 1)", alpha, beta)
	case alpha == 1 && beta == 1:
		return 0.5, nil
	case alpha == 1:
		return 0, nil
	case beta == 1:
		return 1, nil
	}

	return (alpha - 1) / (alpha + beta - 2), nil
}
