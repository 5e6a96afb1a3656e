package distribution

import (
	"fmt"
	"math"
)

// Distribution is the capability set every supported family implements.
//
// Contract:
//   - LogPdf/GradLogPdf/HesLogPdf follow the support conventions in doc.go.
//   - Quantile expects p in [0,1] and panics otherwise (programmer error).
//   - Validate reports parameter problems as ErrInvalidParameter; every other
//     method assumes a valid receiver.
type Distribution interface {
	Family() Family
	Validate() error

	LogPdf(x float64) float64
	GradLogPdf(x float64) float64
	HesLogPdf(x float64) float64

	Pdf(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) float64
	Mean() float64
	StdDev() float64

	// Mode returns the maximiser of the density, or ErrUnboundedDensity.
	Mode() (float64, error)

	// Support returns the closed support [lo, hi]; bounds may be infinite.
	Support() (lo, hi float64)
}

// Compile-time conformance of every family.
var (
	_ Distribution = Normal{}
	_ Distribution = LogNormal{}
	_ Distribution = Exponential{}
	_ Distribution = Weibull{}
	_ Distribution = Gamma{}
	_ Distribution = Beta{}
	_ Distribution = ExtendedBeta{}
)

// Params is a flat parameter record used to build any family by name,
// typically from decoded input documents. Only the fields relevant to the
// chosen family are read.
type Params struct {
	Mu    float64 // Normal, LogNormal
	Sigma float64 // Normal, LogNormal
	Rate  float64 // Exponential
	Shape float64 // Weibull, Gamma
	Scale float64 // Weibull, Gamma
	Alpha float64 // Beta, ExtendedBeta
	Beta  float64 // Beta, ExtendedBeta
	Min   float64 // ExtendedBeta
	Max   float64 // ExtendedBeta
}

// New builds a validated distribution of family f from p.
//
// Errors:
//   - ErrUnsupportedDistribution when f is not enumerated.
//   - ErrInvalidParameter when p is out of domain for f.
func New(f Family, p Params) (Distribution, error) {
	switch f {
	case FamilyNormal:
		return NewNormal(p.Mu, p.Sigma)
	case FamilyLogNormal:
		return NewLogNormal(p.Mu, p.Sigma)
	case FamilyExponential:
		return NewExponential(p.Rate)
	case FamilyWeibull:
		return NewWeibull(p.Shape, p.Scale)
	case FamilyGamma:
		return NewGamma(p.Shape, p.Scale)
	case FamilyBeta:
		return NewBeta(p.Alpha, p.Beta)
	case FamilyExtendedBeta:
		return NewExtendedBeta(p.Alpha, p.Beta, p.Min, p.Max)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDistribution, f)
	}
}

// LogPdf evaluates log density of d at x through the adapter boundary.
func LogPdf(d Distribution, x float64) (float64, error) {
	if err := checkSupported(d); err != nil {
		return math.NaN(), err
	}

	return d.LogPdf(x), nil
}

// GradLogPdf evaluates d/dx log density of d at x through the adapter boundary.
func GradLogPdf(d Distribution, x float64) (float64, error) {
	if err := checkSupported(d); err != nil {
		return math.NaN(), err
	}

	return d.GradLogPdf(x), nil
}

// HesLogPdf evaluates d²/dx² log density of d at x through the adapter boundary.
func HesLogPdf(d Distribution, x float64) (float64, error) {
	if err := checkSupported(d); err != nil {
		return math.NaN(), err
	}

	return d.HesLogPdf(x), nil
}

// checkSupported rejects nil receivers and families outside the enumeration.
// Foreign implementations of Distribution are accepted only if they report a
// supported family.
func checkSupported(d Distribution) error {
	if d == nil {
		return fmt.Errorf("%w: nil distribution", ErrUnsupportedDistribution)
	}
	if !d.Family().Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedDistribution, d.Family())
	}

	return nil
}

// ---------- shared numeric helpers ----------

// positive reports whether v is finite and strictly positive.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// finite reports whether v is neither NaN nor ±Inf.
func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// invalidf wraps ErrInvalidParameter with family/parameter context.
func invalidf(f Family, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, f, fmt.Sprintf(format, args...))
}

// ratio returns num/den for den >= 0 with the boundary convention used by the
// derivative formulas: 0 when num == 0, ±Inf (sign of num) when den == 0.
func ratio(num, den float64) float64 {
	if num == 0 {
		return 0
	}
	if den == 0 {
		return math.Copysign(math.Inf(1), num)
	}

	return num / den
}

// outside reports whether x lies outside the closed interval [lo, hi].
func outside(x, lo, hi float64) bool {
	return math.IsNaN(x) || x < lo || x > hi
}

// invalidMode wraps ErrUnboundedDensity with family/parameter context.
func invalidMode(f Family, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrUnboundedDensity, f, fmt.Sprintf(format, args...))
}
