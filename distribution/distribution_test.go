package distribution_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/psse/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// fdStep is the central-difference step used to cross-check derivatives.
	fdStep = 1e-5

	// fdRelTol is the relative tolerance of the cross-check.
	fdRelTol = 1e-4
)

// probe is one (distribution, interior point) pair for derivative checks.
type probe struct {
	name string
	d    distribution.Distribution
	x    float64
}

func mustDist(t *testing.T, f distribution.Family, p distribution.Params) distribution.Distribution {
	t.Helper()
	d, err := distribution.New(f, p)
	require.NoError(t, err)

	return d
}

func interiorProbes(t *testing.T) []probe {
	return []probe{
		{"normal/left", mustDist(t, distribution.FamilyNormal, distribution.Params{Mu: 1, Sigma: 0.5}), 0.3},
		{"normal/right", mustDist(t, distribution.FamilyNormal, distribution.Params{Mu: 1, Sigma: 0.5}), 1.7},
		{"lognormal/low", mustDist(t, distribution.FamilyLogNormal, distribution.Params{Mu: 0, Sigma: 0.5}), 0.7},
		{"lognormal/high", mustDist(t, distribution.FamilyLogNormal, distribution.Params{Mu: 0, Sigma: 0.5}), 1.9},
		{"exponential", mustDist(t, distribution.FamilyExponential, distribution.Params{Rate: 2}), 0.4},
		{"weibull/k2", mustDist(t, distribution.FamilyWeibull, distribution.Params{Shape: 2, Scale: 1.5}), 0.5},
		{"weibull/k2-tail", mustDist(t, distribution.FamilyWeibull, distribution.Params{Shape: 2, Scale: 1.5}), 2.0},
		{"weibull/k0.7", mustDist(t, distribution.FamilyWeibull, distribution.Params{Shape: 0.7, Scale: 1}), 0.5},
		{"gamma/k3", mustDist(t, distribution.FamilyGamma, distribution.Params{Shape: 3, Scale: 0.5}), 0.8},
		{"gamma/k0.6", mustDist(t, distribution.FamilyGamma, distribution.Params{Shape: 0.6, Scale: 2}), 1.0},
		{"beta/left", mustDist(t, distribution.FamilyBeta, distribution.Params{Alpha: 2, Beta: 5}), 0.2},
		{"beta/right", mustDist(t, distribution.FamilyBeta, distribution.Params{Alpha: 2, Beta: 5}), 0.7},
		{"extendedbeta", mustDist(t, distribution.FamilyExtendedBeta, distribution.Params{Alpha: 2, Beta: 3, Min: -1, Max: 4}), 0.5},
	}
}

func relDelta(want float64) float64 { return fdRelTol * math.Max(1, math.Abs(want)) }

// TestGradLogPdf_MatchesFiniteDifference cross-checks the first derivative
// against a central difference of LogPdf.
func TestGradLogPdf_MatchesFiniteDifference(t *testing.T) {
	for _, p := range interiorProbes(t) {
		t.Run(p.name, func(t *testing.T) {
			want := (p.d.LogPdf(p.x+fdStep) - p.d.LogPdf(p.x-fdStep)) / (2 * fdStep)
			got, err := distribution.GradLogPdf(p.d, p.x)
			require.NoError(t, err)
			assert.InDelta(t, want, got, relDelta(want))
		})
	}
}

// TestHesLogPdf_MatchesFiniteDifference cross-checks the second derivative
// against a central difference of GradLogPdf.
func TestHesLogPdf_MatchesFiniteDifference(t *testing.T) {
	for _, p := range interiorProbes(t) {
		t.Run(p.name, func(t *testing.T) {
			want := (p.d.GradLogPdf(p.x+fdStep) - p.d.GradLogPdf(p.x-fdStep)) / (2 * fdStep)
			got, err := distribution.HesLogPdf(p.d, p.x)
			require.NoError(t, err)
			assert.InDelta(t, want, got, relDelta(want))
		})
	}
}

// TestPdf_ConsistentWithLogPdf verifies Pdf = exp(LogPdf) and that the
// density integrates to ~1 over a fine grid inside the support.
func TestPdf_ConsistentWithLogPdf(t *testing.T) {
	for _, p := range interiorProbes(t) {
		t.Run(p.name, func(t *testing.T) {
			assert.InDelta(t, math.Exp(p.d.LogPdf(p.x)), p.d.Pdf(p.x), 1e-12)

			lo, hi := p.d.Quantile(1e-6), p.d.Quantile(1-1e-6)
			const n = 200000
			h := (hi - lo) / n
			var mass float64
			for i := 0; i < n; i++ {
				mass += p.d.Pdf(lo+(float64(i)+0.5)*h) * h
			}
			assert.InDelta(t, 1.0, mass, 5e-3)
		})
	}
}

// TestMode_IsLocalMaximum checks that LogPdf at the mode dominates nearby points.
func TestMode_IsLocalMaximum(t *testing.T) {
	cases := []probe{
		{"normal", distribution.Normal{Mu: 2, Sigma: 0.1}, 2},
		{"lognormal", distribution.LogNormal{Mu: 0.2, Sigma: 0.4}, math.Exp(0.2 - 0.16)},
		{"weibull", distribution.Weibull{Shape: 3, Scale: 2}, 2 * math.Pow(2.0/3.0, 1.0/3.0)},
		{"gamma", distribution.Gamma{Shape: 4, Scale: 0.5}, 1.5},
		{"beta", distribution.Beta{Alpha: 3, Beta: 2}, 2.0 / 3.0},
		{"extendedbeta", distribution.ExtendedBeta{Alpha: 3, Beta: 2, Min: 10, Max: 13}, 12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mode, err := c.d.Mode()
			require.NoError(t, err)
			assert.InDelta(t, c.x, mode, 1e-12)

			peak := c.d.LogPdf(mode)
			for _, dx := range []float64{-1e-3, 1e-3} {
				assert.GreaterOrEqual(t, peak, c.d.LogPdf(mode+dx))
			}
			assert.InDelta(t, 0, c.d.GradLogPdf(mode), 1e-8)
		})
	}
}

// TestMode_BoundaryAndUnbounded covers modes at a support boundary and
// densities without a finite maximum.
func TestMode_BoundaryAndUnbounded(t *testing.T) {
	m, err := distribution.Exponential{Rate: 3}.Mode()
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)

	m, err = distribution.Weibull{Shape: 1, Scale: 2}.Mode()
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)
	assert.InDelta(t, -math.Log(2), distribution.Weibull{Shape: 1, Scale: 2}.LogPdf(0), 1e-15)

	m, err = distribution.Beta{Alpha: 1, Beta: 1}.Mode()
	require.NoError(t, err)
	assert.Equal(t, 0.5, m)

	m, err = distribution.Beta{Alpha: 1, Beta: 3}.Mode()
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)

	for _, d := range []distribution.Distribution{
		distribution.Weibull{Shape: 0.5, Scale: 1},
		distribution.Gamma{Shape: 0.9, Scale: 1},
		distribution.Beta{Alpha: 0.5, Beta: 2},
		distribution.ExtendedBeta{Alpha: 2, Beta: 0.5, Min: 0, Max: 1},
	} {
		_, err = d.Mode()
		assert.ErrorIs(t, err, distribution.ErrUnboundedDensity, d.Family().String())
	}
}

// TestSupportConventions checks −Inf/NaN outside the support and one-sided
// limits on the boundary.
func TestSupportConventions(t *testing.T) {
	g := distribution.Gamma{Shape: 1, Scale: 0.5}
	assert.True(t, math.IsInf(g.LogPdf(-1), -1))
	assert.True(t, math.IsNaN(g.GradLogPdf(-1)))
	assert.True(t, math.IsNaN(g.HesLogPdf(-1)))
	assert.Equal(t, -2.0, g.GradLogPdf(0))
	assert.Equal(t, 0.0, g.HesLogPdf(0))

	e := distribution.Exponential{Rate: 4}
	assert.Equal(t, -4.0, e.GradLogPdf(0))
	assert.True(t, math.IsNaN(e.GradLogPdf(-0.1)))

	b := distribution.Beta{Alpha: 3, Beta: 2}
	assert.True(t, math.IsInf(b.GradLogPdf(0), 1))
	assert.True(t, math.IsInf(b.LogPdf(1.5), -1))

	eb := distribution.ExtendedBeta{Alpha: 2, Beta: 2, Min: 1, Max: 3}
	assert.True(t, math.IsInf(eb.LogPdf(0.5), -1))
	assert.Equal(t, 0.0, eb.Pdf(3.5))
	lo, hi := eb.Support()
	assert.Equal(t, []float64{1, 3}, []float64{lo, hi})

	ln := distribution.LogNormal{Mu: 0, Sigma: 1}
	assert.True(t, math.IsInf(ln.LogPdf(0), -1))
	assert.True(t, math.IsNaN(ln.GradLogPdf(0)))
}

// TestQuantile_InvertsCDF checks Quantile∘CDF ≈ id for every family.
func TestQuantile_InvertsCDF(t *testing.T) {
	for _, p := range interiorProbes(t) {
		t.Run(p.name, func(t *testing.T) {
			for _, q := range []float64{0.05, 0.5, 0.95} {
				assert.InDelta(t, q, p.d.CDF(p.d.Quantile(q)), 1e-6)
			}
		})
	}
}

// TestNew_InvalidParameters verifies constructor validation.
func TestNew_InvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		f    distribution.Family
		p    distribution.Params
	}{
		{"normal/zero-sigma", distribution.FamilyNormal, distribution.Params{Mu: 1, Sigma: 0}},
		{"normal/nan-mu", distribution.FamilyNormal, distribution.Params{Mu: math.NaN(), Sigma: 1}},
		{"lognormal/negative-sigma", distribution.FamilyLogNormal, distribution.Params{Sigma: -1}},
		{"exponential/zero-rate", distribution.FamilyExponential, distribution.Params{}},
		{"weibull/inf-scale", distribution.FamilyWeibull, distribution.Params{Shape: 1, Scale: math.Inf(1)}},
		{"gamma/zero-shape", distribution.FamilyGamma, distribution.Params{Scale: 1}},
		{"beta/negative-beta", distribution.FamilyBeta, distribution.Params{Alpha: 1, Beta: -2}},
		{"extendedbeta/empty-support", distribution.FamilyExtendedBeta, distribution.Params{Alpha: 2, Beta: 2, Min: 3, Max: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := distribution.New(c.f, c.p)
			assert.ErrorIs(t, err, distribution.ErrInvalidParameter)
		})
	}
}

// foreign is a Distribution implementation reporting an unknown family.
type foreign struct{ distribution.Normal }

func (foreign) Family() distribution.Family { return distribution.Family(99) }

// TestAdapter_UnsupportedDistribution covers nil and foreign families.
func TestAdapter_UnsupportedDistribution(t *testing.T) {
	_, err := distribution.LogPdf(nil, 0)
	assert.ErrorIs(t, err, distribution.ErrUnsupportedDistribution)

	f := foreign{distribution.Normal{Mu: 0, Sigma: 1}}
	_, err = distribution.GradLogPdf(f, 0)
	assert.ErrorIs(t, err, distribution.ErrUnsupportedDistribution)
	_, err = distribution.HesLogPdf(f, 0)
	assert.ErrorIs(t, err, distribution.ErrUnsupportedDistribution)

	_, err = distribution.New(distribution.FamilyUnknown, distribution.Params{})
	assert.ErrorIs(t, err, distribution.ErrUnsupportedDistribution)
}

// TestParseFamily covers canonical names, aliases and rejects.
func TestParseFamily(t *testing.T) {
	cases := map[string]distribution.Family{
		"Normal":        distribution.FamilyNormal,
		"log-normal":    distribution.FamilyLogNormal,
		"LogNormal":     distribution.FamilyLogNormal,
		"exponential":   distribution.FamilyExponential,
		"WEIBULL":       distribution.FamilyWeibull,
		"gamma":         distribution.FamilyGamma,
		"beta":          distribution.FamilyBeta,
		"extended_beta": distribution.FamilyExtendedBeta,
		"Extended-Beta": distribution.FamilyExtendedBeta,
	}
	for in, want := range cases {
		got, err := distribution.ParseFamily(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Supported())
	}

	_, err := distribution.ParseFamily("cauchy")
	assert.ErrorIs(t, err, distribution.ErrUnsupportedDistribution)
	assert.Equal(t, "family(99)", distribution.Family(99).String())
	assert.True(t, distribution.FamilyNormal.Gaussian())
	assert.False(t, distribution.FamilyBeta.Gaussian())
}
