package formulation_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/criterion"
	"github.com/katalvlaran/psse/formulation"
	"github.com/katalvlaran/psse/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRWLAV_Example: m1 ~ N(1.0, 0.01), rsc = 1. At x = 1.02 the binding
// constraint gives ρ = 2.0.
func TestRWLAV_Example(t *testing.T) {
	m := stateModel(t, "1")
	b := newBuilder(t, formulation.ACPolar, core.WithCriterion(core.RWLAV))

	res, err := b.Build(m, newSet(t, normalMeasurement("m1", "1", 1.0, 0.01)))
	require.NoError(t, err)

	e := res.Emitted["m1"]
	require.NotNil(t, e)
	require.Len(t, e.Constraints, 2)
	for _, c := range e.Constraints {
		l, ok := c.(model.Linear)
		require.True(t, ok)
		assert.Equal(t, model.GE, l.Sense)
	}
	assert.Equal(t, "m1/upper", e.Constraints[0].Name())
	assert.Equal(t, "m1/lower", e.Constraints[1].Name())

	rho := res.Residuals["m1"]
	v, err := m.Variable(rho)
	require.NoError(t, err)
	assert.Equal(t, formulation.ResidualName("m1"), v.Name)
	assert.Equal(t, 0.0, v.Lower)
	assert.True(t, math.IsInf(v.Upper, 1))

	viol, err := m.MaxViolation(point(m, map[model.VarID]float64{e.State: 1.02, rho: 2.0}))
	require.NoError(t, err)
	assert.InDelta(t, 0, viol, 1e-9)

	// Any smaller ρ breaks the upper constraint.
	viol, err = m.MaxViolation(point(m, map[model.VarID]float64{e.State: 1.02, rho: 1.999}))
	require.NoError(t, err)
	assert.InDelta(t, 0.001, viol, 1e-9)

	// Below μ the lower constraint binds.
	viol, err = m.MaxViolation(point(m, map[model.VarID]float64{e.State: 0.97, rho: 3.0}))
	require.NoError(t, err)
	assert.InDelta(t, 0, viol, 1e-9)
}

// TestNormalCriteria checks every Gaussian criterion at its exact residual
// value and just below it.
func TestNormalCriteria(t *testing.T) {
	const (
		mu, sigma, rsc = 1.0, 0.02, 2.0
		x              = 1.05
	)
	dev := x - mu
	abs := math.Abs(dev) / (rsc * sigma)
	sq := dev * dev / (rsc * sigma * sigma)

	tests := []struct {
		crit  core.Criterion
		kind  model.Kind
		n     int
		exact float64
	}{
		{core.WLAV, model.KindAbsEquality, 1, abs},
		{core.RWLAV, model.KindLinear, 2, abs},
		{core.WLS, model.KindQuadEquality, 1, sq},
		{core.RWLS, model.KindRotatedCone, 1, sq},
	}
	for _, tc := range tests {
		t.Run(tc.crit.String(), func(t *testing.T) {
			m := stateModel(t, "3")
			b := newBuilder(t, formulation.ACRectangular, core.WithCriterion(tc.crit), core.WithRescaler(rsc))

			res, err := b.Build(m, newSet(t, normalMeasurement("v3", "3", mu, sigma)))
			require.NoError(t, err)
			e := res.Emitted["v3"]
			require.Len(t, e.Constraints, tc.n)
			assert.Equal(t, tc.kind, e.Constraints[0].Kind())
			assert.Equal(t, rsc, e.Rescaler)

			viol, err := m.MaxViolation(point(m, map[model.VarID]float64{e.State: x, e.Residual: tc.exact}))
			require.NoError(t, err)
			assert.InDelta(t, 0, viol, 1e-9)

			viol, err = m.MaxViolation(point(m, map[model.VarID]float64{e.State: x, e.Residual: 0.9 * tc.exact}))
			require.NoError(t, err)
			assert.Greater(t, viol, 1e-6)
		})
	}
}

// TestRWLS_Tightness: at the exact residual rsc·σ²·ρ equals (x−μ)².
func TestRWLS_Tightness(t *testing.T) {
	m := stateModel(t, "1")
	b := newBuilder(t, formulation.Conic, core.WithCriterion(core.RWLS))

	res, err := b.Build(m, newSet(t, normalMeasurement("m", "1", 0.5, 0.1)))
	require.NoError(t, err)

	cone, ok := res.Emitted["m"].Constraints[0].(model.RotatedCone)
	require.True(t, ok)
	assert.InDelta(t, 0.01, cone.Coef, 1e-15)

	x := 0.8
	rho := (x - 0.5) * (x - 0.5) / cone.Coef
	a := cone.Arg.Eval(point(m, map[model.VarID]float64{res.Emitted["m"].State: x}))
	assert.InDelta(t, a*a, cone.Coef*rho, 1e-12)
}

func TestPerMeasurementRescaler(t *testing.T) {
	m := stateModel(t, "1")
	b := newBuilder(t, formulation.ACPolar, core.WithCriterion(core.RWLAV), core.WithRescaler(3))

	meas := normalMeasurement("m", "1", 0, 0.5)
	meas.Rescaler = core.RescalerOverride(10)
	res, err := b.Build(m, newSet(t, meas))
	require.NoError(t, err)

	e := res.Emitted["m"]
	assert.Equal(t, 10.0, e.Rescaler)
	upper := e.Constraints[0].(model.Linear)
	assert.InDelta(t, -1/(10*0.5), upper.Expr.Coefficient(e.State), 1e-15)


	// A set zero is rejected rather than falling back to the settings value.
	meas.ID = "z"
	meas.Rescaler = core.RescalerOverride(0)
	_, err = b.BuildMeasurement(m, meas, core.RWLAV)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	_, ok := m.Lookup(formulation.ResidualName("z"))
	assert.False(t, ok)
}

func TestObjective(t *testing.T) {
	m := stateModel(t, "1", "2")
	b := newBuilder(t, formulation.ACPolar)

	heavy := normalMeasurement("a", "1", 1, 0.1)
	heavy.Weight = 3
	res, err := b.Build(m, newSet(t, heavy, normalMeasurement("b", "2", 1, 0.1)))
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.Objective.Coefficient(res.Residuals["a"]))
	assert.Equal(t, 1.0, res.Objective.Coefficient(res.Residuals["b"]))
	assert.Equal(t, []string{"a", "b"}, res.IDs())
	assert.Equal(t, 4, res.NumConstraints())
	assert.Equal(t, 2, res.Assignment.Count(core.RWLAV))
}

// TestDefaultResolution: Normal defaults to rwlav and Weibull to mle.
func TestDefaultResolution(t *testing.T) {
	m := stateModel(t, "1", "2")
	b := newBuilder(t, formulation.ACPolar)

	res, err := b.Build(m, newSet(t,
		normalMeasurement("n", "1", 1, 0.1),
		weibullMeasurement("w", "2", 2, 1),
	))
	require.NoError(t, err)

	assert.Equal(t, core.RWLAV, res.Emitted["n"].Criterion)
	assert.Equal(t, core.MLE, res.Emitted["w"].Criterion)
	assert.Equal(t, model.KindNonlinearEquality, res.Emitted["w"].Constraints[0].Kind())
}

// TestMixedMissingCriterion: nothing is emitted when one measurement lacks crit.
func TestMixedMissingCriterion(t *testing.T) {
	m := stateModel(t, "1", "2")
	b := newBuilder(t, formulation.ACPolar, core.WithCriterion(core.Mixed))

	withCrit := normalMeasurement("a", "1", 1, 0.1)
	withCrit.Crit = core.WLS
	_, err := b.Build(m, newSet(t, withCrit, normalMeasurement("b", "2", 1, 0.1)))
	require.ErrorIs(t, err, criterion.ErrMissingCriterion)

	assert.Equal(t, 2, m.NumVariables())
	assert.Equal(t, 0, m.NumConstraints())
}

// TestUnboundVariable: a later failure must not leave earlier residuals behind.
func TestUnboundVariable(t *testing.T) {
	m := stateModel(t, "1")
	b := newBuilder(t, formulation.ACPolar)

	_, err := b.Build(m, newSet(t,
		normalMeasurement("a", "1", 1, 0.1),
		normalMeasurement("b", "404", 1, 0.1),
	))
	require.ErrorIs(t, err, model.ErrUnboundVariable)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Equal(t, 1, m.NumVariables())
	assert.Equal(t, 0, m.NumConstraints())
}

func TestConvexFormulationMismatch(t *testing.T) {
	for _, f := range []formulation.Formulation{formulation.Linearized, formulation.Conic} {
		for _, c := range []core.Criterion{core.WLAV, core.WLS, core.MLE} {
			t.Run(fmt.Sprintf("%s/%s", f, c), func(t *testing.T) {
				m := stateModel(t, "1")
				s, err := core.NewSettings(core.WithCriterion(c))
				require.NoError(t, err)
				b, err := formulation.NewBuilder(f, s, formulation.WithStrictConvexity())
				require.NoError(t, err)

				_, err = b.Build(m, newSet(t, normalMeasurement("a", "1", 1, 0.1)))
				require.ErrorIs(t, err, formulation.ErrFormulationMismatch)
				assert.Equal(t, 0, m.NumConstraints())

				// Without the option the same build succeeds.
				_, err = newBuilder(t, f, core.WithCriterion(c)).Build(m, newSet(t, normalMeasurement("a", "1", 1, 0.1)))
				require.NoError(t, err)
			})
		}
	}
}

// TestDefaultCriteriaEveryFormulation: Normal and Weibull measurements with
// default settings resolve to rwlav and mle and build under every
// formulation.
func TestDefaultCriteriaEveryFormulation(t *testing.T) {
	set := newSet(t,
		normalMeasurement("n", "1", 1, 0.01),
		weibullMeasurement("w", "2", 2, 1),
	)
	for _, f := range formulation.Formulations() {
		t.Run(f.String(), func(t *testing.T) {
			m := stateModel(t, "1", "2")
			res, err := newBuilder(t, f).Build(m, set)
			require.NoError(t, err)

			c, ok := res.Assignment.Get("n")
			require.True(t, ok)
			assert.Equal(t, core.RWLAV, c)
			c, ok = res.Assignment.Get("w")
			require.True(t, ok)
			assert.Equal(t, core.MLE, c)
			// rwlav: two linear rows; mle: one nonlinear equality.
			assert.Equal(t, 3, m.NumConstraints())
		})
	}
}

// TestReentrant: one builder per formulation, one measurement set, fresh
// models; nothing leaks between builds.
func TestReentrant(t *testing.T) {
	set := newSet(t,
		normalMeasurement("a", "1", 1, 0.1),
		normalMeasurement("b", "2", 0.9, 0.05),
	)
	var counts []int
	for _, f := range formulation.Formulations() {
		m := stateModel(t, "1", "2")
		b := newBuilder(t, f, core.WithCriterion(core.RWLAV))
		res, err := b.Build(m, set)
		require.NoError(t, err, f.String())
		assert.Equal(t, f, res.Formulation)
		counts = append(counts, m.NumConstraints())
	}
	for _, n := range counts {
		assert.Equal(t, 4, n)
	}
	assert.Equal(t, 2, set.Len())
}

// TestBuildTwiceIntoSameModel fails on the duplicate residual and keeps the
// first build intact.
func TestBuildTwiceIntoSameModel(t *testing.T) {
	m := stateModel(t, "1")
	b := newBuilder(t, formulation.ACPolar)
	set := newSet(t, normalMeasurement("a", "1", 1, 0.1))

	_, err := b.Build(m, set)
	require.NoError(t, err)
	_, err = b.Build(m, set)
	require.ErrorIs(t, err, model.ErrDuplicateVariable)
	assert.Equal(t, 2, m.NumVariables())
	assert.Equal(t, 2, m.NumConstraints())
}

func TestBuildEmptyAndNil(t *testing.T) {
	b := newBuilder(t, formulation.ACPolar)

	_, err := b.Build(nil, nil)
	require.ErrorIs(t, err, formulation.ErrNilModel)

	res, err := b.Build(model.NewModel(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Emitted)
	assert.Empty(t, res.Objective.Terms)
}

func TestNewBuilderValidation(t *testing.T) {
	s := core.DefaultSettings()

	_, err := formulation.NewBuilder(formulation.Formulation(42), s)
	require.ErrorIs(t, err, formulation.ErrUnknownFormulation)

	s.NumberOfGaussian = 0
	_, err = formulation.NewBuilder(formulation.ACPolar, s)
	require.ErrorIs(t, err, core.ErrInvalidComponentCount)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	s = core.DefaultSettings()
	s.Rescaler = -1
	_, err = formulation.NewBuilder(formulation.ACPolar, s)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	assert.Panics(t, func() { formulation.WithLogger(nil) })
}

func TestBuildMeasurement(t *testing.T) {
	b := newBuilder(t, formulation.ACPolar)

	t.Run("family mismatch", func(t *testing.T) {
		m := stateModel(t, "1")
		_, err := b.BuildMeasurement(m, weibullMeasurement("w", "1", 2, 1), core.RWLAV)
		require.ErrorIs(t, err, criterion.ErrCriterionFamilyMismatch)
	})
	t.Run("unknown criterion", func(t *testing.T) {
		m := stateModel(t, "1")
		_, err := b.BuildMeasurement(m, normalMeasurement("n", "1", 1, 0.1), core.Criterion("l1"))
		require.ErrorIs(t, err, core.ErrUnknownCriterion)
		_, err = b.BuildMeasurement(m, normalMeasurement("n", "1", 1, 0.1), core.Mixed)
		require.ErrorIs(t, err, core.ErrUnknownCriterion)
	})
	t.Run("invalid scale", func(t *testing.T) {
		m := stateModel(t, "1")
		_, err := b.BuildMeasurement(m, normalMeasurement("n", "1", 1, 0), core.RWLAV)
		require.ErrorIs(t, err, core.ErrInvalidParameter)
	})
	t.Run("nil model", func(t *testing.T) {
		_, err := b.BuildMeasurement(nil, normalMeasurement("n", "1", 1, 0.1), core.RWLAV)
		require.ErrorIs(t, err, formulation.ErrNilModel)
	})

	t.Run("concurrent", func(t *testing.T) {
		const n = 32
		buses := make([]string, n)
		for i := range buses {
			buses[i] = fmt.Sprint(i)
		}
		m := stateModel(t, buses...)

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				meas := normalMeasurement(fmt.Sprintf("m%d", i), buses[i], 1, 0.1)
				_, err := b.BuildMeasurement(m, meas, core.RWLAV)
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, 2*n, m.NumVariables())
		assert.Equal(t, 2*n, m.NumConstraints())
	})
}

func TestParseFormulation(t *testing.T) {
	for _, f := range formulation.Formulations() {
		got, err := formulation.ParseFormulation(" " + f.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := formulation.ParseFormulation("dc")
	require.ErrorIs(t, err, formulation.ErrUnknownFormulation)

	assert.True(t, formulation.Conic.Convex())
	assert.False(t, formulation.CurrentVoltage.Convex())
	assert.NoError(t, formulation.Linearized.Supports(core.WLS))
	assert.NoError(t, formulation.Linearized.Strict(core.GMM))
	assert.True(t, errors.Is(formulation.Linearized.Strict(core.WLS), formulation.ErrFormulationMismatch))
	assert.NoError(t, formulation.ACPolar.Strict(core.MLE))
	assert.ErrorIs(t, formulation.ACPolar.Supports(core.CriterionUnset), core.ErrUnknownCriterion)
	assert.Equal(t, "formulation(7)", formulation.Formulation(7).String())
}

// TestBuildSnapshot: measurements added while Build runs are either fully
// built or left out; resolution and planning see the same set.
func TestBuildSnapshot(t *testing.T) {
	set := newSet(t, normalMeasurement("a000", "1", 1, 0.1))
	b := newBuilder(t, formulation.ACPolar)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i < 200; i++ {
			assert.NoError(t, set.Add(normalMeasurement(fmt.Sprintf("a%03d", i), "1", 1, 0.1)))
		}
	}()
	for i := 0; i < 50; i++ {
		m := stateModel(t, "1")
		res, err := b.Build(m, set)
		require.NoError(t, err)
		assert.Equal(t, res.Assignment.Len(), len(res.Emitted))
		assert.Equal(t, 2*len(res.Emitted), m.NumConstraints())
	}
	wg.Wait()
}
