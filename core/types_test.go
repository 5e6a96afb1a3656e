package core_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MeasurementSetSuite locks in the registry contract of MeasurementSet.
type MeasurementSetSuite struct {
	suite.Suite
	set *core.MeasurementSet
}

func (s *MeasurementSetSuite) SetupTest() {
	var err error
	s.set, err = core.NewMeasurementSet(
		normalMeasurement("m2", 1.0, 0.01),
		normalMeasurement("m1", 0.98, 0.02),
	)
	s.Require().NoError(err)
}

func (s *MeasurementSetSuite) TestAddGetRemove() {
	m3 := normalMeasurement("m3", 0, 1)
	s.Require().NoError(s.set.Add(m3))
	s.Equal(3, s.set.Len())

	got, err := s.set.Get("m3")
	s.Require().NoError(err)
	s.Equal(m3, got)

	s.Require().NoError(s.set.Remove("m3"))
	s.False(s.set.Has("m3"))
	s.ErrorIs(s.set.Remove("m3"), core.ErrMeasurementNotFound)

	_, err = s.set.Get("nope")
	s.ErrorIs(err, core.ErrMeasurementNotFound)
}

func (s *MeasurementSetSuite) TestDuplicateAndEmptyID() {
	s.ErrorIs(s.set.Add(normalMeasurement("m1", 0, 1)), core.ErrDuplicateMeasurement)
	s.ErrorIs(s.set.Add(normalMeasurement("", 0, 1)), core.ErrEmptyMeasurementID)
	s.Equal(2, s.set.Len())
}

func (s *MeasurementSetSuite) TestMeasurementsSortedByID() {
	s.Require().NoError(s.set.Add(normalMeasurement("a0", 0, 1)))
	s.Equal([]string{"a0", "m1", "m2"}, s.set.IDs())

	ms := s.set.Measurements()
	s.Len(ms, 3)
	s.Equal("a0", ms[0].ID)
}

func (s *MeasurementSetSuite) TestCloneIsIndependent() {
	c := s.set.Clone()
	s.Require().NoError(c.Remove("m1"))
	s.Equal(1, c.Len())
	s.Equal(2, s.set.Len())
}

func TestMeasurementSetSuite(t *testing.T) {
	suite.Run(t, new(MeasurementSetSuite))
}

// TestMeasurement_Validate covers every rejection path of Measurement.Validate.
func TestMeasurement_Validate(t *testing.T) {
	base := normalMeasurement("m", 1, 0.1)
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*core.Measurement)
		want   error
	}{
		{"empty id", func(m *core.Measurement) { m.ID = "" }, core.ErrEmptyMeasurementID},
		{"nil dist", func(m *core.Measurement) { m.Dist = nil }, core.ErrNilDistribution},
		{"nil dist is unsupported", func(m *core.Measurement) { m.Dist = nil }, distribution.ErrUnsupportedDistribution},
		{"zero sigma", func(m *core.Measurement) { m.Dist = distribution.Normal{Mu: 1} }, core.ErrInvalidParameter},
		{"negative weight", func(m *core.Measurement) { m.Weight = -1 }, core.ErrInvalidParameter},
		{"nan weight", func(m *core.Measurement) { m.Weight = math.NaN() }, core.ErrInvalidParameter},
		{"negative rescaler", func(m *core.Measurement) { m.Rescaler = core.RescalerOverride(-2) }, core.ErrInvalidParameter},
		{"zero rescaler", func(m *core.Measurement) { m.Rescaler = core.RescalerOverride(0) }, core.ErrInvalidParameter},
		{"inf rescaler", func(m *core.Measurement) { m.Rescaler = core.RescalerOverride(math.Inf(1)) }, core.ErrInvalidParameter},
		{"no quantity", func(m *core.Measurement) { m.Variable.Quantity = "" }, core.ErrInvalidParameter},
		{"unknown crit", func(m *core.Measurement) { m.Crit = "lsq" }, core.ErrUnknownCriterion},
		{"mixed crit", func(m *core.Measurement) { m.Crit = core.Mixed }, core.ErrUnknownCriterion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := base
			tc.mutate(&m)
			assert.ErrorIs(t, m.Validate(), tc.want)
		})
	}
}

func TestMeasurement_EffectiveWeight(t *testing.T) {
	m := normalMeasurement("m", 0, 1)
	assert.Equal(t, core.DefaultWeight, m.EffectiveWeight())
	m.Weight = 2.5
	assert.Equal(t, 2.5, m.EffectiveWeight())
}

func TestVariableRef_Key(t *testing.T) {
	assert.Equal(t, "vm_bus_3_ph1", core.VariableRef{Component: "bus", ID: "3", Quantity: "vm", Phase: 1}.Key())
	assert.Equal(t, "pd_load_7", core.VariableRef{Component: "load", ID: "7", Quantity: "pd"}.Key())
	assert.Equal(t, "x", core.VariableRef{Quantity: "x"}.String())
}

func TestParseCriterion(t *testing.T) {
	for _, c := range core.Criteria() {
		got, err := core.ParseCriterion(" " + string(c) + " ")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := core.ParseCriterion("RWLAV")
	require.NoError(t, err)
	assert.Equal(t, core.RWLAV, got)

	got, err = core.ParseCriterion("")
	require.NoError(t, err)
	assert.False(t, got.IsSet())

	_, err = core.ParseCriterion("huber")
	assert.ErrorIs(t, err, core.ErrUnknownCriterion)

	assert.False(t, core.Mixed.PerMeasurement())
	assert.True(t, core.MLE.PerMeasurement())
	assert.Equal(t, "unset", core.CriterionUnset.String())
}
