package formulation_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
	"github.com/katalvlaran/psse/formulation"
	"github.com/katalvlaran/psse/gmm"
	"github.com/katalvlaran/psse/model"
	"github.com/stretchr/testify/require"
)

// busVM is the variable reference of a voltage magnitude on bus id.
func busVM(id string) core.VariableRef {
	return core.VariableRef{Component: "bus", ID: id, Quantity: "vm"}
}

func normalMeasurement(id, bus string, mu, sigma float64) core.Measurement {
	return core.Measurement{ID: id, Variable: busVM(bus), Dist: distribution.Normal{Mu: mu, Sigma: sigma}}
}

func weibullMeasurement(id, bus string, shape, scale float64) core.Measurement {
	return core.Measurement{ID: id, Variable: busVM(bus), Dist: distribution.Weibull{Shape: shape, Scale: scale}}
}

// stateModel registers one free state variable per bus.
func stateModel(t *testing.T, buses ...string) *model.Model {
	t.Helper()
	m := model.NewModel()
	for _, b := range buses {
		_, err := m.AddVariable(busVM(b).Key(), math.Inf(-1), math.Inf(1))
		require.NoError(t, err)
	}

	return m
}

func newSet(t *testing.T, ms ...core.Measurement) *core.MeasurementSet {
	t.Helper()
	set, err := core.NewMeasurementSet(ms...)
	require.NoError(t, err)

	return set
}

// newBuilder uses a coarse decomposition grid to keep gmm tests fast.
func newBuilder(t *testing.T, f formulation.Formulation, opts ...core.Option) *formulation.Builder {
	t.Helper()
	s, err := core.NewSettings(opts...)
	require.NoError(t, err)
	b, err := formulation.NewBuilder(f, s, formulation.WithDecomposeOptions(gmm.WithGridSize(400)))
	require.NoError(t, err)

	return b
}

// point returns a value vector for m with state and residual assigned and
// every other variable at 0.
func point(m *model.Model, assign map[model.VarID]float64) []float64 {
	vals := make([]float64, m.NumVariables())
	for id, v := range assign {
		vals[id] = v
	}

	return vals
}
