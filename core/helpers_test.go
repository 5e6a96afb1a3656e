package core_test

import (
	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
)

// normalMeasurement builds a valid Normal measurement on vm_bus_<id>.
func normalMeasurement(id string, mu, sigma float64) core.Measurement {
	return core.Measurement{
		ID:       id,
		Variable: core.VariableRef{Component: "bus", ID: id, Quantity: "vm"},
		Dist:     distribution.Normal{Mu: mu, Sigma: sigma},
	}
}
