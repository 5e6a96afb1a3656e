package core_test

import (
	"fmt"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
)

// ExampleMeasurementSet demonstrates building a set and reading it back in
// deterministic order.
func ExampleMeasurementSet() {
	set, err := core.NewMeasurementSet(
		core.Measurement{
			ID:       "pd_7",
			Variable: core.VariableRef{Component: "load", ID: "7", Quantity: "pd"},
			Dist:     distribution.Weibull{Shape: 2, Scale: 0.4},
		},
		core.Measurement{
			ID:       "vm_3",
			Variable: core.VariableRef{Component: "bus", ID: "3", Quantity: "vm", Phase: 1},
			Dist:     distribution.Normal{Mu: 1.0, Sigma: 0.01},
			Crit:     core.WLS,
		},
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, m := range set.Measurements() {
		fmt.Println(m.ID, m.Variable.Key(), m.Dist.Family(), m.Crit)
	}

	// Output:
	// pd_7 pd_load_7 weibull unset
	// vm_3 vm_bus_3_ph1 normal wls
}
