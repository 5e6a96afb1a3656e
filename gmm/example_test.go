package gmm_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/psse/distribution"
	"github.com/katalvlaran/psse/gmm"
)

// ExampleDecompose splits a Weibull load forecast into four Gaussians.
func ExampleDecompose() {
	d := distribution.Weibull{Shape: 2, Scale: 1}

	mx, err := gmm.Decompose(d, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("components:", mx.Len())
	fmt.Println("weights sum to 1:", math.Abs(mx.TotalWeight()-1) < 1e-12)
	fmt.Println("ordered by mean:", mx.Components[0].Mean < mx.Components[3].Mean)

	// Output:
	// components: 4
	// weights sum to 1: true
	// ordered by mean: true
}
