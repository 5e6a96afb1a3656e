package formulation

import (
	"sort"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/criterion"
	"github.com/katalvlaran/psse/gmm"
	"github.com/katalvlaran/psse/model"
)

// ComponentVar is one Gaussian component of a gmm measurement together with
// the variable x_n carrying its share of the state.
type ComponentVar struct {
	gmm.Component
	Var model.VarID
}

// Emitted is everything one measurement contributed to the model.
type Emitted struct {
	Measurement string
	Criterion   core.Criterion

	// State is x_m, the observed state variable. Residual is ρ_m.
	State    model.VarID
	Residual model.VarID

	// Rescaler is the effective rescaler used in every coefficient.
	Rescaler float64

	// Shift is rsc·logpdf(x*) for mle and 0 otherwise.
	Shift float64

	// Components is set for gmm only, ordered by mean.
	Components []ComponentVar

	Constraints []model.Constraint
}

// Result collects the artifacts of one Build.
type Result struct {
	Formulation Formulation
	Assignment  criterion.Assignment

	Residuals  map[string]model.VarID
	Components map[string][]ComponentVar
	Emitted    map[string]*Emitted

	// Objective is Σ weight_m·ρ_m over all measurements.
	Objective model.LinExpr
}

// IDs returns the measurement IDs of r in ascending order.
func (r *Result) IDs() []string {
	ids := make([]string, 0, len(r.Emitted))
	for id := range r.Emitted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// NumConstraints returns the number of constraints emitted across r.
func (r *Result) NumConstraints() int {
	var n int
	for _, e := range r.Emitted {
		n += len(e.Constraints)
	}

	return n
}

func newResult(f Formulation, a criterion.Assignment, n int) *Result {
	return &Result{
		Formulation: f,
		Assignment:  a,
		Residuals:   make(map[string]model.VarID, n),
		Components:  make(map[string][]ComponentVar),
		Emitted:     make(map[string]*Emitted, n),
	}
}

func (r *Result) add(e *Emitted, weight float64) {
	r.Emitted[e.Measurement] = e
	r.Residuals[e.Measurement] = e.Residual
	if len(e.Components) > 0 {
		r.Components[e.Measurement] = e.Components
	}
	r.Objective.Terms = append(r.Objective.Terms, model.Term{Var: e.Residual, Coef: weight})
}
