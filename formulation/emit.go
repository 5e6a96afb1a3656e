package formulation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/model"
	"github.com/katalvlaran/psse/rescale"
)

// ResidualName is the model name of ρ_m.
func ResidualName(id string) string { return "rho_" + id }

// ComponentName is the model name of x_n, the n-th mixture component of
// measurement id.
func ComponentName(id string, n int) string { return fmt.Sprintf("gmm_%s_%d", id, n) }

// emit writes the planned residual into b.
func (p plan) emit(b *model.Batch) (*Emitted, error) {
	id := p.meas.ID
	rho, err := b.AddVariable(ResidualName(id), 0, math.Inf(1))
	if err != nil {
		return nil, err
	}
	e := &Emitted{
		Measurement: id,
		Criterion:   p.crit,
		State:       p.state,
		Residual:    rho,
		Rescaler:    p.rsc,
	}

	switch p.crit {
	case core.WLAV:
		e.Constraints = []model.Constraint{
			model.AbsEquality{Label: id + "/abs", Residual: rho, Arg: p.scaledDeviation()},
		}
	case core.RWLAV:
		e.Constraints = twoSided(id, rho, p.scaledDeviation())
	case core.WLS:
		e.Constraints = []model.Constraint{
			model.QuadEquality{Label: id + "/quad", Residual: rho, Arg: p.deviation(), Coef: rescale.Apply(1, p.den)},
		}
	case core.RWLS:
		e.Constraints = []model.Constraint{
			model.RotatedCone{Label: id + "/cone", Residual: rho, Coef: p.den, Arg: p.deviation()},
		}
	case core.GMM:
		if err = p.emitMixture(b, e); err != nil {
			return nil, err
		}
	case core.MLE:
		e.Shift = p.shift
		e.Constraints = []model.Constraint{p.likelihood(rho)}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownCriterion, string(p.crit))
	}

	for _, c := range e.Constraints {
		if err = b.AddConstraint(c); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// deviation is x_m − μ.
func (p plan) deviation() model.LinExpr {
	return model.Var(p.state).Add(model.Constant(-p.mu))
}

// scaledDeviation is (x_m − μ)/(rsc·σ).
func (p plan) scaledDeviation() model.LinExpr {
	return model.LinExpr{
		Terms: []model.Term{{Var: p.state, Coef: rescale.Apply(1, p.den)}},
		Const: rescale.Apply(-p.mu, p.den),
	}
}

// twoSided is ρ ≥ arg and ρ ≥ −arg.
func twoSided(id string, rho model.VarID, arg model.LinExpr) []model.Constraint {
	return []model.Constraint{
		model.Linear{Label: id + "/upper", Expr: model.Var(rho).Add(arg.Scale(-1)), Sense: model.GE},
		model.Linear{Label: id + "/lower", Expr: model.Var(rho).Add(arg), Sense: model.GE},
	}
}

// emitMixture adds one free variable per component, the linking equality
// x_m = Σ x_n and the rwlav pair over Σ (x_n − μ_n)/(rsc·w_n·σ_n).
func (p plan) emitMixture(b *model.Batch, e *Emitted) error {
	id := p.meas.ID
	link := model.Var(p.state)
	var sum model.LinExpr
	e.Components = make([]ComponentVar, len(p.mix.Components))
	for n, c := range p.mix.Components {
		xn, err := b.AddVariable(ComponentName(id, n), math.Inf(-1), math.Inf(1))
		if err != nil {
			return err
		}
		e.Components[n] = ComponentVar{Component: c, Var: xn}
		link = link.Add(model.LinExpr{Terms: []model.Term{{Var: xn, Coef: -1}}})
		sum.Terms = append(sum.Terms, model.Term{Var: xn, Coef: rescale.Apply(1, p.dens[n])})
		sum.Const += rescale.Apply(-c.Mean, p.dens[n])
	}

	e.Constraints = append(
		[]model.Constraint{model.Linear{Label: id + "/sum", Expr: link, Sense: model.EQ}},
		twoSided(id, e.Residual, sum)...,
	)

	return nil
}

// likelihood is ρ = rsc·(logpdf(x*) − logpdf(x)) on the support, with the
// exact first and second derivatives for the nonlinear solver.
func (p plan) likelihood(rho model.VarID) model.Constraint {
	d, rsc, shift := p.meas.Dist, p.rsc, p.shift
	lo, hi := d.Support()

	return model.NonlinearEquality{
		Label:    p.meas.ID + "/mle",
		Residual: rho,
		Var:      p.state,
		Fn: model.Univariate{
			F:    func(x float64) float64 { return shift - rsc*d.LogPdf(x) },
			Grad: func(x float64) float64 { return -rsc * d.GradLogPdf(x) },
			Hess: func(x float64) float64 { return -rsc * d.HesLogPdf(x) },
		},
		Lower: lo,
		Upper: hi,
	}
}
