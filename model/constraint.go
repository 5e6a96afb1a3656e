package model

import (
	"fmt"
	"math"
	"sort"
)

// Kind tags the algebraic shape of a constraint, so a solver adapter can
// route it (LP row, SOC, NLP callback, ...).
type Kind int

const (
	KindLinear Kind = iota
	KindAbsEquality
	KindQuadEquality
	KindRotatedCone
	KindNonlinearEquality
)

var kindNames = [...]string{
	KindLinear:            "linear",
	KindAbsEquality:       "abs-equality",
	KindQuadEquality:      "quad-equality",
	KindRotatedCone:       "rotated-cone",
	KindNonlinearEquality: "nonlinear-equality",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// Sense is the relation of a linear expression to zero.
type Sense int

const (
	EQ Sense = iota // expr == 0
	GE              // expr >= 0
	LE              // expr <= 0
)

func (s Sense) String() string {
	switch s {
	case EQ:
		return "=="
	case GE:
		return ">="
	case LE:
		return "<="
	default:
		return fmt.Sprintf("sense(%d)", int(s))
	}
}

// Constraint is one emitted algebraic relation.
//
// Violation returns how far vals (indexed by VarID) is from satisfying the
// constraint: 0 when satisfied, +Inf when it cannot be evaluated.
type Constraint interface {
	Name() string
	Kind() Kind
	Vars() []VarID
	Violation(vals []float64) float64
}

var (
	_ Constraint = Linear{}
	_ Constraint = AbsEquality{}
	_ Constraint = QuadEquality{}
	_ Constraint = RotatedCone{}
	_ Constraint = NonlinearEquality{}
)

// Linear is Expr ⋈ 0 with ⋈ given by Sense.
type Linear struct {
	Label string
	Expr  LinExpr
	Sense Sense
}

func (c Linear) Name() string  { return c.Label }
func (c Linear) Kind() Kind    { return KindLinear }
func (c Linear) Vars() []VarID { return c.Expr.Vars() }

func (c Linear) Violation(vals []float64) float64 {
	v := c.Expr.Eval(vals)
	switch c.Sense {
	case GE:
		return math.Max(0, -v)
	case LE:
		return math.Max(0, v)
	default:
		return math.Abs(v)
	}
}

// AbsEquality is ρ = |Arg|. It is exact but not differentiable at Arg = 0.
type AbsEquality struct {
	Label    string
	Residual VarID
	Arg      LinExpr
}

func (c AbsEquality) Name() string  { return c.Label }
func (c AbsEquality) Kind() Kind    { return KindAbsEquality }
func (c AbsEquality) Vars() []VarID { return withResidual(c.Residual, c.Arg) }

func (c AbsEquality) Violation(vals []float64) float64 {
	return math.Abs(vals[c.Residual] - math.Abs(c.Arg.Eval(vals)))
}

// QuadEquality is ρ = Coef·Arg².
type QuadEquality struct {
	Label    string
	Residual VarID
	Arg      LinExpr
	Coef     float64
}

func (c QuadEquality) Name() string  { return c.Label }
func (c QuadEquality) Kind() Kind    { return KindQuadEquality }
func (c QuadEquality) Vars() []VarID { return withResidual(c.Residual, c.Arg) }

func (c QuadEquality) Violation(vals []float64) float64 {
	a := c.Arg.Eval(vals)

	return math.Abs(vals[c.Residual] - c.Coef*a*a)
}

// RotatedCone is Coef·ρ ≥ Arg², a rotated second-order cone with ρ ≥ 0.
type RotatedCone struct {
	Label    string
	Residual VarID
	Coef     float64
	Arg      LinExpr
}

func (c RotatedCone) Name() string  { return c.Label }
func (c RotatedCone) Kind() Kind    { return KindRotatedCone }
func (c RotatedCone) Vars() []VarID { return withResidual(c.Residual, c.Arg) }

func (c RotatedCone) Violation(vals []float64) float64 {
	a := c.Arg.Eval(vals)

	return math.Max(0, a*a-c.Coef*vals[c.Residual])
}

// Univariate is a scalar function with exact first and second derivatives,
// registered with a nonlinear solver as callbacks.
type Univariate struct {
	F    func(x float64) float64
	Grad func(x float64) float64
	Hess func(x float64) float64
}

// NonlinearEquality is ρ = Fn.F(x[Var]) for x[Var] in [Lower, Upper].
type NonlinearEquality struct {
	Label    string
	Residual VarID
	Var      VarID
	Fn       Univariate
	Lower    float64
	Upper    float64
}

func (c NonlinearEquality) Name() string { return c.Label }
func (c NonlinearEquality) Kind() Kind   { return KindNonlinearEquality }

func (c NonlinearEquality) Vars() []VarID {
	if c.Residual == c.Var {
		return []VarID{c.Var}
	}
	out := []VarID{c.Residual, c.Var}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (c NonlinearEquality) Violation(vals []float64) float64 {
	x := vals[c.Var]
	if x < c.Lower || x > c.Upper {
		return math.Inf(1)
	}
	f := c.Fn.F(x)
	if !finite(f) {
		return math.Inf(1)
	}

	return math.Abs(vals[c.Residual] - f)
}

// withResidual returns the sorted, distinct variables of arg plus r.
func withResidual(r VarID, arg LinExpr) []VarID {
	return arg.Add(Var(r)).Vars()
}

// checkConstraint validates the constraint's own data (not its variables).
func checkConstraint(c Constraint) error {
	switch v := c.(type) {
	case nil:
		return ErrNilConstraint
	case Linear:
		return v.Expr.validate()
	case AbsEquality:
		return v.Arg.validate()
	case QuadEquality:
		if !finite(v.Coef) {
			return fmt.Errorf("%w: quad coefficient %v", ErrInvalidCoefficient, v.Coef)
		}

		return v.Arg.validate()
	case RotatedCone:
		if !finite(v.Coef) {
			return fmt.Errorf("%w: cone coefficient %v", ErrInvalidCoefficient, v.Coef)
		}

		return v.Arg.validate()
	case NonlinearEquality:
		if v.Fn.F == nil || v.Fn.Grad == nil || v.Fn.Hess == nil {
			return fmt.Errorf("%w: %q has no function or derivatives", ErrNilConstraint, v.Label)
		}
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || v.Lower > v.Upper {
			return fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, v.Lower, v.Upper)
		}
	}

	return nil
}

// Describe renders c in a solver-neutral algebraic form, using name to
// print variables.
func Describe(c Constraint, name func(VarID) string) string {
	switch v := c.(type) {
	case Linear:
		return fmt.Sprintf("%s %s 0", v.Expr.Format(name), v.Sense)
	case AbsEquality:
		return fmt.Sprintf("%s = |%s|", name(v.Residual), v.Arg.Format(name))
	case QuadEquality:
		return fmt.Sprintf("%s = %g*(%s)^2", name(v.Residual), v.Coef, v.Arg.Format(name))
	case RotatedCone:
		return fmt.Sprintf("%g*%s >= (%s)^2", v.Coef, name(v.Residual), v.Arg.Format(name))
	case NonlinearEquality:
		return fmt.Sprintf("%s = f(%s), %s in [%g, %g]", name(v.Residual), name(v.Var), name(v.Var), v.Lower, v.Upper)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%s(%v)", c.Kind(), c.Vars())
	}
}
