package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// VarID indexes a variable inside its Model. IDs are dense, starting at 0,
// in insertion order.
type VarID int

// Variable is a decision variable with box bounds. Infinite bounds mean free.
type Variable struct {
	ID    VarID
	Name  string
	Lower float64
	Upper float64
}

// Term is Coef·x[Var].
type Term struct {
	Var  VarID
	Coef float64
}

// LinExpr is Σ Coef_i·x[Var_i] + Const. The zero value is the constant 0.
type LinExpr struct {
	Terms []Term
	Const float64
}

// Var returns the expression 1·x[v].
func Var(v VarID) LinExpr { return LinExpr{Terms: []Term{{Var: v, Coef: 1}}} }

// Constant returns the expression c.
func Constant(c float64) LinExpr { return LinExpr{Const: c} }

// Eval returns the value of e at vals, indexed by VarID.
func (e LinExpr) Eval(vals []float64) float64 {
	s := e.Const
	for _, t := range e.Terms {
		s += t.Coef * vals[t.Var]
	}

	return s
}

// Add returns e + o. Neither operand is modified.
func (e LinExpr) Add(o LinExpr) LinExpr {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)

	return LinExpr{Terms: terms, Const: e.Const + o.Const}
}

// Scale returns a·e.
func (e LinExpr) Scale(a float64) LinExpr {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Var: t.Var, Coef: a * t.Coef}
	}

	return LinExpr{Terms: terms, Const: a * e.Const}
}

// Vars returns the distinct variables of e in ascending order.
func (e LinExpr) Vars() []VarID {
	seen := make(map[VarID]struct{}, len(e.Terms))
	out := make([]VarID, 0, len(e.Terms))
	for _, t := range e.Terms {
		if _, ok := seen[t.Var]; ok {
			continue
		}
		seen[t.Var] = struct{}{}
		out = append(out, t.Var)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Coefficient returns the merged coefficient of v in e.
func (e LinExpr) Coefficient(v VarID) float64 {
	var c float64
	for _, t := range e.Terms {
		if t.Var == v {
			c += t.Coef
		}
	}

	return c
}

// validate rejects non-finite coefficients.
func (e LinExpr) validate() error {
	if !finite(e.Const) {
		return fmt.Errorf("%w: constant %v", ErrInvalidCoefficient, e.Const)
	}
	for _, t := range e.Terms {
		if !finite(t.Coef) {
			return fmt.Errorf("%w: coefficient %v on x%d", ErrInvalidCoefficient, t.Coef, t.Var)
		}
	}

	return nil
}

// Format renders e using name to print variables, e.g. "100*vm_bus_1 - 100".
func (e LinExpr) Format(name func(VarID) string) string {
	var b strings.Builder
	for i, t := range e.Terms {
		c := t.Coef
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			b.WriteString(" - ")
			c = -c
		case i > 0:
			b.WriteString(" + ")
		}
		if c != 1 {
			fmt.Fprintf(&b, "%g*", c)
		}
		b.WriteString(name(t.Var))
	}
	switch {
	case len(e.Terms) == 0:
		fmt.Fprintf(&b, "%g", e.Const)
	case e.Const > 0:
		fmt.Fprintf(&b, " + %g", e.Const)
	case e.Const < 0:
		fmt.Fprintf(&b, " - %g", -e.Const)
	}

	return b.String()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
