// SPDX-License-Identifier: MIT
//
// File: model.go
// Role: Model, the thread-safe registry of variables and constraints handed
// to an external solver-model builder, and Batch, its atomic writer.
// Concurrency:
//   - mu guards vars, byName and cons; mutations take the write lock.
//   - Batch holds the write lock for the whole callback so staged VarIDs
//     stay valid until commit.

package model

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/psse/matrix"
)

// Model is a solver-agnostic container for decision variables and
// constraints. Variables are identified by a unique name and a dense VarID.
type Model struct {
	mu     sync.RWMutex
	vars   []Variable
	byName map[string]VarID
	cons   []Constraint
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]VarID)}
}

// AddVariable registers a variable with bounds [lower, upper].
//
// Errors:
//   - ErrEmptyName, ErrDuplicateVariable, ErrInvalidBounds.
//
// Complexity: O(1) amortised.
func (m *Model) AddVariable(name string, lower, upper float64) (VarID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.addVariableLocked(name, lower, upper)
}

func (m *Model) addVariableLocked(name string, lower, upper float64) (VarID, error) {
	if err := checkVariable(name, lower, upper); err != nil {
		return -1, err
	}
	if m.byName == nil {
		m.byName = make(map[string]VarID)
	}
	if _, dup := m.byName[name]; dup {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Variable{ID: id, Name: name, Lower: lower, Upper: upper})
	m.byName[name] = id

	return id, nil
}

// Lookup resolves a variable name.
func (m *Model) Lookup(name string) (VarID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]

	return id, ok
}

// Variable returns the variable with the given ID or ErrUnboundVariable.
func (m *Model) Variable(id VarID) (Variable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 0 || int(id) >= len(m.vars) {
		return Variable{}, fmt.Errorf("%w: x%d", ErrUnboundVariable, id)
	}

	return m.vars[id], nil
}

// AddConstraint validates c against the registered variables and appends it.
//
// Errors:
//   - ErrNilConstraint, ErrInvalidCoefficient, ErrInvalidBounds from the
//     constraint's own data.
//   - ErrUnboundVariable if c references an unknown VarID.
func (m *Model) AddConstraint(c Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := checkConstraint(c); err != nil {
		return err
	}
	if err := checkBound(c, len(m.vars)); err != nil {
		return err
	}
	m.cons = append(m.cons, c)

	return nil
}

// Batch runs fn against a staging area and commits everything fn added only
// if fn returns nil. On error the model is left exactly as it was.
//
// fn must not call methods of m itself; it works through the *Batch.
func (m *Model) Batch(fn func(b *Batch) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := &Batch{m: m, names: make(map[string]VarID)}
	if err := fn(b); err != nil {
		return err
	}
	if m.byName == nil {
		m.byName = make(map[string]VarID)
	}
	for _, v := range b.vars {
		m.vars = append(m.vars, v)
		m.byName[v.Name] = v.ID
	}
	m.cons = append(m.cons, b.cons...)

	return nil
}

// Variables returns a copy of the variables in VarID order.
func (m *Model) Variables() []Variable {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Variable, len(m.vars))
	copy(out, m.vars)

	return out
}

// Constraints returns a copy of the constraints in insertion order.
func (m *Model) Constraints() []Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Constraint, len(m.cons))
	copy(out, m.cons)

	return out
}

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.vars)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.cons)
}

// MaxViolation returns the largest constraint or bound violation at vals,
// which must hold one value per variable in VarID order.
func (m *Model) MaxViolation(vals []float64) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(vals) != len(m.vars) {
		return math.NaN(), fmt.Errorf("%w: %d values for %d variables", ErrDimensionMismatch, len(vals), len(m.vars))
	}
	var worst float64
	for _, v := range m.vars {
		x := vals[v.ID]
		worst = math.Max(worst, math.Max(v.Lower-x, x-v.Upper))
	}
	for _, c := range m.cons {
		worst = math.Max(worst, c.Violation(vals))
	}

	return worst, nil
}

// LinearBlock exports the Linear constraints as a dense system A·x ⋈ b:
// one row per Linear constraint in insertion order, one column per variable.
// rhs[i] is −Const of row i; senses and names follow the rows.
//
// Errors: ErrEmptyLinearBlock when there are no linear constraints or no
// variables; matrix errors on non-finite coefficients.
func (m *Model) LinearBlock() (*matrix.Dense, []float64, []Sense, []string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []Linear
	for _, c := range m.cons {
		if l, ok := c.(Linear); ok {
			rows = append(rows, l)
		}
	}
	if len(rows) == 0 || len(m.vars) == 0 {
		return nil, nil, nil, nil, ErrEmptyLinearBlock
	}

	a, err := matrix.NewDense(len(rows), len(m.vars))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	rhs := make([]float64, len(rows))
	senses := make([]Sense, len(rows))
	names := make([]string, len(rows))
	for i, l := range rows {
		for _, v := range l.Expr.Vars() {
			if err = a.Set(i, int(v), l.Expr.Coefficient(v)); err != nil {
				return nil, nil, nil, nil, fmt.Errorf("row %q: %w", l.Label, err)
			}
		}
		rhs[i] = -l.Expr.Const
		senses[i] = l.Sense
		names[i] = l.Label
	}

	return a, rhs, senses, names, nil
}

// Batch stages variables and constraints for an atomic commit. Staged
// variables receive their final VarIDs immediately and can be referenced by
// staged constraints.
type Batch struct {
	m     *Model
	vars  []Variable
	names map[string]VarID
	cons  []Constraint
}

// AddVariable stages a variable. Errors as Model.AddVariable, checked
// against both committed and staged names.
func (b *Batch) AddVariable(name string, lower, upper float64) (VarID, error) {
	if err := checkVariable(name, lower, upper); err != nil {
		return -1, err
	}
	if _, ok := b.Lookup(name); ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	id := VarID(len(b.m.vars) + len(b.vars))
	b.vars = append(b.vars, Variable{ID: id, Name: name, Lower: lower, Upper: upper})
	b.names[name] = id

	return id, nil
}

// Lookup resolves a committed or staged variable name.
func (b *Batch) Lookup(name string) (VarID, bool) {
	if id, ok := b.m.byName[name]; ok {
		return id, true
	}
	id, ok := b.names[name]

	return id, ok
}

// AddConstraint stages c. Errors as Model.AddConstraint.
func (b *Batch) AddConstraint(c Constraint) error {
	if err := checkConstraint(c); err != nil {
		return err
	}
	if err := checkBound(c, len(b.m.vars)+len(b.vars)); err != nil {
		return err
	}
	b.cons = append(b.cons, c)

	return nil
}

func checkVariable(name string, lower, upper float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return fmt.Errorf("%w: %q [%v, %v]", ErrInvalidBounds, name, lower, upper)
	}

	return nil
}

// checkBound requires every variable of c to be in [0, n).
func checkBound(c Constraint, n int) error {
	for _, v := range c.Vars() {
		if v < 0 || int(v) >= n {
			return fmt.Errorf("%w: constraint %q references x%d", ErrUnboundVariable, c.Name(), v)
		}
	}

	return nil
}
