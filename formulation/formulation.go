package formulation

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/psse/core"
)

// Formulation names the solver formulation the residuals are emitted for.
type Formulation int

const (
	ACPolar Formulation = iota
	ACRectangular
	CurrentVoltage
	Linearized
	Conic
)

var formulationNames = [...]string{
	ACPolar:        "acp",
	ACRectangular:  "acr",
	CurrentVoltage: "ivr",
	Linearized:     "linear",
	Conic:          "conic",
}

// Formulations returns every formulation in declaration order.
func Formulations() []Formulation {
	return []Formulation{ACPolar, ACRectangular, CurrentVoltage, Linearized, Conic}
}

// ParseFormulation accepts the short names ("acp", "acr", "ivr", "linear",
// "conic"), case-insensitively.
func ParseFormulation(name string) (Formulation, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, s := range formulationNames {
		if s == n {
			return Formulation(f), nil
		}
	}

	return -1, fmt.Errorf("%w: %q", ErrUnknownFormulation, name)
}

func (f Formulation) String() string {
	if !f.valid() {
		return fmt.Sprintf("formulation(%d)", int(f))
	}

	return formulationNames[f]
}

func (f Formulation) valid() bool { return f >= 0 && int(f) < len(formulationNames) }

// Convex reports whether the formulation admits only convex constraints.
func (f Formulation) Convex() bool { return f == Linearized || f == Conic }

// Supports checks that c is a per-measurement criterion. Every formulation
// accepts every criterion; see Strict for the convex-only check.
//
// Errors: ErrUnknownFormulation, core.ErrUnknownCriterion.
func (f Formulation) Supports(c core.Criterion) error {
	if !f.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFormulation, int(f))
	}
	if !c.PerMeasurement() {
		return fmt.Errorf("%w: %q is not a per-measurement criterion", core.ErrUnknownCriterion, string(c))
	}

	return c.Validate()
}

// Strict is Supports plus the convexity check: Linearized and Conic take
// only the exact relaxations rwlav, rwls and gmm.
//
// Errors: as Supports, and ErrFormulationMismatch.
func (f Formulation) Strict(c core.Criterion) error {
	if err := f.Supports(c); err != nil {
		return err
	}
	if f.Convex() && !c.Relaxation() {
		return fmt.Errorf("%w: %s under %s", ErrFormulationMismatch, c, f)
	}

	return nil
}
