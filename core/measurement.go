package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/psse/distribution"
)

// DefaultWeight is the objective coefficient of a measurement whose Weight
// is left at zero.
const DefaultWeight = 1.0

// VariableRef points at the state-model variable x_m a measurement observes.
// The variable itself is owned by the external network-model builder; the
// engine only resolves it by Key.
type VariableRef struct {
	// Component is the network element kind, e.g. "bus", "gen", "load", "branch".
	Component string
	// ID identifies the element within its kind.
	ID string
	// Quantity is the measured quantity, e.g. "vm", "va", "pd", "qg", "cm".
	Quantity string
	// Phase is 1-based; 0 means a single-phase (positive-sequence) quantity.
	Phase int
}

// Key renders the canonical variable name used by the model registry:
// quantity_component_id[_phN], for example "vm_bus_3_ph1".
func (v VariableRef) Key() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{v.Quantity, v.Component, v.ID} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if v.Phase > 0 {
		parts = append(parts, "ph"+strconv.Itoa(v.Phase))
	}

	return strings.Join(parts, "_")
}

// String implements fmt.Stringer.
func (v VariableRef) String() string { return v.Key() }

// Validate requires a quantity and a non-negative phase.
func (v VariableRef) Validate() error {
	if v.Quantity == "" {
		return fmt.Errorf("%w: variable reference %q has no quantity", ErrInvalidParameter, v.Key())
	}
	if v.Phase < 0 {
		return fmt.Errorf("%w: variable reference %q has negative phase %d", ErrInvalidParameter, v.Key(), v.Phase)
	}

	return nil
}

// Measurement is one observed quantity: the variable it observes, the
// distribution of its error, and optional per-measurement overrides.
type Measurement struct {
	ID       string
	Variable VariableRef
	Dist     distribution.Distribution

	// Crit overrides the settings criterion; it is mandatory in mixed mode.
	Crit Criterion

	// Weight multiplies the residual in the objective. Zero means DefaultWeight.
	Weight float64

	// Rescaler overrides the settings rescaler when non-nil. A set override
	// must be finite and > 0; zero is an error, not "unset".
	Rescaler *float64
}

// RescalerOverride returns a per-measurement rescaler for Measurement.Rescaler.
func RescalerOverride(v float64) *float64 { return &v }

// EffectiveWeight returns Weight, or DefaultWeight when Weight is zero.
func (m Measurement) EffectiveWeight() float64 {
	if m.Weight == 0 {
		return DefaultWeight
	}

	return m.Weight
}

// Validate checks the measurement record in isolation.
//
// Errors:
//   - ErrEmptyMeasurementID for an empty ID.
//   - ErrNilDistribution for a missing distribution.
//   - ErrInvalidParameter for bad distribution parameters, a negative or
//     non-finite weight, a set rescaler that is not finite and > 0, or a bad
//     variable reference.
//   - ErrUnknownCriterion for a criterion outside the enumeration or "mixed".
func (m Measurement) Validate() error {
	if m.ID == "" {
		return ErrEmptyMeasurementID
	}
	if m.Dist == nil {
		return fmt.Errorf("measurement %q: %w", m.ID, ErrNilDistribution)
	}
	if err := m.Dist.Validate(); err != nil {
		return fmt.Errorf("measurement %q: %w", m.ID, err)
	}
	if err := m.Variable.Validate(); err != nil {
		return fmt.Errorf("measurement %q: %w", m.ID, err)
	}
	if m.Weight < 0 || math.IsNaN(m.Weight) || math.IsInf(m.Weight, 0) {
		return fmt.Errorf("measurement %q: %w: weight=%v", m.ID, ErrInvalidParameter, m.Weight)
	}
	if r := m.Rescaler; r != nil && (!(*r > 0) || math.IsInf(*r, 0)) {
		return fmt.Errorf("measurement %q: %w: rescaler=%v must be finite and > 0", m.ID, ErrInvalidParameter, *r)
	}
	if err := m.Crit.Validate(); err != nil {
		return fmt.Errorf("measurement %q: %w", m.ID, err)
	}
	if m.Crit == Mixed {
		return fmt.Errorf("measurement %q: %w: %q is a settings mode", m.ID, ErrUnknownCriterion, Mixed)
	}

	return nil
}
