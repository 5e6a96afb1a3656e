package main

import (
	"fmt"
	"io"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/formulation"
	"github.com/katalvlaran/psse/model"
)

type buildSummary struct {
	Formulation      string               `json:"formulation"`
	Criterion        string               `json:"criterion"`
	Rescaler         float64              `json:"rescaler"`
	NumberOfGaussian int                  `json:"number_of_gaussian"`
	Variables        int                  `json:"variables"`
	Constraints      int                  `json:"constraints"`
	Objective        string               `json:"objective"`
	Measurements     []measurementSummary `json:"measurements"`
}

type measurementSummary struct {
	ID          string   `json:"id"`
	Criterion   string   `json:"criterion"`
	State       string   `json:"state"`
	Residual    string   `json:"residual"`
	Rescaler    float64  `json:"rescaler"`
	Shift       float64  `json:"shift,omitempty"`
	Components  int      `json:"components,omitempty"`
	Constraints []string `json:"constraints"`
}

func summarise(m *model.Model, res *formulation.Result, s core.Settings) buildSummary {
	vars := m.Variables()
	name := func(v model.VarID) string { return vars[v].Name }

	out := buildSummary{
		Formulation:      res.Formulation.String(),
		Criterion:        s.Criterion.String(),
		Rescaler:         s.Rescaler,
		NumberOfGaussian: s.NumberOfGaussian,
		Variables:        m.NumVariables(),
		Constraints:      m.NumConstraints(),
		Objective:        res.Objective.Format(name),
	}
	for _, id := range res.IDs() {
		e := res.Emitted[id]
		ms := measurementSummary{
			ID:         id,
			Criterion:  e.Criterion.String(),
			State:      name(e.State),
			Residual:   name(e.Residual),
			Rescaler:   e.Rescaler,
			Shift:      e.Shift,
			Components: len(e.Components),
		}
		for _, c := range e.Constraints {
			ms.Constraints = append(ms.Constraints, fmt.Sprintf("%s: %s", c.Name(), model.Describe(c, name)))
		}
		out.Measurements = append(out.Measurements, ms)
	}

	return out
}

func (s buildSummary) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "formulation %s, criterion %s, rescaler %g, %d variables, %d constraints\n",
		s.Formulation, s.Criterion, s.Rescaler, s.Variables, s.Constraints)
	if err != nil {
		return err
	}
	for _, m := range s.Measurements {
		if _, err = fmt.Fprintf(w, "\n%s [%s] %s -> %s\n", m.ID, m.Criterion, m.State, m.Residual); err != nil {
			return err
		}
		for _, c := range m.Constraints {
			if _, err = fmt.Fprintf(w, "  %s\n", c); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintf(w, "\nminimise %s\n", s.Objective)

	return err
}
