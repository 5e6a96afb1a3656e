package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/psse/model"
)

// writeLinearBlock prints the linear rows of m as a dense system A·x ⋈ b,
// one line per row: "name: [a_0 … a_n] sense b". Constraints of the other
// kinds are counted but not expanded.
func writeLinearBlock(w io.Writer, m *model.Model) error {
	vars := m.Variables()
	a, rhs, senses, names, err := m.LinearBlock()
	if errors.Is(err, model.ErrEmptyLinearBlock) {
		_, err = fmt.Fprintf(w, "no linear constraints, %d nonlinear\n", m.NumConstraints())

		return err
	}
	if err != nil {
		return err
	}

	rows, cols := a.Shape()
	if _, err = fmt.Fprintf(w, "linear block %dx%d, %d nonlinear constraints\ncolumns:", rows, cols, m.NumConstraints()-rows); err != nil {
		return err
	}
	for _, v := range vars {
		if _, err = fmt.Fprintf(w, " %s", v.Name); err != nil {
			return err
		}
	}
	if _, err = fmt.Fprintln(w); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		row, err := a.Row(i)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "%s: %g %s %g\n", names[i], row, senses[i], rhs[i]); err != nil {
			return err
		}
	}

	return nil
}
