// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: Builder, the residual formulation entry point.
// Stages of Build:
//   1. resolve the criterion of every measurement;
//   2. plan every measurement against the model without writing to it;
//   3. emit all plans inside one model.Batch.
// Any error in stages 1-2 leaves the model untouched; stage 3 is atomic.

package formulation

import (
	"context"
	"fmt"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/criterion"
	"github.com/katalvlaran/psse/gmm"
	"github.com/katalvlaran/psse/model"
	"golang.org/x/sync/errgroup"
)

// Builder emits residual formulations for one solver formulation under one
// immutable set of settings. It holds no per-build state, so a Builder can
// be reused and shared across goroutines.
type Builder struct {
	form     Formulation
	settings core.Settings
	cfg      builderConfig
}

// NewBuilder validates f, s and the decomposition options.
//
// Errors: ErrUnknownFormulation, core.ErrUnknownCriterion,
// core.ErrInvalidParameter, core.ErrInvalidComponentCount, gmm.ErrInvalidOption.
func NewBuilder(f Formulation, s core.Settings, opts ...BuilderOption) (*Builder, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormulation, int(f))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)
	o := gmm.DefaultOptions()
	for _, opt := range cfg.decompose {
		opt(&o)
	}
	if err := o.Validate(s.NumberOfGaussian); err != nil {
		return nil, err
	}

	return &Builder{form: f, settings: s, cfg: cfg}, nil
}

// Formulation returns the solver formulation of b.
func (b *Builder) Formulation() Formulation { return b.form }

// Settings returns the settings of b.
func (b *Builder) Settings() core.Settings { return b.settings }

// Build emits the residuals of every measurement in set into m.
//
// The set is read once; measurements added to it while Build runs are not
// part of the result. The resolved criteria are reported in
// Result.Assignment; the measurements themselves are not modified. Every state variable must already be
// registered in m under its VariableRef.Key.
//
// Errors (the first one, wrapped with the measurement ID):
//   - ErrNilModel.
//   - criterion.ErrMissingCriterion, criterion.ErrCriterionFamilyMismatch,
//     core.ErrUnknownCriterion from resolution.
//   - ErrFormulationMismatch (WithStrictConvexity only), core.ErrInvalidParameter,
//     model.ErrUnboundVariable, distribution.ErrUnboundedDensity and gmm
//     errors from planning.
//   - model errors from emission (e.g. a residual already emitted into m).
//
// On error m is unchanged.
func (b *Builder) Build(m *model.Model, set *core.MeasurementSet) (*Result, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	var ms []core.Measurement
	if set != nil {
		ms = set.Measurements()
	}
	a, err := criterion.ResolveMeasurements(ms, b.settings)
	if err != nil {
		b.cfg.metrics.failed(stageResolve)

		return nil, err
	}

	plans, err := b.planAll(m, ms, a)
	if err != nil {
		b.cfg.metrics.failed(stagePlan)

		return nil, err
	}

	res := newResult(b.form, a, len(plans))
	err = m.Batch(func(bt *model.Batch) error {
		for _, p := range plans {
			e, err := p.emit(bt)
			if err != nil {
				return fmt.Errorf("measurement %q: %w", p.meas.ID, err)
			}
			res.add(e, p.weight)
		}

		return nil
	})
	if err != nil {
		b.cfg.metrics.failed(stageEmit)

		return nil, err
	}

	for _, id := range res.IDs() {
		e := res.Emitted[id]
		b.cfg.metrics.emitted(b.form, e)
		b.cfg.logger.Debug("residual emitted",
			"measurement", id,
			"criterion", e.Criterion.String(),
			"constraints", len(e.Constraints),
			"components", len(e.Components))
	}
	b.cfg.logger.Info("formulation built",
		"formulation", b.form.String(),
		"measurements", len(res.Emitted),
		"constraints", res.NumConstraints())

	return res, nil
}

// BuildMeasurement emits a single measurement under an explicit criterion,
// bypassing resolution. Calls for different measurements are independent
// and may run concurrently against the same model.
//
// Errors: as Build's planning and emission stages, unwrapped.
func (b *Builder) BuildMeasurement(m *model.Model, meas core.Measurement, crit core.Criterion) (*Emitted, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	p, err := b.plan(m, meas, crit)
	if err != nil {
		b.cfg.metrics.failed(stagePlan)

		return nil, err
	}

	var e *Emitted
	err = m.Batch(func(bt *model.Batch) error {
		e, err = p.emit(bt)

		return err
	})
	if err != nil {
		b.cfg.metrics.failed(stageEmit)

		return nil, err
	}
	b.cfg.metrics.emitted(b.form, e)
	b.cfg.logger.Debug("residual emitted",
		"measurement", meas.ID,
		"criterion", crit.String(),
		"constraints", len(e.Constraints))

	return e, nil
}

// planAll plans ms in order, up to parallelism at a time. The error
// reported is that of the lowest-indexed failing measurement: tasks start
// in index order and a failure only cancels tasks not yet started, so every
// lower-indexed task has run.
func (b *Builder) planAll(m *model.Model, ms []core.Measurement, a criterion.Assignment) ([]plan, error) {
	plans := make([]plan, len(ms))
	errs := make([]error, len(ms))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(b.cfg.parallelism)
	for i, meas := range ms {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			c, _ := a.Get(meas.ID)
			plans[i], errs[i] = b.plan(m, meas, c)

			return errs[i]
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("measurement %q: %w", ms[i].ID, err)
		}
	}

	return plans, nil
}
