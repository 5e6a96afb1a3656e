package formulation

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/criterion"
	"github.com/katalvlaran/psse/distribution"
	"github.com/katalvlaran/psse/gmm"
	"github.com/katalvlaran/psse/model"
	"github.com/katalvlaran/psse/rescale"
)

// plan holds every number one measurement's emission needs. Planning reads
// the model but never writes it, so all checks and the mixture fit happen
// before anything is emitted.
type plan struct {
	meas   core.Measurement
	crit   core.Criterion
	state  model.VarID
	rsc    float64
	weight float64

	// wlav, rwlav, wls, rwls: location and rescaled denominator.
	mu  float64
	den float64

	// gmm: fitted components and their denominators rsc·w_n·σ_n.
	mix  gmm.Mixture
	dens []float64

	// mle: rsc·logpdf at the mode.
	shift float64
}

func (b *Builder) plan(m *model.Model, meas core.Measurement, crit core.Criterion) (plan, error) {
	if err := meas.Validate(); err != nil {
		return plan{}, err
	}
	check := b.form.Supports
	if b.cfg.strict {
		check = b.form.Strict
	}
	if err := check(crit); err != nil {
		return plan{}, err
	}
	if err := criterion.Compatible(crit, meas.Dist.Family()); err != nil {
		return plan{}, err
	}
	rsc, err := rescale.Resolve(meas.Rescaler, b.settings.Rescaler)
	if err != nil {
		return plan{}, err
	}
	key := meas.Variable.Key()
	state, ok := m.Lookup(key)
	if !ok {
		return plan{}, fmt.Errorf("%w: %q", model.ErrUnboundVariable, key)
	}

	p := plan{meas: meas, crit: crit, state: state, rsc: rsc, weight: meas.EffectiveWeight()}
	switch crit {
	case core.WLAV, core.RWLAV, core.WLS, core.RWLS:
		err = p.planNormal()
	case core.GMM:
		err = p.planMixture(b.settings.NumberOfGaussian, b.cfg.decompose, b.cfg.metrics)
	case core.MLE:
		err = p.planLikelihood()
	}
	if err != nil {
		return plan{}, err
	}

	return p, nil
}

func (p *plan) planNormal() error {
	n, ok := normalOf(p.meas.Dist)
	if !ok {
		return fmt.Errorf("%w: %s requires a normal distribution, got %s",
			criterion.ErrCriterionFamilyMismatch, p.crit, p.meas.Dist.Family())
	}
	factors := []float64{n.Sigma}
	if p.crit == core.WLS || p.crit == core.RWLS {
		factors = append(factors, n.Sigma)
	}
	den, err := rescale.Denominator(p.rsc, factors...)
	if err != nil {
		return err
	}
	p.mu, p.den = n.Mu, den

	return nil
}

func (p *plan) planMixture(k int, opts []gmm.Option, mt *Metrics) error {
	start := time.Now()
	mix, err := gmm.Decompose(p.meas.Dist, k, opts...)
	mt.decomposed(start)
	if err != nil {
		return err
	}
	dens := make([]float64, mix.Len())
	for i, c := range mix.Components {
		if dens[i], err = rescale.Denominator(p.rsc, c.Weight, c.Sigma); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
	}
	p.mix, p.dens = mix, dens

	return nil
}

func (p *plan) planLikelihood() error {
	d := p.meas.Dist
	mode, err := d.Mode()
	if err != nil {
		return err
	}
	l, err := distribution.LogPdf(d, mode)
	if err != nil {
		return err
	}
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return fmt.Errorf("%w: logpdf(%v)=%v at the mode", distribution.ErrUnboundedDensity, mode, l)
	}
	p.shift = p.rsc * l

	return nil
}

// normalOf accepts both value and pointer forms of distribution.Normal.
func normalOf(d distribution.Distribution) (distribution.Normal, bool) {
	switch n := d.(type) {
	case distribution.Normal:
		return n, true
	case *distribution.Normal:
		if n != nil {
			return *n, true
		}
	}

	return distribution.Normal{}, false
}
