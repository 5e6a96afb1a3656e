package converters

import (
	"fmt"
	"io"

	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/distribution"
)

// Apply overlays the fields present in d onto base and validates the result.
// A nil receiver returns base unchanged (after validation).
//
// Errors: core.ErrUnknownCriterion, core.ErrInvalidParameter,
// core.ErrInvalidComponentCount.
func (d *SettingsDoc) Apply(base core.Settings) (core.Settings, error) {
	s := base
	if d != nil {
		c, err := core.ParseCriterion(d.Criterion)
		if err != nil {
			return core.Settings{}, fmt.Errorf("settings: %w", err)
		}
		if c.IsSet() {
			s.Criterion = c
		}
		if d.Rescaler != nil {
			s.Rescaler = *d.Rescaler
		}
		if d.NumberOfGaussian != nil {
			s.NumberOfGaussian = *d.NumberOfGaussian
		}
	}
	if err := s.Validate(); err != nil {
		return core.Settings{}, fmt.Errorf("settings: %w", err)
	}

	return s, nil
}

// Settings converts d over core.DefaultSettings.
func (d *SettingsDoc) Settings() (core.Settings, error) {
	return d.Apply(core.DefaultSettings())
}

// FromSettings renders s as a document with every field present.
func FromSettings(s core.Settings) SettingsDoc {
	rsc, k := s.Rescaler, s.NumberOfGaussian

	return SettingsDoc{Criterion: string(s.Criterion), Rescaler: &rsc, NumberOfGaussian: &k}
}

// Measurement converts d into a validated core.Measurement.
//
// Errors: distribution.ErrUnsupportedDistribution for an unknown family,
// core.ErrInvalidParameter for bad parameters, core.ErrUnknownCriterion.
func (d MeasurementDoc) Measurement() (core.Measurement, error) {
	f, err := distribution.ParseFamily(d.Distribution)
	if err != nil {
		return core.Measurement{}, fmt.Errorf("measurement %q: %w", d.ID, err)
	}
	dist, err := distribution.New(f, distribution.Params(d.Params))
	if err != nil {
		return core.Measurement{}, fmt.Errorf("measurement %q: %w", d.ID, err)
	}
	c, err := core.ParseCriterion(d.Crit)
	if err != nil {
		return core.Measurement{}, fmt.Errorf("measurement %q: %w", d.ID, err)
	}
	m := core.Measurement{
		ID: d.ID,
		Variable: core.VariableRef{
			Component: d.Variable.Component,
			ID:        d.Variable.ID,
			Quantity:  d.Variable.Quantity,
			Phase:     d.Variable.Phase,
		},
		Dist:     dist,
		Crit:     c,
		Weight:   d.Weight,
		Rescaler: copyFloat(d.Rescaler),
	}
	if err = m.Validate(); err != nil {
		return core.Measurement{}, err
	}

	return m, nil
}

// FromMeasurement renders m as a document record.
//
// Errors: distribution.ErrUnsupportedDistribution for a distribution type
// outside the package's families.
func FromMeasurement(m core.Measurement) (MeasurementDoc, error) {
	p, err := paramsOf(m.Dist)
	if err != nil {
		return MeasurementDoc{}, fmt.Errorf("measurement %q: %w", m.ID, err)
	}

	return MeasurementDoc{
		ID: m.ID,
		Variable: VariableDoc{
			Component: m.Variable.Component,
			ID:        m.Variable.ID,
			Quantity:  m.Variable.Quantity,
			Phase:     m.Variable.Phase,
		},
		Distribution: m.Dist.Family().String(),
		Params:       ParamsDoc(p),
		Crit:         string(m.Crit),
		Weight:       m.Weight,
		Rescaler:     copyFloat(m.Rescaler),
	}, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v

	return &c
}

// MeasurementSet converts every record of d. Conversion stops at the first
// failing record.
func (d Document) MeasurementSet() (*core.MeasurementSet, error) {
	set, err := core.NewMeasurementSet()
	if err != nil {
		return nil, err
	}
	for _, md := range d.Measurements {
		m, err := md.Measurement()
		if err != nil {
			return nil, err
		}
		if err = set.Add(m); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// FromMeasurementSet renders set (in ID order) and s as one document.
func FromMeasurementSet(s core.Settings, set *core.MeasurementSet) (Document, error) {
	sd := FromSettings(s)
	doc := Document{Settings: &sd}
	if set == nil {
		return doc, nil
	}
	for _, m := range set.Measurements() {
		md, err := FromMeasurement(m)
		if err != nil {
			return Document{}, err
		}
		doc.Measurements = append(doc.Measurements, md)
	}

	return doc, nil
}

// LoadSettings reads a bare settings document (top-level keys criterion,
// rescaler, number_of_gaussian) over core.DefaultSettings.
func LoadSettings(r io.Reader) (core.Settings, error) {
	var sd SettingsDoc
	if err := decodeStrict(r, &sd); err != nil {
		return core.Settings{}, err
	}
	if err := validateStruct(sd); err != nil {
		return core.Settings{}, err
	}

	return sd.Settings()
}

// Load reads a full Document and converts it. Settings absent from the
// document are the defaults.
func Load(r io.Reader) (core.Settings, *core.MeasurementSet, error) {
	doc, err := Decode(r)
	if err != nil {
		return core.Settings{}, nil, err
	}
	s, err := doc.Settings.Settings()
	if err != nil {
		return core.Settings{}, nil, err
	}
	set, err := doc.MeasurementSet()
	if err != nil {
		return core.Settings{}, nil, err
	}

	return s, set, nil
}

func paramsOf(d distribution.Distribution) (distribution.Params, error) {
	switch v := d.(type) {
	case distribution.Normal:
		return distribution.Params{Mu: v.Mu, Sigma: v.Sigma}, nil
	case distribution.LogNormal:
		return distribution.Params{Mu: v.Mu, Sigma: v.Sigma}, nil
	case distribution.Exponential:
		return distribution.Params{Rate: v.Rate}, nil
	case distribution.Weibull:
		return distribution.Params{Shape: v.Shape, Scale: v.Scale}, nil
	case distribution.Gamma:
		return distribution.Params{Shape: v.Shape, Scale: v.Scale}, nil
	case distribution.Beta:
		return distribution.Params{Alpha: v.Alpha, Beta: v.Beta}, nil
	case distribution.ExtendedBeta:
		return distribution.Params{Alpha: v.Alpha, Beta: v.Beta, Min: v.Min, Max: v.Max}, nil
	default:
		return distribution.Params{}, fmt.Errorf("%w: %T", distribution.ErrUnsupportedDistribution, d)
	}
}
