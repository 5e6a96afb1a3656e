package converters

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// docValidate is shared by every document type; validator caches struct
// metadata per instance.
var docValidate = validator.New(validator.WithRequiredStructEnabled())

// Document is the top-level input file: optional settings and a list of
// measurements.
type Document struct {
	Settings     *SettingsDoc     `yaml:"settings,omitempty"`
	Measurements []MeasurementDoc `yaml:"measurements" validate:"unique=ID,dive"`
}

// SettingsDoc mirrors core.Settings. Absent fields keep their defaults.
type SettingsDoc struct {
	Criterion        string   `yaml:"criterion,omitempty"`
	Rescaler         *float64 `yaml:"rescaler,omitempty"`
	NumberOfGaussian *int     `yaml:"number_of_gaussian,omitempty"`
}

// MeasurementDoc is one measurement record.
type MeasurementDoc struct {
	ID           string      `yaml:"id" validate:"required"`
	Variable     VariableDoc `yaml:"variable"`
	Distribution string      `yaml:"distribution" validate:"required"`
	Params       ParamsDoc   `yaml:"params"`
	Crit         string      `yaml:"crit,omitempty"`
	Weight       float64     `yaml:"weight,omitempty" validate:"gte=0"`
	Rescaler     *float64    `yaml:"rescaler,omitempty" validate:"omitempty,gt=0"`
}

// VariableDoc mirrors core.VariableRef.
type VariableDoc struct {
	Component string `yaml:"component,omitempty"`
	ID        string `yaml:"id,omitempty"`
	Quantity  string `yaml:"quantity" validate:"required"`
	Phase     int    `yaml:"phase,omitempty" validate:"gte=0"`
}

// ParamsDoc mirrors distribution.Params; only the keys of the chosen family
// are read.
type ParamsDoc struct {
	Mu    float64 `yaml:"mu,omitempty"`
	Sigma float64 `yaml:"sigma,omitempty"`
	Rate  float64 `yaml:"rate,omitempty"`
	Shape float64 `yaml:"shape,omitempty"`
	Scale float64 `yaml:"scale,omitempty"`
	Alpha float64 `yaml:"alpha,omitempty"`
	Beta  float64 `yaml:"beta,omitempty"`
	Min   float64 `yaml:"min,omitempty"`
	Max   float64 `yaml:"max,omitempty"`
}

// Validate runs the struct-tag checks of d.
//
// Errors: ErrInvalidDocument listing every failed field.
func (d Document) Validate() error {
	return validateStruct(d)
}

// Decode reads one Document from r in strict mode. An empty stream yields
// an empty Document.
//
// Errors: ErrDecode, ErrInvalidDocument.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := decodeStrict(r, &doc); err != nil {
		return Document{}, err
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Encode writes d to w as YAML.
func Encode(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("converters: encode: %w", err)
	}

	return enc.Close()
}

func decodeStrict(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}

func validateStruct(v any) error {
	err := docValidate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag())
	}

	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
