// Package converters provides two-way adapters between YAML input documents
// and the core data model:
//   - settings documents  ⇄ core.Settings
//   - measurement records ⇄ core.Measurement / core.MeasurementSet
//
// Documents are decoded with gopkg.in/yaml.v3 in strict mode (unknown keys
// are rejected) and checked with go-playground/validator struct tags before
// conversion. Semantic checks (criterion names, distribution parameters,
// component count) are left to the core types themselves, so a document and
// a hand-built value fail with the same sentinel.
//
// Example document:
//
//	settings:
//	  criterion: mixed
//	  rescaler: 1.0
//	  number_of_gaussian: 10
//	measurements:
//	  - id: vm1
//	    variable: {component: bus, id: "1", quantity: vm}
//	    distribution: normal
//	    params: {mu: 1.0, sigma: 0.01}
//	    crit: rwlav
package converters
