package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/psse/converters"
	"github.com/katalvlaran/psse/core"
	"github.com/katalvlaran/psse/formulation"
	"github.com/katalvlaran/psse/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	*rootOptions
	measurements string
	settings     string
	formulation  string
	format       string
	parallelism  int
	metrics      bool
	strict       bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Emit the residual formulation of a measurement document",
		Long: `Loads the measurement document, registers one free state variable per
measured quantity, resolves the criterion of every measurement and emits the
residual variables and constraints for the chosen solver formulation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.measurements, "measurements", "m", "", "measurement document (YAML)")
	f.StringVarP(&opts.settings, "settings", "s", "", "settings document (YAML); overrides the document's settings")
	f.StringVarP(&opts.formulation, "formulation", "f", "acp", "solver formulation: acp, acr, ivr, linear, conic")
	f.StringVar(&opts.format, "format", "text", "output format: text, json or lp (dense linear block)")
	f.IntVar(&opts.parallelism, "parallel", formulation.DefaultParallelism, "measurements planned concurrently")
	f.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics after the summary")
	f.BoolVar(&opts.strict, "strict", false, "reject wlav, wls and mle under the linear and conic formulations")
	_ = cmd.MarkFlagRequired("measurements")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	switch opts.format {
	case "text", "json", "lp":
	default:
		return fmt.Errorf("invalid --format %q: want text, json or lp", opts.format)
	}
	if opts.parallelism < 1 {
		return fmt.Errorf("invalid --parallel %d: must be >= 1", opts.parallelism)
	}
	log, err := opts.logger(cmd)
	if err != nil {
		return err
	}
	form, err := formulation.ParseFormulation(opts.formulation)
	if err != nil {
		return err
	}

	doc, err := readDocument(opts.measurements)
	if err != nil {
		return err
	}
	settings, err := loadSettings(doc, opts.settings)
	if err != nil {
		return err
	}
	set, err := doc.MeasurementSet()
	if err != nil {
		return err
	}

	m, err := stateModel(set)
	if err != nil {
		return err
	}
	bopts := []formulation.BuilderOption{
		formulation.WithLogger(log),
		formulation.WithParallelism(opts.parallelism),
	}
	if opts.strict {
		bopts = append(bopts, formulation.WithStrictConvexity())
	}
	reg := prometheus.NewRegistry()
	if opts.metrics {
		mt, err := formulation.NewMetrics(reg)
		if err != nil {
			return err
		}
		bopts = append(bopts, formulation.WithMetrics(mt))
	}
	b, err := formulation.NewBuilder(form, settings, bopts...)
	if err != nil {
		return err
	}
	res, err := b.Build(m, set)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(summarise(m, res, settings))
	case "lp":
		err = writeLinearBlock(out, m)
	default:
		err = summarise(m, res, settings).writeText(out)
	}
	if err != nil {
		return err
	}
	if opts.metrics {
		return writeMetrics(out, reg)
	}

	return nil
}

// loadSettings prefers the settings file, then the document's settings
// section, then the defaults.
func loadSettings(doc converters.Document, path string) (core.Settings, error) {
	if path == "" {
		return doc.Settings.Settings()
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Settings{}, err
	}
	defer f.Close()

	s, err := converters.LoadSettings(f)
	if err != nil {
		return core.Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// stateModel registers one free variable per distinct measured quantity, in
// measurement ID order. Network equations and bounds are out of scope here.
func stateModel(set *core.MeasurementSet) (*model.Model, error) {
	m := model.NewModel()
	for _, meas := range set.Measurements() {
		key := meas.Variable.Key()
		if _, ok := m.Lookup(key); ok {
			continue
		}
		if _, err := m.AddVariable(key, math.Inf(-1), math.Inf(1)); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintln(w); err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
