package main

import (
	"fmt"

	"github.com/katalvlaran/psse/gmm"
	"github.com/spf13/cobra"
)

type decomposeOptions struct {
	*rootOptions
	measurements string
	id           string
	components   int
	grid         int
	holdout      int
}

func newDecomposeCmd(root *rootOptions) *cobra.Command {
	opts := &decomposeOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Fit the Gaussian mixture of one measurement and report its fit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDecompose(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.measurements, "measurements", "m", "", "measurement document (YAML)")
	f.StringVar(&opts.id, "id", "", "measurement ID")
	f.IntVarP(&opts.components, "components", "k", 0, "number of components (default: the document's number_of_gaussian)")
	f.IntVar(&opts.grid, "grid", gmm.DefaultGridSize, "quantile grid size of the fit")
	f.IntVar(&opts.holdout, "holdout", 500, "points of the held-out KL grid")
	_ = cmd.MarkFlagRequired("measurements")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runDecompose(cmd *cobra.Command, opts *decomposeOptions) error {
	log, err := opts.logger(cmd)
	if err != nil {
		return err
	}
	doc, err := readDocument(opts.measurements)
	if err != nil {
		return err
	}
	settings, err := doc.Settings.Settings()
	if err != nil {
		return err
	}
	set, err := doc.MeasurementSet()
	if err != nil {
		return err
	}
	meas, err := set.Get(opts.id)
	if err != nil {
		return err
	}
	k := settings.NumberOfGaussian
	if cmd.Flags().Changed("components") {
		k = opts.components
	}

	mx, err := gmm.Decompose(meas.Dist, k, gmm.WithGridSize(opts.grid))
	if err != nil {
		return err
	}
	grid, err := gmm.HoldoutGrid(meas.Dist, opts.holdout)
	if err != nil {
		return err
	}
	kl, err := gmm.KLDivergence(meas.Dist, mx, grid)
	if err != nil {
		return err
	}
	log.Info("mixture fitted",
		"measurement", meas.ID,
		"components", mx.Len(),
		"iterations", mx.Iterations,
		"converged", mx.Converged)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s, %d components, %d iterations, converged %t\n",
		meas.ID, meas.Dist.Family(), mx.Len(), mx.Iterations, mx.Converged)
	for i, c := range mx.Components {
		fmt.Fprintf(out, "  %2d  w=%.6f  mean=%.6g  sigma=%.6g\n", i, c.Weight, c.Mean, c.Sigma)
	}
	_, err = fmt.Fprintf(out, "KL(target || mixture) on %d held-out points: %.3g\n", len(grid), kl)

	return err
}
