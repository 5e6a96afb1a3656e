// Package gmm decomposes an arbitrary measurement-error distribution into K
// weighted Gaussian components for the gmm residual criterion.
//
// Method: weighted expectation-maximisation on an equal-mass quantile
// discretisation of the target. The target is represented by N points
// x_i = Q((i−½)/N), each worth 1/N of probability, so heavy tails and
// bounded supports are sampled where their mass is, without random draws.
// EM starts from K contiguous blocks of those points (moment-matched), which
// makes the result deterministic and already ordered by mean.
//
// Guarantees:
//   - exactly K components with strictly positive weights summing to 1;
//   - component sigmas floored at MinSigmaRatio·span, so none collapses;
//   - K < 1 fails with ErrInvalidComponentCount before any work.
//
// As K grows the mixture CDF approaches the target's; KLDivergence on a
// HoldoutGrid is the goodness-of-fit metric used to check that larger K does
// not fit worse.
//
//	mx, err := gmm.Decompose(distribution.Gamma{Shape: 2, Scale: 1}, 8)
//	grid, _ := gmm.HoldoutGrid(d, 400)
//	kl, _ := gmm.KLDivergence(d, mx, grid)
package gmm
