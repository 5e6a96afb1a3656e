// Package distribution is the uniform query surface over the univariate
// measurement-error distributions used by the residual formulations.
//
// 🚀 What does it provide?
//
//	Every supported family answers the same questions at a point x:
//	  • LogPdf     - natural log of the density
//	  • GradLogPdf - d/dx LogPdf
//	  • HesLogPdf  - d²/dx² LogPdf
//	plus Pdf, CDF, Quantile, Mean, StdDev, Mode and Support, which the
//	Gaussian-mixture decomposer and the maximum-likelihood residuals need.
//
// ✨ Families:
//   - Normal{Mu, Sigma}
//   - LogNormal{Mu, Sigma}            (parameters of the underlying normal)
//   - Exponential{Rate}
//   - Weibull{Shape, Scale}
//   - Gamma{Shape, Scale}
//   - Beta{Alpha, Beta}               (support [0,1])
//   - ExtendedBeta{Alpha, Beta, Min, Max} (Beta stretched to [Min,Max])
//
// Density and first derivative come from gonum's distuv where gonum offers
// them (LogProb, ScoreInput). Second derivatives are derived in closed form
// for every family, because statistical libraries rarely expose them and the
// nonlinear solver needs exact Hessians near support boundaries.
//
// ⚙️ Usage:
//
//	d, err := distribution.NewWeibull(2.0, 1.5)
//	if err != nil { ... }
//	lp, _ := distribution.LogPdf(d, 0.8)
//	g, _ := distribution.GradLogPdf(d, 0.8)
//	h, _ := distribution.HesLogPdf(d, 0.8)
//
// Conventions:
//   - Outside the closed support LogPdf is −Inf, GradLogPdf and HesLogPdf are NaN.
//   - On a support boundary with finite density, one-sided limits are returned;
//     otherwise ±Inf with the sign of the limit.
//   - Mode returns ErrUnboundedDensity when the density has no finite maximum.
package distribution
