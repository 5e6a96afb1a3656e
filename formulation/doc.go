// Package formulation turns measurements into residual variables and the
// constraints that bind them to the state, under a statistical criterion and
// a solver formulation.
//
// 🚀 Flow
//
//	criterion.Resolve → plan (checks, rescaling, gmm.Decompose, mle shift)
//	                  → one model.Batch with every residual
//
// ✨ Emission per criterion (rsc = rescaler, ρ ≥ 0 always)
//
//	wlav   ρ = |x − μ| / (rsc·σ)                      exact, non-smooth
//	rwlav  ρ ≥ ±(x − μ) / (rsc·σ)                     exact relaxation
//	wls    ρ = (x − μ)² / (rsc·σ²)                    exact, smooth
//	rwls   rsc·σ²·ρ ≥ (x − μ)²                        exact conic relaxation
//	gmm    x = Σ x_n;  ρ ≥ ±Σ (x_n − μ_n)/(rsc·w_n·σ_n)
//	mle    ρ = rsc·(logpdf(x*) − logpdf(x)), x* the mode, with exact f', f''
//
// Every formulation accepts every criterion, so a default-resolved set
// builds the same way under all of them. WithStrictConvexity restricts the
// convex formulations (Linearized, Conic) to rwlav, rwls and gmm.
//
// Options: WithLogger (log/slog), WithDecomposeOptions (gmm tuning),
// WithMetrics (Prometheus counters and fit-time histogram),
// WithParallelism (bounded concurrent planning via errgroup) and
// WithStrictConvexity.
//
// A Builder is immutable after NewBuilder. Build never leaves a partial
// formulation in the model: resolution and planning finish before anything
// is written, and emission is a single atomic batch.
package formulation
