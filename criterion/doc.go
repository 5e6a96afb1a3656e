// Package criterion decides which statistical criterion each measurement's
// residual is built under.
//
// Resolution rules, given Settings.Criterion:
//
//	mixed        every measurement must carry Crit; it is copied verbatim.
//	             A missing Crit is ErrMissingCriterion, never a default.
//	set (≠mixed) every measurement receives it.
//	unset        Crit on the measurement wins; otherwise Default(family):
//	             Normal → rwlav, every other family → mle.
//
// Every resolved pair is checked with Compatible: wlav, rwlav, wls and rwls
// describe Gaussian errors only; gmm and mle accept any family.
//
// Resolve is all-or-nothing and the Assignment it returns is immutable.
// Changing settings or measurements means resolving again.
package criterion
