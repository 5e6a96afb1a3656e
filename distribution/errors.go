package distribution

import "errors"

// Sentinel errors for the distribution adapter. Match with errors.Is.
var (
	// ErrUnsupportedDistribution indicates a nil distribution or a family
	// outside the supported enumeration.
	ErrUnsupportedDistribution = errors.New("distribution: unsupported distribution family")

	// ErrInvalidParameter indicates a non-finite or out-of-domain parameter
	// (non-positive scale, shape or rate; Min >= Max).
	ErrInvalidParameter = errors.New("distribution: invalid parameter")

	// ErrUnboundedDensity indicates that the density has no finite maximum,
	// so no mode (and no maximum-likelihood shift) exists.
	ErrUnboundedDensity = errors.New("distribution: density is unbounded")
)
