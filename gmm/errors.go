package gmm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/psse/core"
)

var (
	// ErrInvalidComponentCount indicates K < 1. It is the same sentinel as
	// core.ErrInvalidComponentCount and wraps core.ErrInvalidParameter.
	ErrInvalidComponentCount = core.ErrInvalidComponentCount

	// ErrInvalidOption indicates a decomposition option out of range. It
	// wraps core.ErrInvalidParameter.
	ErrInvalidOption = fmt.Errorf("gmm: invalid option: %w", core.ErrInvalidParameter)

	// ErrDegenerateFit indicates that the fitted mixture contains a non-finite
	// parameter. It signals a target the quantile grid cannot resolve.
	ErrDegenerateFit = errors.New("gmm: degenerate mixture fit")
)
