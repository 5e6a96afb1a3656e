package converters

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/psse/core"
)

var (
	// ErrDecode indicates malformed YAML or an unknown key.
	ErrDecode = errors.New("converters: cannot decode document")

	// ErrInvalidDocument indicates a document that decodes but fails its
	// struct validation. It wraps core.ErrInvalidParameter.
	ErrInvalidDocument = fmt.Errorf("converters: invalid document: %w", core.ErrInvalidParameter)
)
