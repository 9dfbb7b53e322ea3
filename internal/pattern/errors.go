package pattern

import (
	"fmt"

	"github.com/san-kum/armtraj/internal/trajectory"
)

// ErrConfig is the shared configuration error class.
var ErrConfig = trajectory.ErrConfig

var (
	// ErrInvalidRange indicates min > max or a NaN bound.
	ErrInvalidRange = fmt.Errorf("%w: min must be less than or equal to max", ErrConfig)

	// ErrInvalidWindows indicates an empty or unordered window table.
	ErrInvalidWindows = fmt.Errorf("%w: invalid pattern windows", ErrConfig)
)
