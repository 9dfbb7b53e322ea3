package trajectory

import (
	"errors"
	"fmt"
)

// ErrConfig is the class of all configuration errors. Every error returned
// from WaypointSet.Append and Interpolator.Build satisfies errors.Is(err, ErrConfig).
var ErrConfig = errors.New("trajectory: configuration error")

// Configuration errors.
var (
	// ErrTooFewWaypoints indicates a build with fewer than two waypoints.
	ErrTooFewWaypoints = fmt.Errorf("%w: at least two waypoints are required", ErrConfig)

	// ErrNonIncreasingTime indicates a waypoint appended at or before the last timestamp.
	ErrNonIncreasingTime = fmt.Errorf("%w: waypoint times must be strictly increasing", ErrConfig)

	// ErrDimensionMismatch indicates a waypoint vector of the wrong length.
	ErrDimensionMismatch = fmt.Errorf("%w: waypoint dimension mismatch", ErrConfig)

	// ErrInvalidTime indicates a negative, NaN or infinite timestamp.
	ErrInvalidTime = fmt.Errorf("%w: waypoint time must be finite and non-negative", ErrConfig)

	// ErrInvalidValue indicates a NaN or infinite joint value.
	ErrInvalidValue = fmt.Errorf("%w: waypoint values must be finite", ErrConfig)

	// ErrUnknownBasis indicates an unsupported interpolation basis.
	ErrUnknownBasis = fmt.Errorf("%w: unknown interpolation basis", ErrConfig)
)

// ErrNotBuilt indicates an evaluation without a build that matches the
// current contents of the WaypointSet.
var ErrNotBuilt = errors.New("trajectory: interpolator not built for current waypoints")
