package reactor

import "errors"

// Domain errors for simulation operations.
var (
	// ErrComposition indicates fuel or fission product fractions outside
	// their valid range.
	ErrComposition = errors.New("reactor: invalid composition")

	// ErrConfig indicates a run configuration with a non-positive step
	// or time span.
	ErrConfig = errors.New("reactor: invalid run configuration")

	// ErrParameterBounds indicates a model parameter outside valid range.
	ErrParameterBounds = errors.New("reactor: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("reactor: dimension mismatch between state and system")
)
