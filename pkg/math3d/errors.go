package math3d

import "errors"

var (
	// ErrDegenerateGeometry is returned when a vector that must be
	// normalized has zero or non-finite length.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrInvalidProjection is returned by projection constructors for
	// non-finite or out-of-range parameters.
	ErrInvalidProjection = errors.New("invalid projection parameters")

	// ErrPerspectiveDivideByZero is returned when a homogeneous point
	// with w == 0 is divided.
	ErrPerspectiveDivideByZero = errors.New("perspective divide by zero")
)
