package random

import (
	"errors"
	"fmt"
)

var (
	// ErrMeanOutOfRange is raised for a negative or NaN mean, or a mean above
	// the ceiling of the requested method.
	ErrMeanOutOfRange = errors.New("random: mean out of range")

	// ErrUnknownMethod is returned when parsing an unrecognised method name.
	ErrUnknownMethod = errors.New("random: unknown method")
)

func meanOutOfRange(method PoissonMethod, mean float64) {
	panic(fmt.Errorf("%w: %s with mean %g", ErrMeanOutOfRange, method, mean))
}
