package ssa

import "errors"

var (
	// ErrInvalidModel wraps every Model.Validate failure.
	ErrInvalidModel = errors.New("ssa: invalid model")

	// ErrQueueTooSmall is returned when a queue cannot index every reaction.
	ErrQueueTooSmall = errors.New("ssa: queue capacity below reaction count")

	// ErrPropensityOverflow is returned when a propensity is too large to
	// draw a leap from.
	ErrPropensityOverflow = errors.New("ssa: propensity overflow")

	// ErrLeapRejected is returned when tau-leaping keeps producing negative
	// populations after the maximum number of halvings.
	ErrLeapRejected = errors.New("ssa: leap rejected")
)
