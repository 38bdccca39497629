package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrSentinelKey is raised when Sentinel is pushed as a real key.
	ErrSentinelKey = errors.New("queue: sentinel key pushed")

	// ErrInvalidKey is raised when a key above Sentinel or NaN is pushed.
	ErrInvalidKey = errors.New("queue: key not ordered below sentinel")

	// ErrNoTop is raised by PopTop/PushTop when Top has not selected an element.
	ErrNoTop = errors.New("queue: no top element selected")

	// ErrUnknownKind is returned by New for an unrecognised strategy name.
	ErrUnknownKind = errors.New("queue: unknown kind")

	// ErrInvariant is raised by queuedebug builds when a partition invariant breaks.
	ErrInvariant = errors.New("queue: invariant violated")
)

// precondition panics with err annotated by the offending element.
func precondition(err error, index int) {
	panic(fmt.Errorf("%w (element %d)", err, index))
}

// indexError reports an element outside [0, capacity).
func indexError(index, capacity int) error {
	return fmt.Errorf("queue: element %d out of range [0, %d)", index, capacity)
}
