package queue

import (
	"fmt"
	"sort"
)

// KeyQueue is the capability shared by every indexed priority queue.
type KeyQueue interface {
	// Capacity returns the size of the element index space.
	Capacity() int
	// Len returns the number of active elements.
	Len() int
	// Top returns the active element with the smallest key and remembers it
	// for PopTop/PushTop. ok is false when no element is active.
	Top() (index int, ok bool)
	// Get returns the key of element i; ok is false when i is inactive.
	Get(i int) (key float64, ok bool)
	// Push activates element i with key.
	Push(i int, key float64)
	// Set changes the key of element i.
	Set(i int, key float64)
	// Pop deactivates element i.
	Pop(i int)
	// PopTop deactivates the element returned by the last Top.
	PopTop()
	// PushTop sets the key of the element returned by the last Top.
	PushTop(key float64)
	// Clear deactivates all elements.
	Clear()
}

// PropensityBinder is implemented by queues whose rebuild policy reads
// externally owned propensities.
type PropensityBinder interface {
	SetPropensities(propensities []float64)
}

// Kind names accepted by New.
const (
	KindLinear       = "linear"
	KindPartition    = "partition"
	KindPropensities = "propensities"
	KindHeap         = "heap"
)

// ValidKinds is the set of recognised queue kinds.
var ValidKinds = map[string]bool{
	KindLinear:       true,
	KindPartition:    true,
	KindPropensities: true,
	KindHeap:         true,
}

// KindNames returns the recognised kinds in sorted order.
func KindNames() []string {
	names := make([]string, 0, len(ValidKinds))
	for name := range ValidKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a queue of the named kind.
func New(kind string, capacity int) (KeyQueue, error) {
	switch kind {
	case KindLinear:
		return NewLinearScanQueue(capacity), nil
	case KindPartition:
		return NewPartitionedQueue(capacity, NewFixedSizePartitioner(capacity)), nil
	case KindPropensities:
		return NewPropensityQueue(capacity), nil
	case KindHeap:
		return NewHeapQueue(capacity), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownKind, kind, KindNames())
	}
}
