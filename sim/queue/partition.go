package queue

import (
	"fmt"
	"math"
)

// unknownSplit marks a splitting value that has not been computed yet.
const unknownSplit = -math.MaxFloat64

// PartitionedQueue keeps a reordered index array whose prefix
// [0, partitionEnd) is the active partition: exactly the active elements with
// key <= splittingValue. Every active element outside the partition has a
// larger key than every element inside, so Top only scans the prefix.
//
// When the partition runs dry, Top asks the Partitioner to advance the
// splitting value and rebuild.
type PartitionedQueue struct {
	store       *KeyStore
	partitioner Partitioner

	// indices is the permutation of element ids; positions is its inverse.
	indices   []int
	positions []int

	partitionEnd   int
	splittingValue float64
	topIndex       int
	rebuilds       int
}

// NewPartitionedQueue creates a queue over capacity elements rebuilt by p.
func NewPartitionedQueue(capacity int, p Partitioner) *PartitionedQueue {
	q := &PartitionedQueue{
		store:       NewKeyStore(capacity),
		partitioner: p,
		indices:     make([]int, capacity),
		positions:   make([]int, capacity),
	}
	for i := range q.indices {
		q.indices[i] = i
		q.positions[i] = i
	}
	q.reset()
	return q
}

func (q *PartitionedQueue) reset() {
	q.partitionEnd = 0
	q.splittingValue = unknownSplit
	q.topIndex = -1
}

func (q *PartitionedQueue) Capacity() int { return q.store.Capacity() }

func (q *PartitionedQueue) Len() int { return q.store.Len() }

func (q *PartitionedQueue) Get(i int) (float64, bool) { return q.store.Get(i) }

// Top rebuilds the partition while it is empty, then scans it. Ties resolve to
// the lowest partition position.
func (q *PartitionedQueue) Top() (int, bool) {
	if q.store.Len() == 0 {
		q.topIndex = -1
		return -1, false
	}
	for q.partitionEnd == 0 {
		q.rebuild()
	}
	keys := q.store.keys
	best := q.indices[0]
	bestKey := keys[best]
	for _, id := range q.indices[1:q.partitionEnd] {
		if keys[id] < bestKey {
			best, bestKey = id, keys[id]
		}
	}
	q.topIndex = best
	return best, true
}

// Push activates element i with key.
func (q *PartitionedQueue) Push(i int, key float64) {
	q.Set(i, key)
}

// Set changes the key of element i, moving it across the partition boundary
// when the key crosses the splitting value.
func (q *PartitionedQueue) Set(i int, key float64) {
	q.store.Set(i, key)
	inside := q.positions[i] < q.partitionEnd
	switch {
	case key <= q.splittingValue && !inside:
		q.insert(i)
	case key > q.splittingValue && inside:
		q.remove(i)
	}
}

// Pop deactivates element i and drops it from the partition in O(1).
func (q *PartitionedQueue) Pop(i int) {
	q.store.Pop(i)
	if q.positions[i] < q.partitionEnd {
		q.remove(i)
	}
}

func (q *PartitionedQueue) PopTop() {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Pop(q.topIndex)
}

func (q *PartitionedQueue) PushTop(key float64) {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Push(q.topIndex, key)
}

// Clear deactivates all elements and forgets the splitting value.
func (q *PartitionedQueue) Clear() {
	q.store.Clear()
	q.reset()
}

// SplittingValue returns the current threshold; -math.MaxFloat64 until the
// first rebuild.
func (q *PartitionedQueue) SplittingValue() float64 { return q.splittingValue }

// SplittingKnown reports whether a threshold has been computed.
func (q *PartitionedQueue) SplittingKnown() bool { return q.splittingValue != unknownSplit }

// SetSplittingValue moves the threshold. Partitioners call it before
// BuildLowerPartition.
func (q *PartitionedQueue) SetSplittingValue(v float64) { q.splittingValue = v }

// PartitionSize returns the number of elements in the active partition.
func (q *PartitionedQueue) PartitionSize() int { return q.partitionEnd }

// InPartition reports whether element i is in the active partition.
func (q *PartitionedQueue) InPartition(i int) bool { return q.positions[i] < q.partitionEnd }

// Rebuilds returns how many times the partition has been regenerated.
func (q *PartitionedQueue) Rebuilds() int { return q.rebuilds }

// ActiveKeys returns the keys of active elements outside the partition.
// It allocates; partitioners that need order statistics use it.
func (q *PartitionedQueue) ActiveKeys() []float64 {
	keys := make([]float64, 0, q.store.Len())
	for _, id := range q.indices[q.partitionEnd:] {
		if k := q.store.keys[id]; k != Sentinel {
			keys = append(keys, k)
		}
	}
	return keys
}

// MinKey returns the smallest active key, Sentinel when none is active.
func (q *PartitionedQueue) MinKey() float64 {
	i, ok := q.store.Min()
	if !ok {
		return Sentinel
	}
	return q.store.keys[i]
}

// BuildLowerPartition moves every active element outside the partition whose
// key is <= the splitting value into it, in one pass over the remainder.
// It returns the new partition size.
func (q *PartitionedQueue) BuildLowerPartition() int {
	keys := q.store.keys
	for pos := q.partitionEnd; pos < len(q.indices); pos++ {
		id := q.indices[pos]
		if k := keys[id]; k != Sentinel && k <= q.splittingValue {
			q.swap(pos, q.partitionEnd)
			q.partitionEnd++
		}
	}
	return q.partitionEnd
}

// ActivateMinimum sets the splitting value to the smallest active key and
// builds the partition from it, which admits the minimum element (and any
// element tied with it). It is the fallback when a policy cannot advance.
func (q *PartitionedQueue) ActivateMinimum() int {
	lowest := q.MinKey()
	if lowest == Sentinel {
		return q.partitionEnd
	}
	if !(q.splittingValue >= lowest) {
		q.splittingValue = lowest
	}
	return q.BuildLowerPartition()
}

// rebuild runs one partitioner step. A step that leaves the partition empty
// without raising the threshold (a NaN threshold included) falls back to
// ActivateMinimum.
func (q *PartitionedQueue) rebuild() {
	before := q.splittingValue
	q.partitioner.Partition(q)
	q.rebuilds++
	if q.partitionEnd == 0 && !(q.splittingValue > before) {
		q.ActivateMinimum()
	}
	if checkInvariants {
		q.verify()
	}
}

// insert appends element i to the partition.
func (q *PartitionedQueue) insert(i int) {
	q.swap(q.positions[i], q.partitionEnd)
	q.partitionEnd++
}

// remove swaps element i to the last partition slot and shrinks the partition.
func (q *PartitionedQueue) remove(i int) {
	q.partitionEnd--
	q.swap(q.positions[i], q.partitionEnd)
}

func (q *PartitionedQueue) swap(a, b int) {
	ia, ib := q.indices[a], q.indices[b]
	q.indices[a], q.indices[b] = ib, ia
	q.positions[ia], q.positions[ib] = b, a
}

// verify checks that partition membership is exactly key <= splittingValue.
func (q *PartitionedQueue) verify() {
	for pos, id := range q.indices {
		k := q.store.keys[id]
		want := k != Sentinel && k <= q.splittingValue
		if got := pos < q.partitionEnd; got != want {
			panic(fmt.Errorf("%w: element %d key %g split %g inside=%t",
				ErrInvariant, id, k, q.splittingValue, got))
		}
		if q.positions[id] != pos {
			panic(fmt.Errorf("%w: position of %d is %d, want %d", ErrInvariant, id, q.positions[id], pos))
		}
	}
}
