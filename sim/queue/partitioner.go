package queue

import (
	"math"
	"slices"
)

// Partitioner decides how far to advance a PartitionedQueue's splitting value
// when its partition is empty, and materialises the new partition (normally
// through BuildLowerPartition).
type Partitioner interface {
	Partition(q *PartitionedQueue)
}

// DefaultSizeConstant scales the FixedSizePartitioner target size.
const DefaultSizeConstant = 1.0

// FixedSizePartitioner places roughly constant*sqrt(capacity) of the smallest
// active keys in each new partition. It needs no propensities: the threshold
// is the k-th smallest key outside the partition.
type FixedSizePartitioner struct {
	target  int
	scratch []float64
}

// NewFixedSizePartitioner sizes partitions for a queue of capacity elements.
func NewFixedSizePartitioner(capacity int) *FixedSizePartitioner {
	p := &FixedSizePartitioner{}
	p.SetSizeConstant(capacity, DefaultSizeConstant)
	return p
}

// SetSizeConstant sets the target partition size to constant*sqrt(capacity),
// at least one element.
func (p *FixedSizePartitioner) SetSizeConstant(capacity int, constant float64) {
	p.target = max(1, int(math.Round(constant*math.Sqrt(float64(capacity)))))
}

// Target returns the number of elements a rebuild aims to admit.
func (p *FixedSizePartitioner) Target() int { return p.target }

func (p *FixedSizePartitioner) Partition(q *PartitionedQueue) {
	p.scratch = append(p.scratch[:0], q.ActiveKeys()...)
	if len(p.scratch) == 0 {
		return
	}
	slices.Sort(p.scratch)
	k := min(p.target, len(p.scratch))
	q.SetSplittingValue(p.scratch[k-1])
	q.BuildLowerPartition()
}
