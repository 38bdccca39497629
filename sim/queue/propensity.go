package queue

import "math"

// DefaultCostConstant balances rebuild cost against scan cost. It was tuned
// on near-uniform propensities.
const DefaultCostConstant = 1.75

// PropensityPartitioner advances the splitting value by costConstant/sum of
// propensities: when many events are hot the partition stays small and cheap
// to scan, when few compete it grows and rebuilds happen less often.
//
// The propensity slice is borrowed, never copied. The caller keeps it alive
// and the same length as the queue, and must not write to it during Top.
type PropensityPartitioner struct {
	capacity     int
	propensities []float64
	costConstant float64
}

// NewPropensityPartitioner creates a partitioner for a queue of capacity
// elements using DefaultCostConstant.
func NewPropensityPartitioner(capacity int) *PropensityPartitioner {
	p := &PropensityPartitioner{capacity: capacity}
	p.SetCostConstant(DefaultCostConstant)
	return p
}

// SetPropensities binds the externally owned propensity slice.
func (p *PropensityPartitioner) SetPropensities(propensities []float64) {
	p.propensities = propensities
}

// SetCostConstant stores sqrt(capacity)*c as the effective constant.
func (p *PropensityPartitioner) SetCostConstant(c float64) {
	p.costConstant = math.Sqrt(float64(p.capacity)) * c
}

// CostConstant returns the effective constant.
func (p *PropensityPartitioner) CostConstant() float64 { return p.costConstant }

// Partition panics if no propensities were bound. When the propensity sum is
// zero, NaN or infinite it calls ActivateMinimum, which admits the smallest
// key together with every key tied with it.
func (p *PropensityPartitioner) Partition(q *PartitionedQueue) {
	if p.propensities == nil {
		panic("queue: PropensityPartitioner used before SetPropensities")
	}
	if !q.SplittingKnown() {
		q.SetSplittingValue(q.MinKey())
	}
	var sum float64
	for _, a := range p.propensities {
		sum += a
	}
	// Nothing is expected to fire soon, or the sum overflowed: admit only the
	// minimum. The negated comparisons also catch NaN.
	if !(sum > 0) || math.IsInf(sum, 1) {
		q.ActivateMinimum()
		return
	}
	delta := p.costConstant / sum
	if !(delta > 0) || math.IsInf(delta, 0) {
		q.ActivateMinimum()
		return
	}
	q.SetSplittingValue(q.SplittingValue() + delta)
	if q.BuildLowerPartition() > 0 {
		return
	}
	// Skip the empty increments up to the smallest key in one jump; the
	// result equals advancing one delta at a time.
	next := q.MinKey()
	if next == Sentinel {
		return
	}
	split := q.SplittingValue()
	split += math.Ceil((next-split)/delta) * delta
	if math.IsNaN(split) || math.IsInf(split, 0) {
		q.ActivateMinimum()
		return
	}
	if split < next {
		split = next
	}
	q.SetSplittingValue(split)
	q.BuildLowerPartition()
}

// PropensityQueue is a PartitionedQueue rebuilt by a PropensityPartitioner.
type PropensityQueue struct {
	*PartitionedQueue
	partitioner *PropensityPartitioner
}

// NewPropensityQueue creates a queue over capacity elements. SetPropensities
// must be called before the first Top.
func NewPropensityQueue(capacity int) *PropensityQueue {
	p := NewPropensityPartitioner(capacity)
	return &PropensityQueue{
		PartitionedQueue: NewPartitionedQueue(capacity, p),
		partitioner:      p,
	}
}

// SetPropensities binds the propensity slice; see PropensityPartitioner.
func (q *PropensityQueue) SetPropensities(propensities []float64) {
	q.partitioner.SetPropensities(propensities)
}

// SetCostConstant reconfigures the effective cost constant.
func (q *PropensityQueue) SetCostConstant(c float64) {
	q.partitioner.SetCostConstant(c)
}

// CostConstant returns the effective cost constant.
func (q *PropensityQueue) CostConstant() float64 {
	return q.partitioner.CostConstant()
}
