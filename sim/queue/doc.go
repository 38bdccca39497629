// Package queue provides indexed priority queues for discrete-event stochastic
// simulation.
//
// Every queue manages a fixed index space [0, capacity). Each element carries
// one key (usually its next firing time); an element whose key is Sentinel is
// inactive and never returned by Top. There is no insertion or removal of
// elements, only activation (Push/Set) and deactivation (Pop).
//
// # Strategies
//
//   - LinearScanQueue: full pairwise scan on Top, O(1) updates.
//   - PartitionedQueue: scans only an active partition known to contain the
//     minimum; the partition is rebuilt by a pluggable Partitioner.
//   - PropensityQueue: a PartitionedQueue driven by PropensityPartitioner, which
//     sizes the partition from externally owned propensities.
//   - HeapQueue: indexed binary heap, O(log n) updates and O(1) Top.
//
// # Tie-break
//
// When several active elements share the minimum key, Top returns the first one
// encountered in the strategy's scan order: lowest index for LinearScanQueue
// and HeapQueue, lowest position in the partition permutation for the
// partitioned queues.
//
// # Concurrency
//
// Queues are NOT thread-safe. Each simulation replica must own its queue. A
// propensity slice bound with SetPropensities may be shared read-only across
// replicas as long as nobody writes to it during Top.
package queue
