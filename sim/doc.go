// Package sim provides the shared plumbing of the kinetic Monte Carlo engine.
//
// # Reading Guide
//
// Start with these packages to understand the simulation kernel:
//   - queue/: indexed priority queues of firing times (linear scan,
//     partitioned, propensity-partitioned, binary heap)
//   - random/: uniform, exponential, normal, and Poisson deviates
//   - ssa/: reaction models and the next-reaction and tau-leap solvers
//
// # Architecture
//
// The sim package itself only owns PartitionedRNG, which hands each
// subsystem its own deterministic stream:
//   - reactions: firing times of the next-reaction solver
//   - leaping: Poisson firing counts of tau-leaping
//   - sampling: the standalone deviate sampler of the CLI
//
// Supporting packages:
//   - trace/: optional per-event records and their summary
//   - internal/testutil/: chi-square and tolerance assertions shared by tests
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - queue.KeyQueue: top, get, push, set, pop over element indices
//   - queue.Partitioner: chooses the splitting value of a partitioned queue
//   - ssa.Solver: advances a model one event at a time
package sim
