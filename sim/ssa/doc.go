// Package ssa runs well-mixed chemical kinetics models with the stochastic
// simulation algorithm.
//
// A Model lists species, their initial counts, and mass-action reactions.
// Two solvers advance it:
//   - NextReaction keeps one absolute firing time per reaction in a
//     queue.KeyQueue and fires the earliest. Any queue kind can back it.
//   - TauLeap fires a Poisson number of every reaction per fixed interval,
//     halving the interval whenever a population would go negative.
//
// Both solvers are single-goroutine and draw from streams handed to them by
// the caller, so a fixed sim.PartitionedRNG seed reproduces a trajectory.
package ssa
