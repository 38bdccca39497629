// Package random provides the deviate generators that drive a stochastic
// simulation: exponential waiting times, normal perturbations and Poisson
// event counts.
//
// All generators draw from a Uniform source they do not own. Several
// generators may share one Uniform, in which case they consume one stream.
// Seeding is explicit (Seed) and never happens implicitly. Generators are NOT
// thread-safe; every simulation replica needs its own.
//
// The Poisson generator is a dispatcher: the family of algorithm it uses is
// chosen from the mean by fixed thresholds (see PoissonThresholds). Every
// family samples the same Poisson law, so the thresholds only trade speed.
package random
