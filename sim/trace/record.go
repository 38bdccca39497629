// Package trace records solver events for post-run analysis.
// This package has no dependencies on sim/ or sim/ssa/; it stores pure data types.
package trace

// FiringRecord captures one reaction firing of the exact solver.
type FiringRecord struct {
	Step     int64
	Time     float64
	Reaction string
	// QueueLen is the number of scheduled reactions after the firing.
	QueueLen int
}

// LeapRecord captures one tau-leap attempt, accepted or not.
type LeapRecord struct {
	Time     float64 // start of the leap
	Tau      float64
	Accepted bool
	Firings  int64 // total firings of an accepted leap
}
