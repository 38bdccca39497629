package trace

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalFirings         int
	UniqueReactions      int
	ReactionDistribution map[string]int // reaction name → firings recorded
	MeanWaitingTime      float64        // mean gap between recorded firings
	StdWaitingTime       float64        // standard deviation of those gaps

	AcceptedLeaps int
	RejectedLeaps int
	MeanTau       float64 // over accepted leaps
	MinTau        float64 // over accepted leaps
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ReactionDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalFirings = len(st.Firings)
	for _, f := range st.Firings {
		summary.ReactionDistribution[f.Reaction]++
	}
	if n := len(st.Firings); n > 1 {
		gaps := make([]float64, n-1)
		for i := 1; i < n; i++ {
			gaps[i-1] = st.Firings[i].Time - st.Firings[i-1].Time
		}
		summary.MeanWaitingTime = stat.Mean(gaps, nil)
		if n > 2 {
			summary.StdWaitingTime = stat.StdDev(gaps, nil)
		}
	}
	summary.UniqueReactions = len(summary.ReactionDistribution)

	totalTau := 0.0
	summary.MinTau = math.Inf(1)
	for _, l := range st.Leaps {
		if !l.Accepted {
			summary.RejectedLeaps++
			continue
		}
		summary.AcceptedLeaps++
		totalTau += l.Tau
		summary.MinTau = math.Min(summary.MinTau, l.Tau)
	}
	if summary.AcceptedLeaps > 0 {
		summary.MeanTau = totalTau / float64(summary.AcceptedLeaps)
	} else {
		summary.MinTau = 0
	}

	return summary
}

// Print displays the summary in the metrics layout.
func (s *TraceSummary) Print() {
	fmt.Println("=== Trace Summary ===")
	if s.TotalFirings > 0 {
		fmt.Printf("Recorded Firings     : %d\n", s.TotalFirings)
		fmt.Printf("Mean Waiting Time    : %.6g\n", s.MeanWaitingTime)
		fmt.Printf("Std Waiting Time     : %.6g\n", s.StdWaitingTime)
		names := make([]string, 0, len(s.ReactionDistribution))
		for name := range s.ReactionDistribution {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-18s : %d\n", name, s.ReactionDistribution[name])
		}
	}
	if s.AcceptedLeaps+s.RejectedLeaps > 0 {
		fmt.Printf("Accepted Leaps       : %d\n", s.AcceptedLeaps)
		fmt.Printf("Rejected Leaps       : %d\n", s.RejectedLeaps)
		fmt.Printf("Mean Tau             : %.6g\n", s.MeanTau)
		fmt.Printf("Min Tau              : %.6g\n", s.MinTau)
	}
}
