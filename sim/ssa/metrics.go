package ssa

import "fmt"

// Metrics aggregates statistics about a run for final reporting.
type Metrics struct {
	Steps      int64   // Number of solver steps taken
	Time       float64 // Simulated time reached
	Rejections int64   // Leaps retried with a halved interval
	Rebuilds   int     // Partition rebuilds, when the queue reports them

	Firings     []int64 // Per-reaction firing counts
	Populations []int64 // Species counts at the end of the run

	reactionNames []string
	speciesNames  []string
}

func newMetrics(m *Model) *Metrics {
	names := make([]string, len(m.Reactions))
	for j, r := range m.Reactions {
		names[j] = r.Name
	}
	return &Metrics{
		Firings:       make([]int64, len(m.Reactions)),
		Populations:   append([]int64(nil), m.Initial...),
		reactionNames: names,
		speciesNames:  m.Species,
	}
}

// TotalFirings sums the per-reaction firing counts.
func (m *Metrics) TotalFirings() int64 {
	var n int64
	for _, f := range m.Firings {
		n += f
	}
	return n
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Steps                : %d\n", m.Steps)
	fmt.Printf("Simulated Time       : %.6g\n", m.Time)
	fmt.Printf("Total Firings        : %d\n", m.TotalFirings())
	if m.Rejections > 0 {
		fmt.Printf("Rejected Leaps       : %d\n", m.Rejections)
	}
	if m.Rebuilds > 0 {
		fmt.Printf("Partition Rebuilds   : %d\n", m.Rebuilds)
	}
	fmt.Println("=== Reaction Firings ===")
	for j, f := range m.Firings {
		fmt.Printf("%-20s : %d\n", m.reactionNames[j], f)
	}
	fmt.Println("=== Final Populations ===")
	for i, x := range m.Populations {
		fmt.Printf("%-20s : %d\n", m.speciesNames[i], x)
	}
}
