package ssa

import (
	"fmt"
	"math"
	"sort"
)

// Term is one species with its stoichiometric coefficient.
type Term struct {
	Species int
	Count   int64
}

// Reaction is a mass-action reaction. Its propensity is Rate times the
// number of distinct reactant combinations.
type Reaction struct {
	Name      string
	Rate      float64
	Reactants []Term
	Products  []Term
}

// Model is a well-mixed reaction system.
type Model struct {
	Species   []string
	Initial   []int64
	Reactions []Reaction
}

// Validate checks names, counts, rates, and species references.
func (m *Model) Validate() error {
	if len(m.Species) == 0 {
		return fmt.Errorf("%w: no species", ErrInvalidModel)
	}
	if len(m.Initial) != len(m.Species) {
		return fmt.Errorf("%w: %d initial counts for %d species", ErrInvalidModel, len(m.Initial), len(m.Species))
	}
	seen := make(map[string]bool, len(m.Species))
	for i, name := range m.Species {
		if name == "" {
			return fmt.Errorf("%w: species %d has no name", ErrInvalidModel, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate species %q", ErrInvalidModel, name)
		}
		seen[name] = true
		if m.Initial[i] < 0 {
			return fmt.Errorf("%w: species %q has negative initial count %d", ErrInvalidModel, name, m.Initial[i])
		}
	}
	if len(m.Reactions) == 0 {
		return fmt.Errorf("%w: no reactions", ErrInvalidModel)
	}
	for j, r := range m.Reactions {
		if !(r.Rate >= 0) || math.IsInf(r.Rate, 1) {
			return fmt.Errorf("%w: reaction %d (%s) has rate %g", ErrInvalidModel, j, r.Name, r.Rate)
		}
		for _, terms := range [][]Term{r.Reactants, r.Products} {
			for _, t := range terms {
				if t.Species < 0 || t.Species >= len(m.Species) {
					return fmt.Errorf("%w: reaction %d (%s) references species %d", ErrInvalidModel, j, r.Name, t.Species)
				}
				if t.Count <= 0 {
					return fmt.Errorf("%w: reaction %d (%s) has coefficient %d", ErrInvalidModel, j, r.Name, t.Count)
				}
			}
		}
	}
	return nil
}

// Propensity returns the mass-action propensity of reaction j in state.
func (m *Model) Propensity(j int, state []int64) float64 {
	r := &m.Reactions[j]
	a := r.Rate
	for _, t := range r.Reactants {
		x := state[t.Species]
		if x < t.Count {
			return 0
		}
		// x choose n, built incrementally.
		for i := int64(0); i < t.Count; i++ {
			a *= float64(x-i) / float64(i+1)
		}
	}
	return a
}

// Propensities fills out with every reaction's propensity and returns the sum.
func (m *Model) Propensities(state []int64, out []float64) float64 {
	var sum float64
	for j := range m.Reactions {
		out[j] = m.Propensity(j, state)
		sum += out[j]
	}
	return sum
}

// NetChange returns the net stoichiometry of reaction j, sorted by species
// and without zero entries.
func (m *Model) NetChange(j int) []Term {
	delta := make(map[int]int64)
	for _, t := range m.Reactions[j].Reactants {
		delta[t.Species] -= t.Count
	}
	for _, t := range m.Reactions[j].Products {
		delta[t.Species] += t.Count
	}
	out := make([]Term, 0, len(delta))
	for s, c := range delta {
		if c != 0 {
			out = append(out, Term{Species: s, Count: c})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Species < out[b].Species })
	return out
}

// Dependencies returns, for every reaction r, the reactions whose propensity
// can change when r fires. Each list is sorted and contains r itself.
func (m *Model) Dependencies() [][]int {
	readers := make([][]int, len(m.Species))
	for j, r := range m.Reactions {
		for _, t := range r.Reactants {
			readers[t.Species] = append(readers[t.Species], j)
		}
	}
	deps := make([][]int, len(m.Reactions))
	for r := range m.Reactions {
		set := map[int]bool{r: true}
		for _, t := range m.NetChange(r) {
			for _, j := range readers[t.Species] {
				set[j] = true
			}
		}
		list := make([]int, 0, len(set))
		for j := range set {
			list = append(list, j)
		}
		sort.Ints(list)
		deps[r] = list
	}
	return deps
}

// SpeciesIndex returns the index of the named species.
func (m *Model) SpeciesIndex(name string) (int, bool) {
	for i, s := range m.Species {
		if s == name {
			return i, true
		}
	}
	return -1, false
}
