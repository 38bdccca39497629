package ssa

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ModelConfig is the YAML form of a Model.
//
//	species:
//	  - name: A
//	    initial: 100
//	reactions:
//	  - name: decay
//	    rate: 0.1
//	    reactants: {A: 1}
//	    products: {}
type ModelConfig struct {
	Species   []SpeciesConfig  `yaml:"species"`
	Reactions []ReactionConfig `yaml:"reactions"`
}

// SpeciesConfig declares one species.
type SpeciesConfig struct {
	Name    string `yaml:"name"`
	Initial int64  `yaml:"initial"`
}

// ReactionConfig declares one reaction; species are referenced by name.
type ReactionConfig struct {
	Name      string           `yaml:"name"`
	Rate      float64          `yaml:"rate"`
	Reactants map[string]int64 `yaml:"reactants"`
	Products  map[string]int64 `yaml:"products"`
}

// LoadModel reads a YAML model file. Unknown fields are errors.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes and validates a YAML model.
func ParseModel(data []byte) (*Model, error) {
	var cfg ModelConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}
	m, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Build resolves species names into a Model. Terms are ordered by species
// index so that the result does not depend on map iteration.
func (c *ModelConfig) Build() (*Model, error) {
	m := &Model{
		Species:   make([]string, len(c.Species)),
		Initial:   make([]int64, len(c.Species)),
		Reactions: make([]Reaction, len(c.Reactions)),
	}
	index := make(map[string]int, len(c.Species))
	for i, s := range c.Species {
		m.Species[i] = s.Name
		m.Initial[i] = s.Initial
		index[s.Name] = i
	}
	for j, rc := range c.Reactions {
		reactants, err := resolveTerms(index, rc.Reactants)
		if err != nil {
			return nil, fmt.Errorf("%w: reaction %q: %v", ErrInvalidModel, rc.Name, err)
		}
		products, err := resolveTerms(index, rc.Products)
		if err != nil {
			return nil, fmt.Errorf("%w: reaction %q: %v", ErrInvalidModel, rc.Name, err)
		}
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("r%d", j)
		}
		m.Reactions[j] = Reaction{Name: name, Rate: rc.Rate, Reactants: reactants, Products: products}
	}
	return m, nil
}

func resolveTerms(index map[string]int, counts map[string]int64) ([]Term, error) {
	terms := make([]Term, 0, len(counts))
	for name, n := range counts {
		s, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("unknown species %q", name)
		}
		terms = append(terms, Term{Species: s, Count: n})
	}
	sort.Slice(terms, func(a, b int) bool { return terms[a].Species < terms[b].Species })
	return terms, nil
}
