package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the immutable nested mapping goal -> exercise type -> exercises.
// It is injected into consumers as a dependency so that tests can substitute
// small fixture catalogs.
type Catalog struct {
	goals map[string]map[string][]Exercise
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	goals := make(map[string]map[string][]Exercise)
	if err := yaml.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &Catalog{goals: goals}, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Goals returns the goal keys in sorted order.
func (c *Catalog) Goals() []string {
	goals := make([]string, 0, len(c.goals))
	for goal := range c.goals {
		goals = append(goals, goal)
	}
	sort.Strings(goals)
	return goals
}

// ForGoal returns all exercises under the given goal. When the goal is empty
// or unknown, it falls back to the union of every goal's exercises.
func (c *Catalog) ForGoal(goal string) []Exercise {
	if goal != "" {
		if types, ok := c.goals[goal]; ok && len(types) > 0 {
			return flatten(types)
		}
	}
	return c.All()
}

// All returns every exercise across all goals, ordered by goal key for
// determinism.
func (c *Catalog) All() []Exercise {
	var all []Exercise
	for _, goal := range c.Goals() {
		all = append(all, flatten(c.goals[goal])...)
	}
	return all
}

// ByMuscleGroup returns all exercises of a muscle group across every goal.
func (c *Catalog) ByMuscleGroup(group MuscleGroup) []Exercise {
	var matched []Exercise
	for _, e := range c.All() {
		if e.MuscleGroup == group {
			matched = append(matched, e)
		}
	}
	return matched
}

// Find returns the first exercise with the given name across every goal.
func (c *Catalog) Find(name string) (Exercise, bool) {
	for _, e := range c.All() {
		if e.Name == name {
			return e, true
		}
	}
	return Exercise{}, false
}

func flatten(types map[string][]Exercise) []Exercise {
	typeKeys := make([]string, 0, len(types))
	for key := range types {
		typeKeys = append(typeKeys, key)
	}
	sort.Strings(typeKeys)

	var flat []Exercise
	for _, key := range typeKeys {
		flat = append(flat, types[key]...)
	}
	return flat
}
