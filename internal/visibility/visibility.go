// Package visibility evaluates Customizer dependency edges against the
// current parameter values. It maintains a dependency graph (controller
// -> dependents) so the presentation layer can recompute exactly the
// affected controls after each value change.
package visibility

import (
	"sort"

	"github.com/openscad-forge/customizer/internal/customizer"
)

// Values is the live name -> value map maintained by the presentation
// layer. Values are compared as strings; a missing entry compares as
// the empty string.
type Values map[string]string

// DefaultValues seeds a Values map from the schema defaults.
func DefaultValues(schema *customizer.Schema) Values {
	values := make(Values, len(schema.Parameters))
	for name, p := range schema.Parameters {
		values[name] = p.Default.String()
	}
	return values
}

// Visible reports whether a single dependency edge is satisfied. A nil
// edge is always visible.
func Visible(values Values, dep *customizer.Dependency) bool {
	if dep == nil {
		return true
	}
	current := values[dep.Parameter]
	if dep.Operator == "!=" {
		return current != dep.Value
	}
	return current == dep.Value
}

// Evaluate computes the full visibility set for a schema: every
// parameter name mapped to whether its control should show. The pass is
// idempotent and order-independent; each edge is checked against the
// same values snapshot.
func Evaluate(schema *customizer.Schema, values Values) map[string]bool {
	result := make(map[string]bool, len(schema.Parameters))
	for name, p := range schema.Parameters {
		result[name] = Visible(values, p.Dependency)
	}
	return result
}

// Graph indexes dependency edges by controlling parameter. It is built
// once per schema and read-only afterwards.
type Graph struct {
	dependents map[string][]string // controller -> dependent names
	edges      map[string]*customizer.Dependency
}

// NewGraph builds the dependency graph for a schema.
func NewGraph(schema *customizer.Schema) *Graph {
	g := &Graph{
		dependents: make(map[string][]string),
		edges:      make(map[string]*customizer.Dependency),
	}
	for name, p := range schema.Parameters {
		if p.Dependency == nil {
			continue
		}
		g.edges[name] = p.Dependency
		g.dependents[p.Dependency.Parameter] = append(g.dependents[p.Dependency.Parameter], name)
	}
	for controller := range g.dependents {
		sort.Strings(g.dependents[controller])
	}
	return g
}

// Dependents returns the parameters whose visibility must be
// re-evaluated after the named parameter changes.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// EdgeCount returns the number of dependency edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// OnChange re-evaluates visibility for the dependents of the changed
// parameter and returns their new states. Callers mutate values first,
// then invoke this before processing the next interaction.
func (g *Graph) OnChange(changed string, values Values) map[string]bool {
	updates := make(map[string]bool)
	for _, name := range g.dependents[changed] {
		updates[name] = Visible(values, g.edges[name])
	}
	return updates
}
