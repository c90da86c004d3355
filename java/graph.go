package java

import "sort"

// Graph is a pre-resolved type graph: every class the engine may ask about,
// indexed by qualified name. Classes referenced by name but absent from the
// graph are treated as opaque leaves whose only known supertype is their own
// name.
type Graph struct {
	classes map[string]*ClassModel
	builtin map[string]bool
}

// NewGraph returns a graph holding the platform builtins and the given
// classes. Later classes replace earlier ones with the same name.
func NewGraph(classes ...*ClassModel) *Graph {
	g := &Graph{
		classes: make(map[string]*ClassModel),
		builtin: make(map[string]bool),
	}
	for _, c := range builtinTypes {
		g.classes[c.Name] = c
		g.builtin[c.Name] = true
	}
	g.Add(classes...)
	return g
}

func (g *Graph) Add(classes ...*ClassModel) {
	for _, c := range classes {
		if c == nil || c.Name == "" {
			continue
		}
		g.classes[c.Name] = c
		delete(g.builtin, c.Name)
	}
}

func (g *Graph) Class(name string) (*ClassModel, bool) {
	c, ok := g.classes[name]
	return c, ok
}

// Classes returns the non-builtin classes sorted by name.
func (g *Graph) Classes() []*ClassModel {
	out := make([]*ClassModel, 0, len(g.classes))
	for name, c := range g.classes {
		if g.builtin[name] {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func (g *Graph) Len() int {
	return len(g.classes) - len(g.builtin)
}

// Superclass returns the model of c's direct superclass. It reports false at
// the root of the hierarchy and when the superclass is not part of the graph.
func (g *Graph) Superclass(c *ClassModel) (*ClassModel, bool) {
	if c == nil || c.SuperClass == "" {
		return nil, false
	}
	return g.Class(c.SuperClass)
}

// Supertypes returns name followed by every class and interface it extends
// or implements, transitively, in breadth-first order.
func (g *Graph) Supertypes(name string) []string {
	seen := map[string]bool{name: true}
	out := []string{name}
	for i := 0; i < len(out); i++ {
		c, ok := g.classes[out[i]]
		if !ok {
			continue
		}
		next := c.Interfaces
		if c.SuperClass != "" {
			next = append([]string{c.SuperClass}, c.Interfaces...)
		}
		for _, n := range next {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// HasCapability reports whether c is, extends or implements one of the
// named types.
func (g *Graph) HasCapability(c *ClassModel, capabilities ...string) bool {
	if c == nil {
		return false
	}
	for _, t := range g.Supertypes(c.Name) {
		for _, capability := range capabilities {
			if t == capability {
				return true
			}
		}
	}
	return false
}

// IsAssignable reports whether a value of type from can be assigned to a
// variable of type to, following Class.isAssignableFrom: primitives are
// only assignable to themselves and every reference type is assignable to
// java.lang.Object.
func (g *Graph) IsAssignable(to, from string) bool {
	if to == from {
		return true
	}
	toType, fromType := ParseTypeName(to), ParseTypeName(from)
	if toType.IsPrimitive() || fromType.IsPrimitive() {
		return false
	}
	if toType.String() == ObjectType {
		return true
	}
	if toType.ArrayDepth > 0 || fromType.ArrayDepth > 0 {
		if toType.ArrayDepth != fromType.ArrayDepth {
			return false
		}
		return g.IsAssignable(toType.Name, fromType.Name)
	}
	for _, t := range g.Supertypes(from) {
		if t == to {
			return true
		}
	}
	return false
}
