package scanner

import (
	"github.com/dhamidi/raconfig/configprop"
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// Elements returns every @ConfigProperty occurrence in graph, ordered by
// class name, with a class's methods before its fields.
func Elements(graph *java.Graph) []configprop.Element {
	var out []configprop.Element
	for _, c := range graph.Classes() {
		for i := range c.Methods {
			m := &c.Methods[i]
			if m.IsConstructor {
				continue
			}
			if ann := m.Annotation(connector.ConfigPropertyAnnotation...); ann != nil {
				out = append(out, configprop.Element{Class: c, Method: m, Annotation: ann})
			}
		}
		for i := range c.Fields {
			f := &c.Fields[i]
			if ann := f.Annotation(connector.ConfigPropertyAnnotation...); ann != nil {
				out = append(out, configprop.Element{Class: c, Field: f, Annotation: ann})
			}
		}
	}
	return out
}
