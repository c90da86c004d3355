package java

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ObjectType is the root of the class hierarchy. Annotation elements of type
// Class use it as the "unspecified" default.
const ObjectType = "java.lang.Object"

type TypeModel struct {
	Name       string
	ArrayDepth int
}

// ParseTypeName parses a source-style type name such as "int" or
// "java.lang.String[]".
func ParseTypeName(s string) TypeModel {
	s = strings.TrimSpace(s)
	depth := 0
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		depth++
	}
	return TypeModel{Name: s, ArrayDepth: depth}
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t TypeModel) IsPrimitive() bool {
	return t.ArrayDepth == 0 && IsPrimitive(t.Name)
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t TypeModel) IsZero() bool {
	return t.Name == ""
}

// MarshalYAML writes types in their source form so type tables stay
// readable.
func (t TypeModel) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *TypeModel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: type must be a scalar like \"int\" or \"java.lang.String[]\"", node.Line)
	}
	*t = ParseTypeName(node.Value)
	return nil
}

var wrappers = map[string]string{
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"short":   "java.lang.Short",
	"char":    "java.lang.Character",
	"byte":    "java.lang.Byte",
	"boolean": "java.lang.Boolean",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

func IsPrimitive(name string) bool {
	_, ok := wrappers[name]
	return ok
}

// Wrapper returns the boxed class of a primitive type. Calling it with a
// name that is not a primitive type is a programming error and panics.
func Wrapper(primitive string) string {
	w, ok := wrappers[primitive]
	if !ok {
		panic(fmt.Sprintf("could not determine wrapper class for primitive type [%s]", primitive))
	}
	return w
}

// Boxed returns the wrapper of a primitive type name and any other name
// unchanged.
func Boxed(name string) string {
	if IsPrimitive(name) {
		return Wrapper(name)
	}
	return name
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func packageName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}
