package java

import "fmt"

// AnnotationModel is one annotation instance. Values holds element values
// keyed by element name: strings for string literals, class literals (as
// qualified type names) and other constants, bools for boolean literals,
// []any for array initializers and AnnotationModel for nested annotations.
type AnnotationModel struct {
	Type   string         `yaml:"type"`
	Values map[string]any `yaml:"values,omitempty"`
}

// Is reports whether the annotation has one of the given qualified types.
func (a AnnotationModel) Is(types ...string) bool {
	for _, t := range types {
		if a.Type == t {
			return true
		}
	}
	return false
}

func (a AnnotationModel) String(name string) (string, bool) {
	v, ok := a.Values[name]
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case []any:
		if len(v) == 1 {
			return fmt.Sprint(v[0]), true
		}
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

func (a AnnotationModel) Bool(name string) bool {
	switch v := a.Values[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Strings returns an array-valued element. A single value is treated as a
// one-element array, matching Java's shorthand for array elements.
func (a AnnotationModel) Strings(name string) []string {
	v, ok := a.Values[name]
	if !ok || v == nil {
		return nil
	}
	switch v := v.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case []string:
		return v
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Annotations returns nested annotation values of an array-valued element.
func (a AnnotationModel) Annotations(name string) []AnnotationModel {
	switch v := a.Values[name].(type) {
	case AnnotationModel:
		return []AnnotationModel{v}
	case map[string]any:
		if ann, ok := annotationFromMap(v); ok {
			return []AnnotationModel{ann}
		}
	case []any:
		var out []AnnotationModel
		for _, e := range v {
			switch e := e.(type) {
			case AnnotationModel:
				out = append(out, e)
			case map[string]any:
				if ann, ok := annotationFromMap(e); ok {
					out = append(out, ann)
				}
			}
		}
		return out
	}
	return nil
}

// annotationFromMap converts a nested annotation decoded from a YAML type
// table, which arrives as a plain map.
func annotationFromMap(m map[string]any) (AnnotationModel, bool) {
	t, ok := m["type"].(string)
	if !ok {
		return AnnotationModel{}, false
	}
	ann := AnnotationModel{Type: t}
	if values, ok := m["values"].(map[string]any); ok {
		ann.Values = values
	}
	return ann, true
}
