package java

import "strings"

// typeResolver turns the type names written in one compilation unit into
// qualified names. Names are looked up in order: types declared in the
// unit, single-type imports, on-demand imports of known types, java.lang,
// and finally the unit's own package.
type typeResolver struct {
	pkg      string
	imports  []string
	declared map[string]string // simple name -> qualified name
}

func newTypeResolver(pkg string, imports []string) *typeResolver {
	return &typeResolver{
		pkg:      pkg,
		imports:  imports,
		declared: make(map[string]string),
	}
}

func (r *typeResolver) declare(simpleName, qualified string) {
	if _, ok := r.declared[simpleName]; !ok {
		r.declared[simpleName] = qualified
	}
}

func (r *typeResolver) resolve(name string) string {
	if name == "" || IsPrimitive(name) || name == "void" {
		return name
	}
	if head, rest, ok := strings.Cut(name, "."); ok {
		// Outer.Inner written against an imported or declared outer type.
		if startsUpper(head) {
			return r.resolve(head) + "." + rest
		}
		return name
	}
	if q, ok := r.declared[name]; ok {
		return q
	}
	for _, imp := range r.imports {
		if strings.HasSuffix(imp, ".*") {
			continue
		}
		if simpleName(imp) == name {
			return imp
		}
	}
	for _, imp := range r.imports {
		pkg, ok := strings.CutSuffix(imp, ".*")
		if !ok {
			continue
		}
		if builtin := pkg + "." + name; isBuiltinName(builtin) {
			return builtin
		}
	}
	if javaLangTypes[name] {
		return "java.lang." + name
	}
	if r.pkg != "" {
		return r.pkg + "." + name
	}
	return name
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func isBuiltinName(name string) bool {
	for _, c := range builtinTypes {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ResolveReferences fixes type references that a single compilation unit
// could not resolve on its own. A simple name pulled in by an on-demand
// import of a package from the same source tree falls back to the
// referencing class's package during parsing; once every class of the tree
// is known those references are rewritten to the imported type.
// Rewriting is idempotent.
func ResolveReferences(classes []*ClassModel) {
	known := make(map[string]bool, len(classes)+len(builtinTypes))
	for _, c := range builtinTypes {
		known[c.Name] = true
	}
	for _, c := range classes {
		known[c.Name] = true
	}
	for _, c := range classes {
		fix := func(name string) string {
			return fixReference(name, c, known)
		}
		c.SuperClass = fix(c.SuperClass)
		for i := range c.Interfaces {
			c.Interfaces[i] = fix(c.Interfaces[i])
		}
		fixAnnotations(c.Annotations, fix)
		for i := range c.Fields {
			f := &c.Fields[i]
			f.Type.Name = fix(f.Type.Name)
			fixAnnotations(f.Annotations, fix)
		}
		for i := range c.Methods {
			m := &c.Methods[i]
			m.ReturnType.Name = fix(m.ReturnType.Name)
			for j := range m.Parameters {
				m.Parameters[j].Type.Name = fix(m.Parameters[j].Type.Name)
			}
			fixAnnotations(m.Annotations, fix)
		}
	}
}

func fixAnnotations(anns []AnnotationModel, fix func(string) string) {
	for i := range anns {
		anns[i].Type = fix(anns[i].Type)
		for k, v := range anns[i].Values {
			anns[i].Values[k] = fixValue(v, fix)
		}
	}
}

// fixValue rewrites class literal values, which are stored as qualified
// names.
func fixValue(v any, fix func(string) string) any {
	switch v := v.(type) {
	case string:
		t := ParseTypeName(v)
		if fixed := fix(t.Name); fixed != t.Name {
			t.Name = fixed
			return t.String()
		}
		return v
	case []any:
		for i := range v {
			v[i] = fixValue(v[i], fix)
		}
		return v
	case AnnotationModel:
		fixAnnotations([]AnnotationModel{v}, fix)
		return v
	}
	return v
}

func fixReference(name string, c *ClassModel, known map[string]bool) string {
	if name == "" || known[name] || IsPrimitive(name) {
		return name
	}
	simple, ok := strings.CutPrefix(name, c.Package+".")
	if c.Package == "" {
		simple, ok = name, true
	}
	if !ok || strings.Contains(simple, ".") {
		return name
	}
	for _, imp := range c.Imports {
		pkg, ok := strings.CutSuffix(imp, ".*")
		if !ok {
			continue
		}
		if candidate := pkg + "." + simple; known[candidate] {
			return candidate
		}
	}
	return name
}
