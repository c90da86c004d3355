package configprop

import (
	"fmt"
	"strings"

	"github.com/dhamidi/raconfig/java"
)

// maxConstantDepth bounds how many field-to-field references are followed
// when evaluating an initializer.
const maxConstantDepth = 8

// SourceDefaults evaluates accessors statically from parsed sources. It
// understands accessors whose body is a single return of a literal or of a
// field, and fields initialized with a literal or with another such field.
type SourceDefaults struct {
	Types TypeSource
}

func (s SourceDefaults) TryDefault(class *java.ClassModel, accessor string) (string, bool, error) {
	if !class.IsConcrete() {
		return "", false, fmt.Errorf("cannot instantiate %s %s", kindName(class), class.Name)
	}
	if !class.HasZeroArgConstructor() {
		return "", false, fmt.Errorf("%s.<init>()", class.Name)
	}
	m := class.DeclaredMethod(accessor, 0)
	if m == nil {
		return "", false, fmt.Errorf("%s.%s()", class.Name, accessor)
	}
	if m.IsAbstract || m.ReturnType.IsVoid() {
		return "", false, fmt.Errorf("%s.%s() does not return a value", class.Name, accessor)
	}
	if m.ReturnExpression == "" {
		return "", false, fmt.Errorf("cannot evaluate %s.%s() without running it", class.Name, accessor)
	}
	value, isNull, err := s.evaluate(class, m.ReturnExpression, 0)
	if err != nil {
		return "", false, fmt.Errorf("%s.%s(): %w", class.Name, accessor, err)
	}
	if isNull {
		return "", false, nil
	}
	return java.Widen(value, m.ReturnType), true, nil
}

func (s SourceDefaults) evaluate(class *java.ClassModel, expr string, depth int) (value string, isNull bool, err error) {
	if v, null, ok := java.Literal(expr); ok {
		return v, null, nil
	}
	name := strings.TrimPrefix(strings.TrimSpace(expr), "this.")
	if !isIdentifier(name) {
		return "", false, fmt.Errorf("unsupported expression %q", expr)
	}
	if depth >= maxConstantDepth {
		return "", false, fmt.Errorf("too many indirections evaluating %q", expr)
	}

	owner, f := s.lookupField(class, name)
	if f == nil {
		return "", false, fmt.Errorf("unknown field %q", name)
	}
	if f.Initializer == "" {
		// Constructors may assign the field; their bodies are not modeled.
		if !f.IsStatic && len(owner.Constructors()) > 0 {
			return "", false, fmt.Errorf("field [%s] of class [%s] is assigned outside its declaration", f.Name, owner.Name)
		}
		v, null := java.ZeroValue(f.Type)
		return v, null, nil
	}
	v, null, err := s.evaluate(owner, f.Initializer, depth+1)
	if err != nil {
		return "", false, err
	}
	return java.Widen(v, f.Type), null, nil
}

// lookupField finds name on class or the nearest superclass declaring it.
func (s SourceDefaults) lookupField(class *java.ClassModel, name string) (*java.ClassModel, *java.FieldModel) {
	for c := class; c != nil; {
		if f := c.Field(name); f != nil {
			return c, f
		}
		if s.Types == nil {
			return nil, nil
		}
		next, ok := s.Types.Superclass(c)
		if !ok {
			return nil, nil
		}
		c = next
	}
	return nil, nil
}

func kindName(c *java.ClassModel) string {
	if c.IsInterface() {
		return "interface"
	}
	return "abstract class"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
