package configprop

import (
	"errors"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// ResolveAncestors walks the superclasses of class, nearest first, and adds
// every config property they declare to target unless target already holds
// one with the same name. A member that fails validation aborts the walk
// with a *StructuralError.
func (h *Handler) ResolveAncestors(class *java.ClassModel, target *connector.PropertySet) error {
	for c, ok := h.types.Superclass(class); ok; c, ok = h.types.Superclass(c) {
		h.log.Debug("resolving ancestor", "class", class.Name, "ancestor", c.Name)
		if err := h.collectDeclared(c, target, true); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return &StructuralError{Class: c.Name, Err: verr}
			}
			return err
		}
	}
	return nil
}

// collectDeclared adds the properties declared directly on c, setters
// before fields. When strict is unset, members already present in target
// are not rebuilt and invalid members are skipped instead of aborting.
func (h *Handler) collectDeclared(c *java.ClassModel, target *connector.PropertySet, strict bool) error {
	for i := range c.Methods {
		m := &c.Methods[i]
		if m.IsConstructor {
			continue
		}
		ann := configPropertyOfMethod(m)
		if ann == nil || (!strict && target.Has(PropertyName(m.Name))) {
			continue
		}
		p, err := h.setterProperty(c, m, ann)
		if err != nil {
			if strict {
				return err
			}
			continue
		}
		target.Add(p)
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		ann := configPropertyOfField(f)
		if ann == nil || (!strict && target.Has(f.Name)) {
			continue
		}
		p, err := h.fieldProperty(c, f, ann)
		if err != nil {
			if strict {
				return err
			}
			continue
		}
		target.Add(p)
	}
	return nil
}

func (h *Handler) setterProperty(c *java.ClassModel, m *java.MethodModel, ann *java.AnnotationModel) (*connector.ConfigProperty, error) {
	if err := ValidateSetter(h.types, c, m, ann); err != nil {
		return nil, err
	}
	return buildFromAnnotation(ann, PropertyName(m.Name), m.Parameters[0].Type.String(), annotationDefault(ann)), nil
}

func (h *Handler) fieldProperty(c *java.ClassModel, f *java.FieldModel, ann *java.AnnotationModel) (*connector.ConfigProperty, error) {
	if err := ValidateField(h.types, c, f, ann); err != nil {
		return nil, err
	}
	value := annotationDefault(ann)
	if value == "" {
		value = h.DeriveDefault(c, f.Name, f.Type)
	}
	return buildFromAnnotation(ann, f.Name, f.Type.String(), value), nil
}
