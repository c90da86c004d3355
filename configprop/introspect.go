package configprop

import (
	"strings"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// TypeSource answers the structural questions the engine asks about
// classes. *java.Graph implements it.
type TypeSource interface {
	Class(name string) (*java.ClassModel, bool)
	Superclass(c *java.ClassModel) (*java.ClassModel, bool)
	HasCapability(c *java.ClassModel, capabilities ...string) bool
	IsAssignable(to, from string) bool
}

var _ TypeSource = (*java.Graph)(nil)

// configPropertyOfField returns the @ConfigProperty annotation of f, or
// nil.
func configPropertyOfField(f *java.FieldModel) *java.AnnotationModel {
	return f.Annotation(connector.ConfigPropertyAnnotation...)
}

func configPropertyOfMethod(m *java.MethodModel) *java.AnnotationModel {
	return m.Annotation(connector.ConfigPropertyAnnotation...)
}

// annotationType returns the type element of a @ConfigProperty annotation,
// which defaults to java.lang.Object.
func annotationType(ann *java.AnnotationModel) string {
	if ann == nil {
		return java.ObjectType
	}
	if t, ok := ann.String("type"); ok && t != "" {
		return t
	}
	return java.ObjectType
}

// ResolveType returns the annotation type unless it is unspecified, in which
// case the structural type of the member is used.
func ResolveType(annotationType, structuralType string) string {
	if annotationType == "" || annotationType == java.ObjectType {
		return structuralType
	}
	return annotationType
}

// PropertyName returns the config-property name of a setter: the method
// name without its "set" prefix, capitalization unchanged.
func PropertyName(setter string) string {
	return strings.TrimPrefix(setter, "set")
}

// ValidateSetter checks that m is a JavaBean setter whose parameter can
// receive values of the annotation type.
func ValidateSetter(types TypeSource, class *java.ClassModel, m *java.MethodModel, ann *java.AnnotationModel) error {
	if !strings.HasPrefix(m.Name, "set") {
		return newValidationError(class.Name, m.Name, NotASetter,
			"not a standard JavaBean setter method : [%s ] ", m.Name)
	}
	// Protected and package-private setters are accepted; a subclass may
	// widen them.
	if m.Visibility == java.VisibilityPrivate {
		return newValidationError(class.Name, m.Name, Visibility,
			"@ConfigProperty annotation on a private setter method [ %s ] of class [ %s ]", m.Name, class.Name)
	}
	switch len(m.Parameters) {
	case 0:
		return newValidationError(class.Name, m.Name, Arity,
			"no parameters for JavaBean setter method :  [%s ] ", m.Name)
	case 1:
	default:
		return newValidationError(class.Name, m.Name, Arity,
			"more than one parameter for JavaBean setter method : [%s ] ", m.Name)
	}

	typ := annotationType(ann)
	propertyType := m.Parameters[0].Type.String()
	if !compatible(types, propertyType, typ) {
		return newValidationError(class.Name, m.Name, IncompatibleType,
			"annotation type [%s] and property-type [%s] are not assignment compatible", typ, propertyType)
	}
	return nil
}

// ValidateField checks that f can hold values of the annotation type.
func ValidateField(types TypeSource, class *java.ClassModel, f *java.FieldModel, ann *java.AnnotationModel) error {
	typ := annotationType(ann)
	fieldType := f.Type.String()
	if !compatible(types, fieldType, typ) {
		return newValidationError(class.Name, f.Name, IncompatibleType,
			"annotation type [%s] and return-type [%s] are not assignment compatible for @ConfigProperty in field [ %s ] of class [ %s ]",
			typ, fieldType, f.Name, class.Name)
	}
	return nil
}

// compatible reports whether a member of type memberType accepts values of
// the annotation type. A primitive on either side is promoted to its wrapper
// before the second check.
func compatible(types TypeSource, memberType, annotated string) bool {
	if annotated == java.ObjectType || types.IsAssignable(memberType, annotated) {
		return true
	}
	return types.IsAssignable(java.Boxed(memberType), java.Boxed(annotated))
}
