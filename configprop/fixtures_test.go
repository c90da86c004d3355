package configprop

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/raconfig/java"
)

const configPropertyType = "jakarta.resource.spi.ConfigProperty"

func configProperty(values map[string]any) java.AnnotationModel {
	return java.AnnotationModel{Type: configPropertyType, Values: values}
}

func class(name, super string, interfaces ...string) *java.ClassModel {
	return &java.ClassModel{
		Name:       name,
		SuperClass: super,
		Interfaces: interfaces,
		Kind:       java.ClassKindClass,
		Visibility: java.VisibilityPublic,
	}
}

func setter(name, paramType string, ann java.AnnotationModel) java.MethodModel {
	return java.MethodModel{
		Name:        name,
		ReturnType:  java.ParseTypeName("void"),
		Parameters:  []java.ParameterModel{{Name: "v", Type: java.ParseTypeName(paramType)}},
		Visibility:  java.VisibilityPublic,
		Annotations: []java.AnnotationModel{ann},
	}
}

func getter(name, returnType, expr string) java.MethodModel {
	return java.MethodModel{
		Name:             name,
		ReturnType:       java.ParseTypeName(returnType),
		Visibility:       java.VisibilityPublic,
		ReturnExpression: expr,
	}
}

func field(name, typ, initializer string, anns ...java.AnnotationModel) java.FieldModel {
	return java.FieldModel{
		Name:        name,
		Type:        java.ParseTypeName(typ),
		Visibility:  java.VisibilityPrivate,
		Initializer: initializer,
		Annotations: anns,
	}
}

// countingTypes records every superclass lookup.
type countingTypes struct {
	*java.Graph
	lookups []string
}

func newCountingTypes(classes ...*java.ClassModel) *countingTypes {
	return &countingTypes{Graph: java.NewGraph(classes...)}
}

func (c *countingTypes) Superclass(class *java.ClassModel) (*java.ClassModel, bool) {
	c.lookups = append(c.lookups, class.Name)
	return c.Graph.Superclass(class)
}

type recordingLogger struct {
	commonlog.MockLogger
	warnings []string
}

func (l *recordingLogger) Warning(message string, keysAndValues ...any) {
	l.warnings = append(l.warnings, message)
}

func (l *recordingLogger) Warningf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
