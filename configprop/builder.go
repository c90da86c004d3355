package configprop

import (
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// Build creates a config property. Only the first description is kept and
// an empty default is not stored.
func Build(defaultValue string, descriptions []string, ignore, supportsDynamicUpdates, confidential bool, typ, name string) *connector.ConfigProperty {
	p := &connector.ConfigProperty{
		Name: name,
		Type: typ,
	}
	if len(descriptions) > 0 {
		p.Description = descriptions[0]
	}
	if defaultValue != "" {
		p.Value = defaultValue
	}
	p.SetIgnore(ignore)
	p.SetConfidential(confidential)
	p.SetSupportsDynamicUpdates(supportsDynamicUpdates)
	return p
}

// buildFromAnnotation builds the property described by a @ConfigProperty
// annotation on a member of the given structural type.
func buildFromAnnotation(ann *java.AnnotationModel, name, structuralType, defaultValue string) *connector.ConfigProperty {
	return Build(
		defaultValue,
		ann.Strings("description"),
		ann.Bool("ignore"),
		ann.Bool("supportsDynamicUpdates"),
		ann.Bool("confidential"),
		ResolveType(annotationType(ann), structuralType),
		name,
	)
}

func annotationDefault(ann *java.AnnotationModel) string {
	v, _ := ann.String("defaultValue")
	return v
}
