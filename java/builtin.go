package java

// Platform types the resolution engine needs to reason about even when the
// scanned sources never declare them: java.lang boxes and their supertypes
// for assignability checks, and the connector SPI interfaces and annotations
// in both the jakarta and the legacy javax namespace.
var builtinTypes = []*ClassModel{
	builtinInterface("java.io.Serializable"),
	builtinInterface("java.io.Externalizable", "java.io.Serializable"),
	builtinInterface("java.lang.Comparable"),
	builtinInterface("java.lang.CharSequence"),
	builtinInterface("java.lang.Cloneable"),

	{Name: ObjectType, Kind: ClassKindClass, Visibility: VisibilityPublic},
	builtinClass("java.lang.String", ObjectType, "java.io.Serializable", "java.lang.Comparable", "java.lang.CharSequence"),
	builtinAbstractClass("java.lang.Number", ObjectType, "java.io.Serializable"),
	builtinClass("java.lang.Integer", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Long", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Short", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Byte", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Float", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Double", "java.lang.Number", "java.lang.Comparable"),
	builtinClass("java.lang.Boolean", ObjectType, "java.io.Serializable", "java.lang.Comparable"),
	builtinClass("java.lang.Character", ObjectType, "java.io.Serializable", "java.lang.Comparable"),

	builtinInterface("jakarta.resource.Referenceable"),
	builtinInterface("jakarta.resource.spi.ResourceAdapter"),
	builtinInterface("jakarta.resource.spi.ResourceAdapterAssociation"),
	builtinInterface("jakarta.resource.spi.ManagedConnectionFactory", "java.io.Serializable"),
	builtinInterface("jakarta.resource.spi.ActivationSpec", "jakarta.resource.spi.ResourceAdapterAssociation"),
	builtinInterface("javax.resource.Referenceable"),
	builtinInterface("javax.resource.spi.ResourceAdapter"),
	builtinInterface("javax.resource.spi.ResourceAdapterAssociation"),
	builtinInterface("javax.resource.spi.ManagedConnectionFactory", "java.io.Serializable"),
	builtinInterface("javax.resource.spi.ActivationSpec", "javax.resource.spi.ResourceAdapterAssociation"),

	builtinAnnotation("jakarta.resource.spi.ConfigProperty"),
	builtinAnnotation("jakarta.resource.spi.Connector"),
	builtinAnnotation("jakarta.resource.spi.Activation"),
	builtinAnnotation("jakarta.resource.spi.AdministeredObject"),
	builtinAnnotation("jakarta.resource.spi.ConnectionDefinition"),
	builtinAnnotation("jakarta.resource.spi.ConnectionDefinitions"),
	builtinAnnotation("javax.resource.spi.ConfigProperty"),
	builtinAnnotation("javax.resource.spi.Connector"),
	builtinAnnotation("javax.resource.spi.Activation"),
	builtinAnnotation("javax.resource.spi.AdministeredObject"),
	builtinAnnotation("javax.resource.spi.ConnectionDefinition"),
	builtinAnnotation("javax.resource.spi.ConnectionDefinitions"),
}

func builtinClass(name, super string, interfaces ...string) *ClassModel {
	return &ClassModel{
		Name:       name,
		SimpleName: simpleName(name),
		Package:    packageName(name),
		SuperClass: super,
		Interfaces: interfaces,
		Kind:       ClassKindClass,
		Visibility: VisibilityPublic,
		IsFinal:    true,
	}
}

func builtinAbstractClass(name, super string, interfaces ...string) *ClassModel {
	c := builtinClass(name, super, interfaces...)
	c.IsFinal = false
	c.IsAbstract = true
	return c
}

func builtinInterface(name string, extends ...string) *ClassModel {
	return &ClassModel{
		Name:       name,
		SimpleName: simpleName(name),
		Package:    packageName(name),
		Interfaces: extends,
		Kind:       ClassKindInterface,
		Visibility: VisibilityPublic,
		IsAbstract: true,
	}
}

func builtinAnnotation(name string) *ClassModel {
	c := builtinInterface(name)
	c.Kind = ClassKindAnnotation
	return c
}

// javaLangTypes are the java.lang simple names resolvable without an import.
var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true,
	"Number": true, "Comparable": true, "CharSequence": true,
	"Iterable": true, "Cloneable": true, "Runnable": true,
	"Thread": true, "StringBuilder": true, "StringBuffer": true,
	"Math": true, "Enum": true, "Record": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true, "FunctionalInterface": true,
}
