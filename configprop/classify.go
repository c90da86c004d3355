package configprop

import (
	"fmt"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// Role is the kind of descriptor entity a class configures.
type Role int

const (
	RoleUnclassified Role = iota
	RoleResourceAdapter
	RoleConnectionFactoryImpl
	RoleActivationSpec
	RoleAdministeredObject
)

func (r Role) String() string {
	switch r {
	case RoleUnclassified:
		return "unclassified"
	case RoleResourceAdapter:
		return "resource-adapter"
	case RoleConnectionFactoryImpl:
		return "connection-factory"
	case RoleActivationSpec:
		return "activation-spec"
	case RoleAdministeredObject:
		return "administered-object"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Classify determines the role of class. The checks run in a fixed order
// and the first match wins:
//
//  1. a concrete ResourceAdapter, or a class annotated @Connector
//  2. a concrete ManagedConnectionFactory
//  3. a concrete ActivationSpec, or a class annotated @Activation
//  4. a class annotated @AdministeredObject, or the class of an
//     administered object in the descriptor
func Classify(types TypeSource, class *java.ClassModel, desc *connector.Descriptor) Role {
	concrete := class.IsConcrete()
	switch {
	case concrete && types.HasCapability(class, connector.ResourceAdapterType...),
		class.HasAnnotation(connector.ConnectorAnnotation...):
		return RoleResourceAdapter
	case concrete && types.HasCapability(class, connector.ManagedConnectionFactoryType...):
		return RoleConnectionFactoryImpl
	case concrete && types.HasCapability(class, connector.ActivationSpecType...),
		class.HasAnnotation(connector.ActivationAnnotation...):
		return RoleActivationSpec
	case class.HasAnnotation(connector.AdministeredObjectAnnotation...),
		desc != nil && len(desc.AdminObjectsByClass(class.Name)) > 0:
		return RoleAdministeredObject
	}
	return RoleUnclassified
}
