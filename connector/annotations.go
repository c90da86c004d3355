package connector

// Qualified names of the connector SPI types and annotations. Every name is
// listed in the jakarta namespace first and the legacy javax namespace
// second; callers match either.
var (
	ConfigPropertyAnnotation        = names("ConfigProperty")
	ConnectorAnnotation             = names("Connector")
	ActivationAnnotation            = names("Activation")
	AdministeredObjectAnnotation    = names("AdministeredObject")
	ConnectionDefinitionAnnotation  = names("ConnectionDefinition")
	ConnectionDefinitionsAnnotation = names("ConnectionDefinitions")

	ResourceAdapterType            = names("ResourceAdapter")
	ManagedConnectionFactoryType   = names("ManagedConnectionFactory")
	ActivationSpecType             = names("ActivationSpec")
	ResourceAdapterAssociationType = names("ResourceAdapterAssociation")
)

// Interfaces that never count as administered-object interfaces when they
// are derived from the implementation class.
var adminObjectExcludedInterfaces = append([]string{
	"java.io.Serializable",
	"java.io.Externalizable",
}, ResourceAdapterAssociationType...)

func names(simple string) []string {
	return []string{
		"jakarta.resource.spi." + simple,
		"javax.resource.spi." + simple,
	}
}

// IsAdminObjectInterfaceCandidate reports whether a directly implemented
// interface can identify an administered object.
func IsAdminObjectInterfaceCandidate(intf string) bool {
	for _, excluded := range adminObjectExcludedInterfaces {
		if intf == excluded {
			return false
		}
	}
	return true
}
