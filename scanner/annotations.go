package scanner

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/raconfig/configprop"
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// ApplyTypeAnnotations adds what the class-level connector annotations
// declare to desc. Entries already present, usually from ra.xml, take
// precedence over annotations describing the same entity.
func ApplyTypeAnnotations(desc *connector.Descriptor, graph *java.Graph, log commonlog.Logger) {
	classes := graph.Classes()
	designateResourceAdapter(desc, graph, classes, log)
	for _, c := range classes {
		applyConnectionDefinitions(desc, graph, c, log)
		applyActivation(desc, c)
		applyAdministeredObject(desc, graph, c, log)
	}
}

// designateResourceAdapter picks the resource adapter class when the
// descriptor names none: the only class annotated @Connector, or failing
// that the only concrete ResourceAdapter.
func designateResourceAdapter(desc *connector.Descriptor, graph *java.Graph, classes []*java.ClassModel, log commonlog.Logger) {
	var annotated, implementing []*java.ClassModel
	for _, c := range classes {
		if c.HasAnnotation(connector.ConnectorAnnotation...) {
			annotated = append(annotated, c)
		}
		if c.IsConcrete() && graph.HasCapability(c, connector.ResourceAdapterType...) {
			implementing = append(implementing, c)
		}
	}

	if desc.ResourceAdapterClass == "" {
		candidates := annotated
		if len(candidates) == 0 {
			candidates = implementing
		}
		switch len(candidates) {
		case 0:
		case 1:
			desc.ResourceAdapterClass = candidates[0].Name
			log.Info("designated resource adapter", "class", desc.ResourceAdapterClass)
		default:
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = c.Name
			}
			log.Warning("cannot designate a resource adapter class", "candidates", names)
		}
	}

	for _, c := range annotated {
		if c.Name == desc.ResourceAdapterClass {
			applyConnectorMetadata(desc, c.Annotation(connector.ConnectorAnnotation...))
		}
	}
}

func applyConnectorMetadata(desc *connector.Descriptor, ann *java.AnnotationModel) {
	fill := func(dst *string, element string) {
		if *dst != "" {
			return
		}
		if vs := ann.Strings(element); len(vs) > 0 {
			*dst = vs[0]
		}
	}
	fill(&desc.DisplayName, "displayName")
	fill(&desc.Description, "description")
	fill(&desc.VendorName, "vendorName")
	fill(&desc.EISType, "eisType")
	fill(&desc.ResourceAdapterVersion, "version")

	if !desc.OutboundDefined() {
		return
	}
	if desc.Outbound.TransactionSupport == "" {
		if ts, ok := ann.String("transactionSupport"); ok {
			desc.Outbound.TransactionSupport = simpleConstant(ts)
		}
	}
	if !desc.Outbound.ReauthenticationSupport {
		desc.Outbound.ReauthenticationSupport = ann.Bool("reauthenticationSupport")
	}
}

// simpleConstant strips the type from an enum constant such as
// "TransactionSupportLevel.LocalTransaction".
func simpleConstant(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}

func applyConnectionDefinitions(desc *connector.Descriptor, graph *java.Graph, c *java.ClassModel, log commonlog.Logger) {
	var defs []java.AnnotationModel
	if ann := c.Annotation(connector.ConnectionDefinitionAnnotation...); ann != nil {
		defs = append(defs, *ann)
	}
	if ann := c.Annotation(connector.ConnectionDefinitionsAnnotation...); ann != nil {
		defs = append(defs, ann.Annotations("value")...)
	}
	if len(defs) == 0 {
		return
	}
	if !graph.HasCapability(c, connector.ManagedConnectionFactoryType...) {
		log.Warningf("@ConnectionDefinition on class [ %s ] which is not a ManagedConnectionFactory", c.Name)
		return
	}
	for _, def := range defs {
		factory, _ := def.String("connectionFactory")
		if factory == "" {
			log.Warningf("@ConnectionDefinition on class [ %s ] names no connection factory", c.Name)
			continue
		}
		if desc.Outbound.ConnectionDefinition(factory) != nil {
			continue
		}
		cd := &connector.ConnectionDefinition{
			ManagedConnectionFactoryClass: c.Name,
			ConnectionFactoryInterface:    factory,
		}
		cd.ConnectionFactoryImplClass, _ = def.String("connectionFactoryImpl")
		cd.ConnectionInterface, _ = def.String("connection")
		cd.ConnectionImplClass, _ = def.String("connectionImpl")
		desc.EnsureOutbound().AddConnectionDefinition(cd)
	}
}

func applyActivation(desc *connector.Descriptor, c *java.ClassModel) {
	ann := c.Annotation(connector.ActivationAnnotation...)
	if ann == nil {
		return
	}
	for _, listener := range ann.Strings("messageListeners") {
		if desc.Inbound.HasMessageListenerType(listener) {
			continue
		}
		desc.EnsureInbound().AddMessageListener(&connector.MessageListener{
			Type:                listener,
			ActivationSpecClass: c.Name,
		})
	}
}

func applyAdministeredObject(desc *connector.Descriptor, graph *java.Graph, c *java.ClassModel, log commonlog.Logger) {
	ann := c.Annotation(connector.AdministeredObjectAnnotation...)
	if ann == nil {
		return
	}
	interfaces := ann.Strings("adminObjectInterfaces")
	if len(interfaces) == 0 {
		interfaces = configprop.AdminObjectInterfaces(graph, c)
		if len(interfaces) != 1 {
			log.Warningf("@AdministeredObject on class [ %s ] must list its interfaces, found %v", c.Name, interfaces)
			return
		}
	}
	for _, intf := range interfaces {
		desc.AddAdminObject(&connector.AdminObject{Interface: intf, Class: c.Name})
	}
}
