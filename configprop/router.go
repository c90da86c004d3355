package configprop

import (
	"fmt"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// Route attaches property to the descriptor entities configured by class
// in the given role. The first attachment to an entity also backfills the
// properties class inherits, once per processed-set key.
func (h *Handler) Route(role Role, class *java.ClassModel, property *connector.ConfigProperty, desc *connector.Descriptor) error {
	switch role {
	case RoleResourceAdapter:
		return h.routeResourceAdapter(class, property, desc)
	case RoleConnectionFactoryImpl:
		return h.routeConnectionFactory(class, property, desc)
	case RoleActivationSpec:
		return h.routeActivationSpec(class, property, desc)
	case RoleAdministeredObject:
		return h.routeAdministeredObject(class, property, desc)
	case RoleUnclassified:
		h.log.Debug("ignoring config property of unclassified class", "class", class.Name, "property", property.Name)
		return nil
	}
	return fmt.Errorf("unknown role %v", role)
}

// attach adds a copy of property to target. The first time key is seen it
// also adds the other properties declared on class and then those of its
// ancestors, so a subclass declaration always wins over the one it
// overrides whatever order the elements arrive in. Invalid members of
// class are left to fail when they are processed themselves.
func (h *Handler) attach(desc *connector.Descriptor, key string, class *java.ClassModel, property *connector.ConfigProperty, target *connector.PropertySet) error {
	p := *property
	if !target.Add(&p) {
		h.log.Debug("config property already defined", "class", class.Name, "property", property.Name)
	}
	if desc.Processed.Contains(key) {
		return nil
	}
	h.collectDeclared(class, target, false)
	if err := h.ResolveAncestors(class, target); err != nil {
		return err
	}
	desc.Processed.Add(key)
	return nil
}

func (h *Handler) routeResourceAdapter(class *java.ClassModel, property *connector.ConfigProperty, desc *connector.Descriptor) error {
	if desc.ResourceAdapterClass != class.Name {
		return &DeferredError{
			Class:  class.Name,
			Role:   RoleResourceAdapter,
			Reason: fmt.Sprintf("resource adapter class is [ %s ]", desc.ResourceAdapterClass),
		}
	}
	return h.attach(desc, class.Name, class, property, &desc.ConfigProperties)
}

// routeConnectionFactory keys the processed set by connection-factory
// interface: one managed connection factory may back several definitions.
func (h *Handler) routeConnectionFactory(class *java.ClassModel, property *connector.ConfigProperty, desc *connector.Descriptor) error {
	if !desc.OutboundDefined() {
		return ErrOutboundNotDefined
	}
	for _, cd := range desc.Outbound.ConnectionDefinitions {
		if cd.ManagedConnectionFactoryClass != class.Name {
			continue
		}
		if err := h.attach(desc, cd.ConnectionFactoryInterface, class, property, &cd.ConfigProperties); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) routeActivationSpec(class *java.ClassModel, property *connector.ConfigProperty, desc *connector.Descriptor) error {
	if !desc.InboundDefined() {
		return nil
	}
	var listeners []*connector.MessageListener
	if ann := class.Annotation(connector.ActivationAnnotation...); ann != nil {
		for _, t := range ann.Strings("messageListeners") {
			if ml := desc.Inbound.MessageListener(t); ml != nil {
				listeners = append(listeners, ml)
			}
		}
	} else {
		listeners = desc.Inbound.MessageListeners
	}
	for _, ml := range listeners {
		// ra.xml may bind the listener type to another activation spec.
		if ml.ActivationSpecClass != class.Name {
			continue
		}
		if err := h.attach(desc, class.Name, class, property, &ml.ConfigProperties); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) routeAdministeredObject(class *java.ClassModel, property *connector.ConfigProperty, desc *connector.Descriptor) error {
	ann := class.Annotation(connector.AdministeredObjectAnnotation...)
	if ann == nil {
		for _, ao := range desc.AdminObjectsByClass(class.Name) {
			if err := h.attach(desc, ao.Key(), class, property, &ao.ConfigProperties); err != nil {
				return err
			}
		}
		return nil
	}

	interfaces := ann.Strings("adminObjectInterfaces")
	if len(interfaces) == 0 {
		derived := AdminObjectInterfaces(h.types, class)
		if len(derived) != 1 {
			h.log.Debug("cannot derive administered object interface", "class", class.Name, "candidates", derived)
			return nil
		}
		interfaces = derived
	}
	for _, intf := range interfaces {
		ao := desc.AdminObject(intf, class.Name)
		if ao == nil {
			h.log.Warningf("could not get adminobject of interface [ %s ] and class [ %s ]", intf, class.Name)
			continue
		}
		if err := h.attach(desc, class.Name, class, property, &ao.ConfigProperties); err != nil {
			return err
		}
	}
	return nil
}

// AdminObjectInterfaces returns the interfaces implemented directly by class
// or one of its superclasses that can identify an administered object.
func AdminObjectInterfaces(types TypeSource, class *java.ClassModel) []string {
	var out []string
	seen := map[string]bool{}
	for c, ok := class, true; ok; c, ok = types.Superclass(c) {
		for _, intf := range c.Interfaces {
			if seen[intf] || !connector.IsAdminObjectInterfaceCandidate(intf) {
				continue
			}
			seen[intf] = true
			out = append(out, intf)
		}
	}
	return out
}
