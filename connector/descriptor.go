package connector

// Descriptor is the deployment descriptor of one resource adapter module.
// It is built by DecodeRAXML (or by hand) before annotation processing and
// then mutated in place by a single, sequential resolution pass.
type Descriptor struct {
	ModuleName             string `json:"moduleName,omitempty" yaml:"moduleName,omitempty"`
	DisplayName            string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description            string `json:"description,omitempty" yaml:"description,omitempty"`
	VendorName             string `json:"vendorName,omitempty" yaml:"vendorName,omitempty"`
	EISType                string `json:"eisType,omitempty" yaml:"eisType,omitempty"`
	ResourceAdapterVersion string `json:"resourceAdapterVersion,omitempty" yaml:"resourceAdapterVersion,omitempty"`

	// Version is the connector schema version declared by the descriptor.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// ResourceAdapterClass designates the ResourceAdapter implementation.
	// Empty until the descriptor or an @Connector annotation names one.
	ResourceAdapterClass string      `json:"resourceAdapterClass,omitempty" yaml:"resourceAdapterClass,omitempty"`
	ConfigProperties     PropertySet `json:"configProperties" yaml:"configProperties"`

	// Outbound and Inbound are nil when the adapter defines no outbound or
	// inbound side.
	Outbound     *OutboundAdapter `json:"outbound,omitempty" yaml:"outbound,omitempty"`
	Inbound      *InboundAdapter  `json:"inbound,omitempty" yaml:"inbound,omitempty"`
	AdminObjects []*AdminObject   `json:"adminObjects,omitempty" yaml:"adminObjects,omitempty"`

	Processed ProcessedSet `json:"-" yaml:"-"`
}

func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

func (d *Descriptor) OutboundDefined() bool {
	return d.Outbound != nil
}

func (d *Descriptor) InboundDefined() bool {
	return d.Inbound != nil
}

// EnsureOutbound returns the outbound adapter, creating it if needed.
func (d *Descriptor) EnsureOutbound() *OutboundAdapter {
	if d.Outbound == nil {
		d.Outbound = &OutboundAdapter{}
	}
	return d.Outbound
}

func (d *Descriptor) EnsureInbound() *InboundAdapter {
	if d.Inbound == nil {
		d.Inbound = &InboundAdapter{}
	}
	return d.Inbound
}

// AdminObject returns the administered object registered for the given
// interface and implementation class, or nil.
func (d *Descriptor) AdminObject(intf, class string) *AdminObject {
	for _, ao := range d.AdminObjects {
		if ao.Interface == intf && ao.Class == class {
			return ao
		}
	}
	return nil
}

// AdminObjectsByClass returns every administered object implemented by
// class, in descriptor order.
func (d *Descriptor) AdminObjectsByClass(class string) []*AdminObject {
	var out []*AdminObject
	for _, ao := range d.AdminObjects {
		if ao.Class == class {
			out = append(out, ao)
		}
	}
	return out
}

// AddAdminObject registers ao unless an entry with the same interface and
// class exists, and reports whether it was added.
func (d *Descriptor) AddAdminObject(ao *AdminObject) bool {
	if d.AdminObject(ao.Interface, ao.Class) != nil {
		return false
	}
	d.AdminObjects = append(d.AdminObjects, ao)
	return true
}

type OutboundAdapter struct {
	TransactionSupport       string                  `json:"transactionSupport,omitempty" yaml:"transactionSupport,omitempty"`
	ReauthenticationSupport  bool                    `json:"reauthenticationSupport,omitempty" yaml:"reauthenticationSupport,omitempty"`
	AuthenticationMechanisms []string                `json:"authenticationMechanisms,omitempty" yaml:"authenticationMechanisms,omitempty"`
	ConnectionDefinitions    []*ConnectionDefinition `json:"connectionDefinitions,omitempty" yaml:"connectionDefinitions,omitempty"`
}

// ConnectionDefinition returns the definition for a connection-factory
// interface, or nil.
func (o *OutboundAdapter) ConnectionDefinition(factoryInterface string) *ConnectionDefinition {
	if o == nil {
		return nil
	}
	for _, cd := range o.ConnectionDefinitions {
		if cd.ConnectionFactoryInterface == factoryInterface {
			return cd
		}
	}
	return nil
}

// AddConnectionDefinition registers cd unless its connection-factory
// interface is already defined, and reports whether it was added.
func (o *OutboundAdapter) AddConnectionDefinition(cd *ConnectionDefinition) bool {
	if o.ConnectionDefinition(cd.ConnectionFactoryInterface) != nil {
		return false
	}
	o.ConnectionDefinitions = append(o.ConnectionDefinitions, cd)
	return true
}

// ConnectionDefinition is keyed by its connection-factory interface. Several
// definitions may share one managed connection factory class.
type ConnectionDefinition struct {
	ManagedConnectionFactoryClass string      `json:"managedConnectionFactoryClass" yaml:"managedConnectionFactoryClass"`
	ConnectionFactoryInterface    string      `json:"connectionFactoryInterface" yaml:"connectionFactoryInterface"`
	ConnectionFactoryImplClass    string      `json:"connectionFactoryImplClass,omitempty" yaml:"connectionFactoryImplClass,omitempty"`
	ConnectionInterface           string      `json:"connectionInterface,omitempty" yaml:"connectionInterface,omitempty"`
	ConnectionImplClass           string      `json:"connectionImplClass,omitempty" yaml:"connectionImplClass,omitempty"`
	ConfigProperties              PropertySet `json:"configProperties" yaml:"configProperties"`
}

type InboundAdapter struct {
	MessageListeners []*MessageListener `json:"messageListeners,omitempty" yaml:"messageListeners,omitempty"`
}

func (in *InboundAdapter) HasMessageListenerType(listenerType string) bool {
	return in.MessageListener(listenerType) != nil
}

// MessageListener returns the listener for a message-listener type, or nil.
func (in *InboundAdapter) MessageListener(listenerType string) *MessageListener {
	if in == nil {
		return nil
	}
	for _, ml := range in.MessageListeners {
		if ml.Type == listenerType {
			return ml
		}
	}
	return nil
}

func (in *InboundAdapter) AddMessageListener(ml *MessageListener) bool {
	if in.HasMessageListenerType(ml.Type) {
		return false
	}
	in.MessageListeners = append(in.MessageListeners, ml)
	return true
}

// MessageListener is keyed by its listener interface type.
type MessageListener struct {
	Type                     string      `json:"type" yaml:"type"`
	ActivationSpecClass      string      `json:"activationSpecClass" yaml:"activationSpecClass"`
	RequiredConfigProperties []string    `json:"requiredConfigProperties,omitempty" yaml:"requiredConfigProperties,omitempty"`
	ConfigProperties         PropertySet `json:"configProperties" yaml:"configProperties"`
}

// AdminObject is keyed by the pair of interface and implementation class.
type AdminObject struct {
	Interface        string      `json:"interface" yaml:"interface"`
	Class            string      `json:"class" yaml:"class"`
	ConfigProperties PropertySet `json:"configProperties" yaml:"configProperties"`
}

// Key is the processed-set key of a JavaBean-style administered object.
func (ao *AdminObject) Key() string {
	return ao.Interface + "_" + ao.Class
}
