package connector

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const jakartaNamespace = "https://jakarta.ee/xml/ns/jakartaee"

// raXML mirrors the connector deployment descriptor schema. Element names
// are matched in any namespace, so J2EE, Java EE and Jakarta EE descriptors
// decode alike.
type raXML struct {
	XMLName                xml.Name          `xml:"connector"`
	Xmlns                  string            `xml:"xmlns,attr,omitempty"`
	Version                string            `xml:"version,attr,omitempty"`
	MetadataComplete       string            `xml:"metadata-complete,attr,omitempty"`
	ModuleName             string            `xml:"module-name,omitempty"`
	Description            string            `xml:"description,omitempty"`
	DisplayName            string            `xml:"display-name,omitempty"`
	VendorName             string            `xml:"vendor-name,omitempty"`
	EISType                string            `xml:"eis-type,omitempty"`
	ResourceAdapterVersion string            `xml:"resourceadapter-version,omitempty"`
	ResourceAdapter        raResourceAdapter `xml:"resourceadapter"`
}

type raResourceAdapter struct {
	Class            string       `xml:"resourceadapter-class,omitempty"`
	ConfigProperties []raProperty `xml:"config-property"`
	Outbound         *raOutbound  `xml:"outbound-resourceadapter"`
	Inbound          *raInbound   `xml:"inbound-resourceadapter"`
	AdminObjects     []raAdminObj `xml:"adminobject"`
}

type raProperty struct {
	Description            string `xml:"description,omitempty"`
	Name                   string `xml:"config-property-name"`
	Type                   string `xml:"config-property-type,omitempty"`
	Value                  string `xml:"config-property-value,omitempty"`
	Ignore                 *bool  `xml:"config-property-ignore"`
	SupportsDynamicUpdates *bool  `xml:"config-property-supports-dynamic-updates"`
	Confidential           *bool  `xml:"config-property-confidential"`
}

type raOutbound struct {
	ConnectionDefinitions    []raConnectionDefinition `xml:"connection-definition"`
	TransactionSupport       string                   `xml:"transaction-support,omitempty"`
	AuthenticationMechanisms []string                 `xml:"authentication-mechanism>authentication-mechanism-type"`
	ReauthenticationSupport  *bool                    `xml:"reauthentication-support"`
}

type raConnectionDefinition struct {
	ManagedConnectionFactoryClass string       `xml:"managedconnectionfactory-class"`
	ConfigProperties              []raProperty `xml:"config-property"`
	ConnectionFactoryInterface    string       `xml:"connectionfactory-interface"`
	ConnectionFactoryImplClass    string       `xml:"connectionfactory-impl-class,omitempty"`
	ConnectionInterface           string       `xml:"connection-interface,omitempty"`
	ConnectionImplClass           string       `xml:"connection-impl-class,omitempty"`
}

type raInbound struct {
	MessageListeners []raMessageListener `xml:"messageadapter>messagelistener"`
}

type raMessageListener struct {
	Type           string           `xml:"messagelistener-type"`
	ActivationSpec raActivationSpec `xml:"activationspec"`
}

type raActivationSpec struct {
	Class                    string       `xml:"activationspec-class"`
	RequiredConfigProperties []string     `xml:"required-config-property>config-property-name"`
	ConfigProperties         []raProperty `xml:"config-property"`
}

type raAdminObj struct {
	Interface        string       `xml:"adminobject-interface"`
	Class            string       `xml:"adminobject-class"`
	ConfigProperties []raProperty `xml:"config-property"`
}

// DecodeRAXML reads an ra.xml deployment descriptor. Flags present in the
// descriptor are marked as explicitly set so annotations cannot override
// them.
func DecodeRAXML(r io.Reader) (*Descriptor, error) {
	var doc raXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode ra.xml: %w", err)
	}

	ra := doc.ResourceAdapter
	desc := &Descriptor{
		ModuleName:             strings.TrimSpace(doc.ModuleName),
		DisplayName:            strings.TrimSpace(doc.DisplayName),
		Description:            strings.TrimSpace(doc.Description),
		VendorName:             strings.TrimSpace(doc.VendorName),
		EISType:                strings.TrimSpace(doc.EISType),
		ResourceAdapterVersion: strings.TrimSpace(doc.ResourceAdapterVersion),
		Version:                doc.Version,
		ResourceAdapterClass:   strings.TrimSpace(ra.Class),
	}
	if err := decodeProperties(&desc.ConfigProperties, ra.ConfigProperties); err != nil {
		return nil, fmt.Errorf("resourceadapter: %w", err)
	}

	if ra.Outbound != nil {
		out := desc.EnsureOutbound()
		out.TransactionSupport = strings.TrimSpace(ra.Outbound.TransactionSupport)
		out.AuthenticationMechanisms = trimAll(ra.Outbound.AuthenticationMechanisms)
		if ra.Outbound.ReauthenticationSupport != nil {
			out.ReauthenticationSupport = *ra.Outbound.ReauthenticationSupport
		}
		for _, x := range ra.Outbound.ConnectionDefinitions {
			cd := &ConnectionDefinition{
				ManagedConnectionFactoryClass: strings.TrimSpace(x.ManagedConnectionFactoryClass),
				ConnectionFactoryInterface:    strings.TrimSpace(x.ConnectionFactoryInterface),
				ConnectionFactoryImplClass:    strings.TrimSpace(x.ConnectionFactoryImplClass),
				ConnectionInterface:           strings.TrimSpace(x.ConnectionInterface),
				ConnectionImplClass:           strings.TrimSpace(x.ConnectionImplClass),
			}
			if cd.ConnectionFactoryInterface == "" {
				return nil, fmt.Errorf("connection-definition of %q: missing connectionfactory-interface", cd.ManagedConnectionFactoryClass)
			}
			if err := decodeProperties(&cd.ConfigProperties, x.ConfigProperties); err != nil {
				return nil, fmt.Errorf("connection-definition %s: %w", cd.ConnectionFactoryInterface, err)
			}
			if !out.AddConnectionDefinition(cd) {
				return nil, fmt.Errorf("duplicate connection-definition for %s", cd.ConnectionFactoryInterface)
			}
		}
	}

	if ra.Inbound != nil {
		in := desc.EnsureInbound()
		for _, x := range ra.Inbound.MessageListeners {
			ml := &MessageListener{
				Type:                     strings.TrimSpace(x.Type),
				ActivationSpecClass:      strings.TrimSpace(x.ActivationSpec.Class),
				RequiredConfigProperties: trimAll(x.ActivationSpec.RequiredConfigProperties),
			}
			if err := decodeProperties(&ml.ConfigProperties, x.ActivationSpec.ConfigProperties); err != nil {
				return nil, fmt.Errorf("messagelistener %s: %w", ml.Type, err)
			}
			if !in.AddMessageListener(ml) {
				return nil, fmt.Errorf("duplicate messagelistener for %s", ml.Type)
			}
		}
	}

	for _, x := range ra.AdminObjects {
		ao := &AdminObject{
			Interface: strings.TrimSpace(x.Interface),
			Class:     strings.TrimSpace(x.Class),
		}
		if err := decodeProperties(&ao.ConfigProperties, x.ConfigProperties); err != nil {
			return nil, fmt.Errorf("adminobject %s: %w", ao.Key(), err)
		}
		if !desc.AddAdminObject(ao) {
			return nil, fmt.Errorf("duplicate adminobject %s", ao.Key())
		}
	}
	return desc, nil
}

func ReadRAXMLFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	desc, err := DecodeRAXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

func decodeProperties(set *PropertySet, xs []raProperty) error {
	for _, x := range xs {
		p := &ConfigProperty{
			Name:        strings.TrimSpace(x.Name),
			Type:        strings.TrimSpace(x.Type),
			Value:       x.Value,
			Description: strings.TrimSpace(x.Description),
		}
		if p.Name == "" {
			return fmt.Errorf("config-property without config-property-name")
		}
		if x.Ignore != nil {
			p.Ignore, p.IgnoreSet = *x.Ignore, true
		}
		if x.Confidential != nil {
			p.Confidential, p.ConfidentialSet = *x.Confidential, true
		}
		if x.SupportsDynamicUpdates != nil {
			p.SupportsDynamicUpdates, p.SupportsDynamicUpdatesSet = *x.SupportsDynamicUpdates, true
		}
		if !set.Add(p) {
			return fmt.Errorf("duplicate config-property %q", p.Name)
		}
	}
	return nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EncodeRAXML writes desc as a Jakarta EE ra.xml document. Flags are written
// only when true or explicitly set.
func EncodeRAXML(w io.Writer, desc *Descriptor) error {
	version := desc.Version
	if version == "" {
		version = "2.0"
	}
	doc := raXML{
		Xmlns:                  jakartaNamespace,
		Version:                version,
		MetadataComplete:       "true",
		ModuleName:             desc.ModuleName,
		Description:            desc.Description,
		DisplayName:            desc.DisplayName,
		VendorName:             desc.VendorName,
		EISType:                desc.EISType,
		ResourceAdapterVersion: desc.ResourceAdapterVersion,
		ResourceAdapter: raResourceAdapter{
			Class:            desc.ResourceAdapterClass,
			ConfigProperties: encodeProperties(&desc.ConfigProperties),
		},
	}
	if out := desc.Outbound; out != nil {
		x := &raOutbound{
			TransactionSupport:       out.TransactionSupport,
			AuthenticationMechanisms: out.AuthenticationMechanisms,
		}
		if out.ReauthenticationSupport {
			x.ReauthenticationSupport = &out.ReauthenticationSupport
		}
		for _, cd := range out.ConnectionDefinitions {
			x.ConnectionDefinitions = append(x.ConnectionDefinitions, raConnectionDefinition{
				ManagedConnectionFactoryClass: cd.ManagedConnectionFactoryClass,
				ConfigProperties:              encodeProperties(&cd.ConfigProperties),
				ConnectionFactoryInterface:    cd.ConnectionFactoryInterface,
				ConnectionFactoryImplClass:    cd.ConnectionFactoryImplClass,
				ConnectionInterface:           cd.ConnectionInterface,
				ConnectionImplClass:           cd.ConnectionImplClass,
			})
		}
		doc.ResourceAdapter.Outbound = x
	}
	if in := desc.Inbound; in != nil {
		x := &raInbound{}
		for _, ml := range in.MessageListeners {
			x.MessageListeners = append(x.MessageListeners, raMessageListener{
				Type: ml.Type,
				ActivationSpec: raActivationSpec{
					Class:                    ml.ActivationSpecClass,
					RequiredConfigProperties: ml.RequiredConfigProperties,
					ConfigProperties:         encodeProperties(&ml.ConfigProperties),
				},
			})
		}
		doc.ResourceAdapter.Inbound = x
	}
	for _, ao := range desc.AdminObjects {
		doc.ResourceAdapter.AdminObjects = append(doc.ResourceAdapter.AdminObjects, raAdminObj{
			Interface:        ao.Interface,
			Class:            ao.Class,
			ConfigProperties: encodeProperties(&ao.ConfigProperties),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode ra.xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeProperties(set *PropertySet) []raProperty {
	var out []raProperty
	for _, p := range set.All() {
		x := raProperty{
			Description: p.Description,
			Name:        p.Name,
			Type:        p.Type,
			Value:       p.Value,
		}
		if p.Ignore || p.IgnoreSet {
			x.Ignore = boolPtr(p.Ignore)
		}
		if p.SupportsDynamicUpdates || p.SupportsDynamicUpdatesSet {
			x.SupportsDynamicUpdates = boolPtr(p.SupportsDynamicUpdates)
		}
		if p.Confidential || p.ConfidentialSet {
			x.Confidential = boolPtr(p.Confidential)
		}
		out = append(out, x)
	}
	return out
}

func boolPtr(b bool) *bool {
	return &b
}
