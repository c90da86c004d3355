// Package connector models the deployment descriptor of a resource adapter:
// the adapter itself, its outbound connection definitions, inbound message
// listeners, administered objects and the configuration properties attached
// to each of them.
package connector

import "encoding/json"

// ConfigProperty is one config-property entry. An empty Value means the
// property has no default.
type ConfigProperty struct {
	Name                   string `json:"name" yaml:"name"`
	Type                   string `json:"type,omitempty" yaml:"type,omitempty"`
	Value                  string `json:"value,omitempty" yaml:"value,omitempty"`
	Description            string `json:"description,omitempty" yaml:"description,omitempty"`
	Ignore                 bool   `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Confidential           bool   `json:"confidential,omitempty" yaml:"confidential,omitempty"`
	SupportsDynamicUpdates bool   `json:"supportsDynamicUpdates,omitempty" yaml:"supportsDynamicUpdates,omitempty"`

	// The *Set markers record flags given explicitly by the descriptor.
	IgnoreSet                 bool `json:"-" yaml:"-"`
	ConfidentialSet           bool `json:"-" yaml:"-"`
	SupportsDynamicUpdatesSet bool `json:"-" yaml:"-"`
}

func (p *ConfigProperty) HasDefault() bool {
	return p.Value != ""
}

// SetIgnore applies an annotation-derived flag unless the descriptor set it.
func (p *ConfigProperty) SetIgnore(v bool) {
	if !p.IgnoreSet {
		p.Ignore = v
	}
}

func (p *ConfigProperty) SetConfidential(v bool) {
	if !p.ConfidentialSet {
		p.Confidential = v
	}
}

func (p *ConfigProperty) SetSupportsDynamicUpdates(v bool) {
	if !p.SupportsDynamicUpdatesSet {
		p.SupportsDynamicUpdates = v
	}
}

// PropertySet is an insertion-ordered set of properties with unique,
// case-sensitive names. The zero value is ready to use.
type PropertySet struct {
	props []*ConfigProperty
	index map[string]int
}

func NewPropertySet(props ...*ConfigProperty) *PropertySet {
	s := &PropertySet{}
	for _, p := range props {
		s.Add(p)
	}
	return s
}

// Add appends p unless a property with the same name is present. The first
// property added under a name wins; Add reports whether p was stored.
func (s *PropertySet) Add(p *ConfigProperty) bool {
	if p == nil || s.Has(p.Name) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[p.Name] = len(s.props)
	s.props = append(s.props, p)
	return true
}

func (s *PropertySet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

func (s *PropertySet) Get(name string) *ConfigProperty {
	if s == nil {
		return nil
	}
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.props[i]
}

// All returns the properties in insertion order. The slice must not be
// modified.
func (s *PropertySet) All() []*ConfigProperty {
	if s == nil {
		return nil
	}
	return s.props
}

func (s *PropertySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.props)
}

func (s *PropertySet) Names() []string {
	names := make([]string, 0, s.Len())
	for _, p := range s.All() {
		names = append(names, p.Name)
	}
	return names
}

func (s PropertySet) MarshalJSON() ([]byte, error) {
	if s.props == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.props)
}

func (s PropertySet) MarshalYAML() (any, error) {
	return s.props, nil
}
