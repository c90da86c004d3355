package configprop

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

// acmeAdapter returns MyRA extends BaseRA, where BaseRA declares poolSize
// as an annotated field and MyRA declares debug as an annotated setter.
func acmeAdapter() (base, ra *java.ClassModel) {
	base = class("com.acme.BaseRA", java.ObjectType, "jakarta.resource.spi.ResourceAdapter")
	base.IsAbstract = true
	base.Fields = []java.FieldModel{
		field("poolSize", "int", "", configProperty(map[string]any{"defaultValue": "10"})),
	}

	ra = class("com.acme.MyRA", "com.acme.BaseRA")
	ra.Methods = []java.MethodModel{
		setter("setDebug", "boolean", configProperty(nil)),
	}
	return base, ra
}

func TestProcessResourceAdapterEitherOrder(t *testing.T) {
	want := []*connector.ConfigProperty{
		{Name: "Debug", Type: "boolean"},
		{Name: "poolSize", Type: "int", Value: "10"},
	}

	for _, reversed := range []bool{false, true} {
		name := "setter first"
		if reversed {
			name = "field first"
		}
		t.Run(name, func(t *testing.T) {
			base, ra := acmeAdapter()
			h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))
			desc := connector.NewDescriptor()
			desc.ResourceAdapterClass = "com.acme.MyRA"

			elements := []Element{
				{Class: ra, Method: &ra.Methods[0]},
				{Class: base, Field: &base.Fields[0]},
			}
			if reversed {
				elements[0], elements[1] = elements[1], elements[0]
			}
			for _, el := range elements {
				if err := h.Process(desc, el); err != nil {
					t.Fatalf("Process(%s): %v", el, err)
				}
			}

			got := desc.ConfigProperties.All()
			sortByName := cmpopts.SortSlices(func(a, b *connector.ConfigProperty) bool { return a.Name < b.Name })
			if diff := cmp.Diff(want, got, sortByName); diff != "" {
				t.Errorf("resource adapter properties mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessOverriddenPropertyEitherOrder(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		name := "sibling first"
		if reversed {
			name = "override first"
		}
		t.Run(name, func(t *testing.T) {
			base := class("com.acme.BaseRA", java.ObjectType)
			base.Methods = []java.MethodModel{
				setter("setTimeout", "int", configProperty(map[string]any{"defaultValue": "5"})),
			}
			ra := class("com.acme.MyRA", base.Name, "jakarta.resource.spi.ResourceAdapter")
			ra.Methods = []java.MethodModel{
				setter("setHost", "java.lang.String", configProperty(nil)),
				setter("setTimeout", "int", configProperty(map[string]any{"defaultValue": "30"})),
			}
			h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))
			desc := connector.NewDescriptor()
			desc.ResourceAdapterClass = ra.Name

			elements := []Element{
				{Class: ra, Method: &ra.Methods[0]},
				{Class: ra, Method: &ra.Methods[1]},
			}
			if reversed {
				elements[0], elements[1] = elements[1], elements[0]
			}
			for _, el := range elements {
				if err := h.Process(desc, el); err != nil {
					t.Fatalf("Process(%s): %v", el, err)
				}
			}

			if got := desc.ConfigProperties.Get("Timeout"); got == nil || got.Value != "30" {
				t.Errorf("Expected the subclass default 30 for Timeout, got %+v", got)
			}
			if desc.ConfigProperties.Len() != 2 {
				t.Errorf("Expected Host and Timeout, got %v", desc.ConfigProperties.Names())
			}
		})
	}
}

func TestProcessKeepsDescriptorProperties(t *testing.T) {
	base, ra := acmeAdapter()
	h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))

	desc := connector.NewDescriptor()
	desc.ResourceAdapterClass = "com.acme.MyRA"
	declared := &connector.ConfigProperty{
		Name:            "poolSize",
		Type:            "java.lang.Integer",
		Value:           "50",
		Confidential:    false,
		ConfidentialSet: true,
	}
	desc.ConfigProperties.Add(declared)

	if err := h.Process(desc, Element{Class: ra, Method: &ra.Methods[0]}); err != nil {
		t.Fatal(err)
	}
	if got := desc.ConfigProperties.Get("poolSize"); got != declared || got.Value != "50" {
		t.Errorf("Expected the declared poolSize to survive, got %+v", got)
	}
	if desc.ConfigProperties.Len() != 2 {
		t.Errorf("Expected 2 properties, got %v", desc.ConfigProperties.Names())
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	base, ra := acmeAdapter()
	h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))
	desc := connector.NewDescriptor()
	desc.ResourceAdapterClass = "com.acme.MyRA"

	el := Element{Class: ra, Method: &ra.Methods[0]}
	for i := 0; i < 2; i++ {
		if err := h.Process(desc, el); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"Debug", "poolSize"}, desc.ConfigProperties.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessDefersUndesignatedAdapter(t *testing.T) {
	base, ra := acmeAdapter()
	h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))
	desc := connector.NewDescriptor()

	err := h.Process(desc, Element{Class: ra, Method: &ra.Methods[0]})
	if StatusOf(err) != StatusDeferred {
		t.Fatalf("Expected deferred, got %v (%v)", StatusOf(err), err)
	}
	var deferred *DeferredError
	if !errors.As(err, &deferred) || deferred.Role != RoleResourceAdapter {
		t.Errorf("Expected a resource adapter DeferredError, got %#v", err)
	}
	if desc.ConfigProperties.Len() != 0 {
		t.Error("Expected nothing to be attached")
	}

	desc.ResourceAdapterClass = "com.acme.MyRA"
	if err := h.Process(desc, Element{Class: ra, Method: &ra.Methods[0]}); err != nil {
		t.Fatalf("Expected the retry to succeed, got %v", err)
	}
}

func TestProcessValidationFailure(t *testing.T) {
	ra := class("com.acme.MyRA", java.ObjectType, "jakarta.resource.spi.ResourceAdapter")
	ra.Methods = []java.MethodModel{
		setter("configure", "java.lang.String", configProperty(nil)),
	}
	log := &recordingLogger{}
	h := NewHandler(java.NewGraph(ra), WithLogger(log))
	desc := connector.NewDescriptor()
	desc.ResourceAdapterClass = ra.Name

	err := h.Process(desc, Element{Class: ra, Method: &ra.Methods[0]})
	if StatusOf(err) != StatusFailed || !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected a validation failure, got %v", err)
	}
	want := "failed to handle annotation [ @ConfigProperty ] on class [ com.acme.MyRA ], reason : not a standard JavaBean setter method : [configure ] "
	if err.Error() != want {
		t.Errorf("Expected message\n%q\ngot\n%q", want, err.Error())
	}
	if len(log.warnings) != 1 || log.warnings[0] != want {
		t.Errorf("Expected the failure to be logged, got %q", log.warnings)
	}
}

func TestProcessStructuralFailure(t *testing.T) {
	base := class("com.acme.BaseRA", java.ObjectType)
	base.Methods = []java.MethodModel{
		setter("setSecret", "java.lang.String", configProperty(nil)),
	}
	base.Methods[0].Visibility = java.VisibilityPrivate
	ra := class("com.acme.MyRA", "com.acme.BaseRA", "jakarta.resource.spi.ResourceAdapter")
	ra.Fields = []java.FieldModel{field("host", "java.lang.String", `"localhost"`, configProperty(nil))}

	h := NewHandler(java.NewGraph(base, ra), WithLogger(&recordingLogger{}))
	desc := connector.NewDescriptor()
	desc.ResourceAdapterClass = ra.Name

	err := h.Process(desc, Element{Class: ra, Field: &ra.Fields[0]})
	if StatusOf(err) != StatusFatal {
		t.Fatalf("Expected fatal, got %v (%v)", StatusOf(err), err)
	}
	var structural *StructuralError
	if !errors.As(err, &structural) || structural.Class != "com.acme.BaseRA" || structural.Err.Kind != Visibility {
		t.Errorf("Expected a visibility failure on BaseRA, got %#v", err)
	}
	if desc.Processed.Contains(ra.Name) {
		t.Error("Expected a failed walk not to mark the class processed")
	}
}

func TestProcessRejectsMalformedElements(t *testing.T) {
	_, ra := acmeAdapter()
	h := NewHandler(java.NewGraph(ra), WithLogger(&recordingLogger{}))

	tests := []struct {
		name string
		desc *connector.Descriptor
		el   Element
		want string
	}{
		{"no descriptor", nil, Element{Class: ra, Method: &ra.Methods[0]}, "not a rar bundle context"},
		{"no member", connector.NewDescriptor(), Element{Class: ra}, "exactly one field or method"},
		{"no annotation", connector.NewDescriptor(), Element{Class: ra, Method: &java.MethodModel{Name: "setX"}}, "no @ConfigProperty"},
		{"no class", connector.NewDescriptor(), Element{}, "no declaring class"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Process(tt.desc, tt.el)
			if StatusOf(err) != StatusFailed || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected failure containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusProcessed},
		{ErrOutboundNotDefined, StatusDeferred},
		{&ElementError{Err: &DeferredError{Class: "C"}}, StatusDeferred},
		{&ElementError{Err: &ValidationError{}}, StatusFailed},
		{&ElementError{Err: &StructuralError{Err: &ValidationError{}}}, StatusFatal},
		{errors.New("other"), StatusFailed},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
