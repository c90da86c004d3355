package configprop

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/raconfig/java"
)

// timeoutHolder returns a class whose getTimeout() returns the field
// timeout, initialized to 30.
func timeoutHolder() *java.ClassModel {
	c := class("com.acme.Settings", java.ObjectType)
	c.Fields = []java.FieldModel{field("timeout", "int", "30")}
	c.Methods = []java.MethodModel{getter("getTimeout", "int", "timeout")}
	return c
}

func TestDeriveDefault(t *testing.T) {
	c := timeoutHolder()
	log := &recordingLogger{}
	h := NewHandler(java.NewGraph(c), WithLogger(log))

	if got := h.DeriveDefault(c, "timeout", java.ParseTypeName("int")); got != "30" {
		t.Errorf("Expected derived default 30, got %q", got)
	}
	if len(log.warnings) != 0 {
		t.Errorf("Expected no warnings, got %q", log.warnings)
	}
}

func TestDeriveDefaultWithoutZeroArgConstructor(t *testing.T) {
	c := timeoutHolder()
	c.Methods = append(c.Methods, java.MethodModel{
		Name:          "<init>",
		IsConstructor: true,
		Visibility:    java.VisibilityPublic,
		Parameters:    []java.ParameterModel{{Name: "timeout", Type: java.ParseTypeName("int")}},
	})
	log := &recordingLogger{}
	h := NewHandler(java.NewGraph(c), WithLogger(log))

	if got := h.DeriveDefault(c, "timeout", java.ParseTypeName("int")); got != "" {
		t.Errorf("Expected no default, got %q", got)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("Expected one warning, got %q", log.warnings)
	}
	want := "failed to read the value of field [timeout] on class [com.acme.Settings], reason : com.acme.Settings.<init>()"
	if log.warnings[0] != want {
		t.Errorf("Expected warning\n%q\ngot\n%q", want, log.warnings[0])
	}
}

func TestAccessorName(t *testing.T) {
	tests := []struct {
		field, typ, want string
	}{
		{"timeout", "int", "getTimeout"},
		{"enabled", "boolean", "isEnabled"},
		{"enabled", "java.lang.Boolean", "isEnabled"},
		{"flags", "boolean[]", "getFlags"},
		{"x", "java.lang.String", "getX"},
	}
	for _, tt := range tests {
		if got := AccessorName(tt.field, java.ParseTypeName(tt.typ)); got != tt.want {
			t.Errorf("AccessorName(%q, %s) = %q, want %q", tt.field, tt.typ, got, tt.want)
		}
	}
}

func TestSourceDefaults(t *testing.T) {
	base := class("com.acme.Base", java.ObjectType)
	base.Fields = []java.FieldModel{field("inherited", "java.lang.String", `"from-base"`)}

	c := class("com.acme.Settings", "com.acme.Base")
	c.Fields = []java.FieldModel{
		field("timeout", "int", "30"),
		field("ratio", "double", "1"),
		field("name", "java.lang.String", ""),
		field("count", "long", ""),
		field("alias", "java.lang.String", "NAME"),
		field("computed", "java.lang.String", "compute()"),
	}
	c.Fields[4].IsStatic = true
	c.Fields = append(c.Fields, field("NAME", "java.lang.String", `"acme"`))
	c.Methods = []java.MethodModel{
		getter("getTimeout", "int", "this.timeout"),
		getter("getRatio", "double", "ratio"),
		getter("getName", "java.lang.String", "name"),
		getter("getCount", "long", "count"),
		getter("getAlias", "java.lang.String", "alias"),
		getter("getLiteral", "java.lang.String", `"direct"`),
		getter("getInherited", "java.lang.String", "inherited"),
		getter("getComputed", "java.lang.String", "computed"),
		getter("getOpaque", "java.lang.String", ""),
	}
	s := SourceDefaults{Types: java.NewGraph(base, c)}

	tests := []struct {
		accessor string
		want     string
		ok       bool
		err      string
	}{
		{accessor: "getTimeout", want: "30", ok: true},
		{accessor: "getRatio", want: "1.0", ok: true},
		{accessor: "getName", ok: false},
		{accessor: "getCount", want: "0", ok: true},
		{accessor: "getAlias", want: "acme", ok: true},
		{accessor: "getLiteral", want: "direct", ok: true},
		{accessor: "getInherited", want: "from-base", ok: true},
		{accessor: "getComputed", err: "unsupported expression"},
		{accessor: "getOpaque", err: "without running it"},
		{accessor: "getMissing", err: "com.acme.Settings.getMissing()"},
	}
	for _, tt := range tests {
		t.Run(tt.accessor, func(t *testing.T) {
			got, ok, err := s.TryDefault(c, tt.accessor)
			if tt.err != "" {
				if err == nil || !strings.Contains(err.Error(), tt.err) {
					t.Fatalf("Expected error containing %q, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || ok != tt.ok {
				t.Errorf("TryDefault(%s) = %q, %v; want %q, %v", tt.accessor, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSourceDefaultsConstructedFields(t *testing.T) {
	c := timeoutHolder()
	c.Fields[0].Initializer = ""
	c.Methods = append(c.Methods, java.MethodModel{Name: "<init>", IsConstructor: true, Visibility: java.VisibilityPublic})

	_, _, err := SourceDefaults{Types: java.NewGraph(c)}.TryDefault(c, "getTimeout")
	if err == nil || !strings.Contains(err.Error(), "assigned outside its declaration") {
		t.Errorf("Expected fields set by constructors to be reported, got %v", err)
	}

	abstract := timeoutHolder()
	abstract.IsAbstract = true
	_, _, err = SourceDefaults{}.TryDefault(abstract, "getTimeout")
	if err == nil || !strings.Contains(err.Error(), "cannot instantiate abstract class") {
		t.Errorf("Expected abstract classes to be rejected, got %v", err)
	}
}

func TestTableDefaults(t *testing.T) {
	table, err := LoadDefaultsTable(strings.NewReader(`
com.acme.Settings:
  getTimeout: 30
  getName: null
`))
	if err != nil {
		t.Fatal(err)
	}
	c := timeoutHolder()

	if v, ok, err := table.TryDefault(c, "getTimeout"); err != nil || !ok || v != "30" {
		t.Errorf("getTimeout = %q, %v, %v", v, ok, err)
	}
	if v, ok, err := table.TryDefault(c, "getName"); err != nil || ok || v != "" {
		t.Errorf("Expected getName to be recorded as null, got %q, %v, %v", v, ok, err)
	}
	if _, _, err := table.TryDefault(c, "getOther"); !errors.Is(err, ErrNoRecordedDefault) {
		t.Errorf("Expected ErrNoRecordedDefault, got %v", err)
	}
}

func TestChainDefaults(t *testing.T) {
	c := timeoutHolder()
	chain := ChainDefaults{
		TableDefaults{"com.acme.Settings": {"getTimeout": "45"}},
		SourceDefaults{},
	}
	if v, _, err := chain.TryDefault(c, "getTimeout"); err != nil || v != "45" {
		t.Errorf("Expected the table to win, got %q, %v", v, err)
	}

	c.Methods = append(c.Methods, getter("getRetries", "int", "3"))
	if v, _, err := chain.TryDefault(c, "getRetries"); err != nil || v != "3" {
		t.Errorf("Expected source evaluation as fallback, got %q, %v", v, err)
	}

	_, _, err := chain.TryDefault(c, "getMissing")
	if !errors.Is(err, ErrNoRecordedDefault) || !strings.Contains(err.Error(), "com.acme.Settings.getMissing()") {
		t.Errorf("Expected both failures to be reported, got %v", err)
	}
}
