package configprop

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

func TestBuild(t *testing.T) {
	got := Build("", []string{"first", "second"}, true, false, true, "java.lang.String", "Password")
	want := &connector.ConfigProperty{
		Name:         "Password",
		Type:         "java.lang.String",
		Description:  "first",
		Ignore:       true,
		Confidential: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
	if got.HasDefault() {
		t.Error("Expected an empty default not to be stored")
	}
}

func TestBuildFromAnnotation(t *testing.T) {
	ann := configProperty(map[string]any{
		"type":                   "java.lang.Integer",
		"description":            []any{"pool size"},
		"defaultValue":           "10",
		"supportsDynamicUpdates": true,
	})
	got := buildFromAnnotation(&ann, "poolSize", "int", annotationDefault(&ann))
	want := &connector.ConfigProperty{
		Name:                   "poolSize",
		Type:                   "java.lang.Integer",
		Value:                  "10",
		Description:            "pool size",
		SupportsDynamicUpdates: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildFromAnnotation mismatch (-want +got):\n%s", diff)
	}

	untyped := configProperty(map[string]any{"type": java.ObjectType})
	if got := buildFromAnnotation(&untyped, "poolSize", "int", ""); got.Type != "int" {
		t.Errorf("Expected the structural type, got %q", got.Type)
	}
}
