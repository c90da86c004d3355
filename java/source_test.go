package java

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const adapterSource = `package com.acme.ra;

import jakarta.resource.spi.*;
import java.io.Serializable;

@Connector(description = "Acme adapter")
public class AcmeResourceAdapter extends BaseAdapter implements ResourceAdapter, Serializable {

    @ConfigProperty(defaultValue = "10", type = Integer.class, description = {"pool", "ignored"})
    private int poolSize = 10;

    private boolean debug;

    public AcmeResourceAdapter() {
    }

    @ConfigProperty
    public void setDebug(boolean debug) {
        this.debug = debug;
    }

    public boolean isDebug() {
        // current flag
        return debug;
    }

    static class Helper {
        private Helper(String name) {
        }
    }
}
`

func TestParseSource(t *testing.T) {
	models, err := ParseSource(context.Background(), []byte(adapterSource), "com/acme/ra/AcmeResourceAdapter.java")
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("Expected 2 class models, got %d", len(models))
	}

	ra, helper := models[0], models[1]

	t.Run("class header", func(t *testing.T) {
		if ra.Name != "com.acme.ra.AcmeResourceAdapter" {
			t.Errorf("Expected name com.acme.ra.AcmeResourceAdapter, got %q", ra.Name)
		}
		if ra.SuperClass != "com.acme.ra.BaseAdapter" {
			t.Errorf("Expected superclass com.acme.ra.BaseAdapter, got %q", ra.SuperClass)
		}
		want := []string{"jakarta.resource.spi.ResourceAdapter", "java.io.Serializable"}
		if diff := cmp.Diff(want, ra.Interfaces); diff != "" {
			t.Errorf("interfaces mismatch (-want +got):\n%s", diff)
		}
		if ra.Visibility != VisibilityPublic || !ra.IsConcrete() {
			t.Errorf("Expected public concrete class, got visibility %q abstract=%v", ra.Visibility, ra.IsAbstract)
		}
		if !ra.HasAnnotation("jakarta.resource.spi.Connector") {
			t.Errorf("Expected @Connector to resolve through the on-demand import, got %+v", ra.Annotations)
		}
	})

	t.Run("annotated field", func(t *testing.T) {
		f := ra.Field("poolSize")
		if f == nil {
			t.Fatal("Expected field poolSize")
		}
		if f.Type != (TypeModel{Name: "int"}) {
			t.Errorf("Expected type int, got %v", f.Type)
		}
		if f.Initializer != "10" {
			t.Errorf("Expected initializer 10, got %q", f.Initializer)
		}
		ann := f.Annotation("jakarta.resource.spi.ConfigProperty")
		if ann == nil {
			t.Fatal("Expected @ConfigProperty on poolSize")
		}
		want := map[string]any{
			"defaultValue": "10",
			"type":         "java.lang.Integer",
			"description":  []any{"pool", "ignored"},
		}
		if diff := cmp.Diff(want, ann.Values); diff != "" {
			t.Errorf("annotation values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("setter and accessor", func(t *testing.T) {
		setter := ra.DeclaredMethod("setDebug", 1)
		if setter == nil {
			t.Fatal("Expected setDebug(boolean)")
		}
		if diff := cmp.Diff([]ParameterModel{{Name: "debug", Type: TypeModel{Name: "boolean"}}}, setter.Parameters); diff != "" {
			t.Errorf("parameters mismatch (-want +got):\n%s", diff)
		}
		if !setter.ReturnType.IsVoid() {
			t.Errorf("Expected void return, got %v", setter.ReturnType)
		}
		if setter.Annotation("jakarta.resource.spi.ConfigProperty") == nil {
			t.Error("Expected @ConfigProperty on setDebug")
		}
		getter := ra.DeclaredMethod("isDebug", 0)
		if getter == nil {
			t.Fatal("Expected isDebug()")
		}
		if getter.ReturnExpression != "debug" {
			t.Errorf("Expected return expression debug, got %q", getter.ReturnExpression)
		}
	})

	t.Run("constructors", func(t *testing.T) {
		if !ra.HasZeroArgConstructor() {
			t.Error("Expected a usable zero-argument constructor")
		}
		if helper.Name != "com.acme.ra.AcmeResourceAdapter.Helper" {
			t.Errorf("Expected nested class name, got %q", helper.Name)
		}
		if helper.HasZeroArgConstructor() {
			t.Error("Helper only declares a private one-argument constructor")
		}
	})
}

func TestParseSourceInterface(t *testing.T) {
	src := `package com.acme.api;

public interface AcmeConnectionFactory extends java.io.Serializable, Referenceable {
    int DEFAULT_PORT = 9000;

    AcmeConnection getConnection(String... names);
}
`
	models, err := ParseSource(context.Background(), []byte(src), "AcmeConnectionFactory.java")
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("Expected 1 class model, got %d", len(models))
	}
	c := models[0]
	if !c.IsInterface() {
		t.Errorf("Expected an interface, got kind %q", c.Kind)
	}
	if c.SuperClass != "" {
		t.Errorf("Interfaces have no superclass, got %q", c.SuperClass)
	}
	if diff := cmp.Diff([]string{"java.io.Serializable", "com.acme.api.Referenceable"}, c.Interfaces); diff != "" {
		t.Errorf("interfaces mismatch (-want +got):\n%s", diff)
	}
	f := c.Field("DEFAULT_PORT")
	if f == nil || !f.IsStatic || !f.IsFinal || f.Visibility != VisibilityPublic {
		t.Errorf("Expected an implicit public static final constant, got %+v", f)
	}
	m := c.DeclaredMethod("getConnection", 1)
	if m == nil {
		t.Fatal("Expected getConnection(String...)")
	}
	if !m.IsAbstract || m.Visibility != VisibilityPublic {
		t.Errorf("Expected implicit public abstract method, got %+v", m)
	}
	if m.Parameters[0].Type != (TypeModel{Name: "java.lang.String", ArrayDepth: 1}) {
		t.Errorf("Expected varargs to be an array, got %v", m.Parameters[0].Type)
	}
}

func TestParseSourceSyntaxError(t *testing.T) {
	src := "package broken;\n\npublic class Broken {\n    int x = ;\n}\n"
	_, err := ParseSource(context.Background(), []byte(src), "Broken.java")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Path != "Broken.java" {
		t.Errorf("Expected path Broken.java, got %q", syntaxErr.Path)
	}
}

func TestSourceCache(t *testing.T) {
	cache, err := NewSourceCache(2)
	if err != nil {
		t.Fatalf("NewSourceCache: %v", err)
	}
	first, err := cache.Parse(context.Background(), []byte(adapterSource), "A.java")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := cache.Parse(context.Background(), []byte(adapterSource), "A.java")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if first[0] != second[0] {
		t.Error("Expected the second parse to be served from the cache")
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cache entry, got %d", cache.Len())
	}
	cache.Purge()
	if cache.Len() != 0 {
		t.Errorf("Expected an empty cache after Purge, got %d", cache.Len())
	}

	var none *SourceCache
	if _, err := none.Parse(context.Background(), []byte(adapterSource), "A.java"); err != nil {
		t.Errorf("nil cache should parse directly: %v", err)
	}
}
