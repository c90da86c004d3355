// Package configprop merges @ConfigProperty annotations into a connector
// descriptor.
//
// Each annotated field or setter is validated, turned into a config
// property and attached to the descriptor entity its declaring class
// configures: the resource adapter, connection definitions, activation
// specs or administered objects. Properties already present, usually from
// ra.xml, are never replaced. The first attachment to an entity also picks
// up the properties the class inherits from its superclasses.
//
// A Handler processes the elements of one descriptor sequentially and is not
// safe for concurrent use.
package configprop

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

type Handler struct {
	types    TypeSource
	defaults DefaultValueProvider
	log      commonlog.Logger
}

type Option func(*Handler)

// WithDefaults replaces the provider used to derive defaults of field-backed
// properties. The default evaluates accessors from source.
func WithDefaults(p DefaultValueProvider) Option {
	return func(h *Handler) {
		h.defaults = p
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(h *Handler) {
		h.log = log
	}
}

func NewHandler(types TypeSource, opts ...Option) *Handler {
	h := &Handler{
		types: types,
		log:   commonlog.GetLogger("raconfig.configprop"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.defaults == nil {
		h.defaults = SourceDefaults{Types: types}
	}
	return h
}

// Element is one @ConfigProperty occurrence: a field or a method of Class.
// Annotation may be left nil and is then looked up on the member.
type Element struct {
	Class      *java.ClassModel
	Field      *java.FieldModel
	Method     *java.MethodModel
	Annotation *java.AnnotationModel
}

// Member returns the name of the annotated field or method.
func (e Element) Member() string {
	switch {
	case e.Field != nil:
		return e.Field.Name
	case e.Method != nil:
		return e.Method.Name
	}
	return ""
}

func (e Element) String() string {
	if e.Class == nil {
		return e.Member()
	}
	if e.Method != nil {
		return e.Class.Name + "." + e.Method.Name + "()"
	}
	return e.Class.Name + "." + e.Member()
}

func (e Element) annotation() *java.AnnotationModel {
	switch {
	case e.Annotation != nil:
		return e.Annotation
	case e.Field != nil:
		return configPropertyOfField(e.Field)
	case e.Method != nil:
		return configPropertyOfMethod(e.Method)
	}
	return nil
}

// Process merges the property declared by el into desc. The returned error,
// if any, is an *ElementError; use StatusOf to decide how to proceed.
func (h *Handler) Process(desc *connector.Descriptor, el Element) error {
	if el.Class == nil {
		return h.fail(el, errors.New("element has no declaring class"))
	}
	if desc == nil {
		return h.fail(el, ErrNotRarContext)
	}
	p, err := h.property(el)
	if err != nil {
		return h.fail(el, err)
	}
	role := Classify(h.types, el.Class, desc)
	h.log.Debug("routing config property", "element", el.String(), "property", p.Name, "role", role.String())
	if err := h.Route(role, el.Class, p, desc); err != nil {
		return h.fail(el, err)
	}
	return nil
}

func (h *Handler) property(el Element) (*connector.ConfigProperty, error) {
	if (el.Field == nil) == (el.Method == nil) {
		return nil, fmt.Errorf("element %s must be exactly one field or method", el)
	}
	ann := el.annotation()
	if ann == nil {
		return nil, fmt.Errorf("%s carries no @ConfigProperty annotation", el)
	}
	if el.Method != nil {
		return h.setterProperty(el.Class, el.Method, ann)
	}
	return h.fieldProperty(el.Class, el.Field, ann)
}

func (h *Handler) fail(el Element, err error) error {
	class := ""
	if el.Class != nil {
		class = el.Class.Name
	}
	failure := &ElementError{Class: class, Err: err}
	switch StatusOf(failure) {
	case StatusDeferred:
		h.log.Debug("deferring config property", "element", el.String(), "reason", err.Error())
	case StatusFatal:
		h.log.Error(failure.Error())
	default:
		h.log.Warning(failure.Error())
	}
	return failure
}
