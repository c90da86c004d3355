package configprop

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/raconfig/java"
)

// DefaultValueProvider produces the value a field-backed property holds on a
// freshly constructed instance, as read through its accessor. ok is false
// when the accessor yields null. An error means the value could not be
// determined.
type DefaultValueProvider interface {
	TryDefault(class *java.ClassModel, accessor string) (value string, ok bool, err error)
}

// ChainDefaults asks each provider in turn and returns the first answer
// given without error.
type ChainDefaults []DefaultValueProvider

func (c ChainDefaults) TryDefault(class *java.ClassModel, accessor string) (string, bool, error) {
	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		v, ok, err := p.TryDefault(class, accessor)
		if err == nil {
			return v, ok, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", false, fmt.Errorf("no default value provider for %s.%s()", class.Name, accessor)
	}
	return "", false, errors.Join(errs...)
}

// AccessorName returns the conventional getter of a field: is<Name> for
// boolean fields, get<Name> otherwise.
func AccessorName(fieldName string, fieldType java.TypeModel) string {
	prefix := "get"
	if !fieldType.IsArray() && java.Boxed(fieldType.Name) == "java.lang.Boolean" {
		prefix = "is"
	}
	return prefix + capitalize(fieldName)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// DeriveDefault returns the value the accessor of a field yields on a new
// instance of class, or "" when there is none. Failures are logged and
// never returned.
func (h *Handler) DeriveDefault(class *java.ClassModel, fieldName string, fieldType java.TypeModel) string {
	accessor := AccessorName(fieldName, fieldType)
	value, ok, err := h.defaults.TryDefault(class, accessor)
	if err != nil {
		h.log.Warningf("failed to read the value of field [%s] on class [%s], reason : %s",
			fieldName, class.Name, strings.ReplaceAll(err.Error(), "\n", "; "))
		return ""
	}
	if !ok {
		return ""
	}
	return value
}
