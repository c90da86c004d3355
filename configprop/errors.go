package configprop

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid @ConfigProperty member")
	ErrDeferred   = errors.New("config property cannot be routed yet")
	ErrStructural = errors.New("inconsistent @ConfigProperty declaration in class hierarchy")
)

// ErrOutboundNotDefined is returned when a managed connection factory
// carries config properties but the descriptor has no outbound adapter yet.
var ErrOutboundNotDefined = &DeferredError{
	Role:   RoleConnectionFactoryImpl,
	Reason: "Outbound RA is not defined",
}

// ErrNotRarContext is returned when an element is processed without a
// descriptor to merge into.
var ErrNotRarContext = errors.New("not a rar bundle context")

type ValidationKind int

const (
	NotASetter ValidationKind = iota
	Visibility
	Arity
	IncompatibleType
)

func (k ValidationKind) String() string {
	switch k {
	case NotASetter:
		return "not-a-setter"
	case Visibility:
		return "visibility"
	case Arity:
		return "arity"
	case IncompatibleType:
		return "incompatible-type"
	}
	return fmt.Sprintf("ValidationKind(%d)", int(k))
}

// ValidationError describes an annotated member whose shape or type does
// not allow it to carry a config property.
type ValidationError struct {
	Class  string
	Member string
	Kind   ValidationKind
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(class, member string, kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{
		Class:  class,
		Member: member,
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}

// DeferredError reports that the descriptor entity a property belongs to is
// not known yet. The element should be processed again later in the pass.
type DeferredError struct {
	Class  string
	Role   Role
	Reason string
}

func (e *DeferredError) Error() string {
	if e.Class == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s role of class [ %s ] deferred: %s", e.Role, e.Class, e.Reason)
}

func (e *DeferredError) Is(target error) bool {
	return target == ErrDeferred
}

// StructuralError is raised when a member found while walking an ancestor
// chain fails validation. It aborts the resolution pass.
type StructuralError struct {
	Class string
	Err   *ValidationError
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("ancestor [ %s ]: %v", e.Class, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// ElementError attributes a failure to the annotated element that caused it.
type ElementError struct {
	Class string
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("failed to handle annotation [ @ConfigProperty ] on class [ %s ], reason : %v", e.Class, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// Status is the outcome of processing one element.
type Status int

const (
	StatusProcessed Status = iota
	StatusDeferred
	StatusFailed
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusDeferred:
		return "deferred"
	case StatusFailed:
		return "failed"
	case StatusFatal:
		return "fatal"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// StatusOf classifies an error returned by Handler.Process. Structural
// errors take precedence over the validation errors they wrap.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusProcessed
	case errors.Is(err, ErrStructural):
		return StatusFatal
	case errors.Is(err, ErrDeferred):
		return StatusDeferred
	default:
		return StatusFailed
	}
}
