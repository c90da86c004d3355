// Package bootstrap runs a Kernel through a guarded lifecycle and hands out
// the services it registers while it is started.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
)

type Status int32

const (
	StatusInit Status = iota
	StatusStarting
	StatusStarted
	StatusStopping
	StatusStopped
	StatusDisposed
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "INIT"
	case StatusStarting:
		return "STARTING"
	case StatusStarted:
		return "STARTED"
	case StatusStopping:
		return "STOPPING"
	case StatusStopped:
		return "STOPPED"
	case StatusDisposed:
		return "DISPOSED"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

var (
	ErrIllegalState    = errors.New("illegal runtime state")
	ErrServiceNotFound = errors.New("service not found")
)

// StateError reports an operation attempted in a state that does not allow
// it.
type StateError struct {
	Op     string
	Status Status
}

func (e *StateError) Error() string {
	switch {
	case e.Op == "dispose" && e.Status == StatusDisposed:
		return "already disposed"
	case e.Op == "service":
		return fmt.Sprintf("runtime is not started yet, it is in %s state", e.Status)
	}
	return fmt.Sprintf("%s: already in %s state", e.Op, e.Status)
}

func (e *StateError) Is(target error) bool {
	return target == ErrIllegalState
}

// Kernel is the component a Runtime starts and stops.
type Kernel interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runtime guards a Kernel's lifecycle:
//
//	INIT -> STARTING -> STARTED -> STOPPING -> STOPPED -> DISPOSED
//
// Start may be retried from STOPPED; DISPOSED is final.
type Runtime struct {
	mu       sync.Mutex
	status   atomic.Int32
	kernel   Kernel
	services *Registry
	log      commonlog.Logger
}

func New(kernel Kernel, services *Registry) *Runtime {
	if services == nil {
		services = NewRegistry()
	}
	return &Runtime{
		kernel:   kernel,
		services: services,
		log:      commonlog.GetLogger("raconfig.bootstrap"),
	}
}

// Status can be read while a transition is in progress.
func (r *Runtime) Status() Status {
	return Status(r.status.Load())
}

func (r *Runtime) setStatus(s Status) {
	r.log.Debug("runtime state", "from", r.Status().String(), "to", s.String())
	r.status.Store(int32(s))
}

// Start starts the kernel. A kernel that fails to start leaves the runtime
// in the state it was in before.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.Status()
	switch prev {
	case StatusStarted, StatusStarting, StatusDisposed:
		return &StateError{Op: "start", Status: prev}
	}
	r.setStatus(StatusStarting)
	if err := r.kernel.Start(ctx); err != nil {
		r.setStatus(prev)
		return fmt.Errorf("start kernel: %w", err)
	}
	r.setStatus(StatusStarted)
	return nil
}

func (r *Runtime) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop(ctx)
}

func (r *Runtime) stop(ctx context.Context) error {
	prev := r.Status()
	switch prev {
	case StatusStopped, StatusStopping, StatusDisposed:
		return &StateError{Op: "stop", Status: prev}
	}
	r.setStatus(StatusStopping)
	if err := r.kernel.Stop(ctx); err != nil {
		r.setStatus(prev)
		return fmt.Errorf("stop kernel: %w", err)
	}
	r.setStatus(StatusStopped)
	return nil
}

// Dispose stops the runtime if needed and releases the kernel and its
// services. Errors while stopping are logged and otherwise ignored.
func (r *Runtime) Dispose(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.Status() {
	case StatusDisposed:
		return &StateError{Op: "dispose", Status: StatusDisposed}
	case StatusStopped:
	default:
		if err := r.stop(ctx); err != nil {
			r.log.Warningf("ignoring failure to stop before dispose: %s", err)
		}
	}
	r.kernel = nil
	r.services = nil
	r.setStatus(StatusDisposed)
	return nil
}

// Service returns a registered service. It is only available while the
// runtime is started.
func (r *Runtime) Service(name string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.Status(); s != StatusStarted {
		return nil, &StateError{Op: "service", Status: s}
	}
	svc, ok := r.services.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return svc, nil
}

// ServiceAs returns a registered service as a T.
func ServiceAs[T any](r *Runtime, name string) (T, error) {
	var zero T
	svc, err := r.Service(name)
	if err != nil {
		return zero, err
	}
	t, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %s is a %T, not a %T", name, svc, zero)
	}
	return t, nil
}
