package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeKernel struct {
	calls    []string
	startErr error
	stopErr  error
}

func (k *fakeKernel) Start(ctx context.Context) error {
	k.calls = append(k.calls, "start")
	return k.startErr
}

func (k *fakeKernel) Stop(ctx context.Context) error {
	k.calls = append(k.calls, "stop")
	return k.stopErr
}

func TestRuntimeLifecycle(t *testing.T) {
	ctx := context.Background()
	kernel := &fakeKernel{}
	rt := New(kernel, nil)

	if rt.Status() != StatusInit {
		t.Fatalf("Expected INIT, got %s", rt.Status())
	}
	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rt.Start(ctx); !errors.Is(err, ErrIllegalState) {
		t.Errorf("Expected a second start to fail, got %v", err)
	}
	if err := rt.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rt.Stop(ctx); err == nil || err.Error() != "stop: already in STOPPED state" {
		t.Errorf("Expected a second stop to fail, got %v", err)
	}
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Expected a restart from STOPPED to work, got %v", err)
	}
	if err := rt.Dispose(ctx); err != nil {
		t.Fatal(err)
	}
	if rt.Status() != StatusDisposed {
		t.Errorf("Expected DISPOSED, got %s", rt.Status())
	}
	if diff := cmp.Diff([]string{"start", "stop", "start", "stop"}, kernel.calls); diff != "" {
		t.Errorf("kernel calls mismatch (-want +got):\n%s", diff)
	}

	for name, op := range map[string]func(context.Context) error{
		"start":   rt.Start,
		"stop":    rt.Stop,
		"dispose": rt.Dispose,
	} {
		var serr *StateError
		if err := op(ctx); !errors.As(err, &serr) || serr.Status != StatusDisposed {
			t.Errorf("Expected %s after dispose to fail, got %v", name, err)
		}
	}
}

func TestRuntimeDisposeIgnoresStopFailure(t *testing.T) {
	ctx := context.Background()
	kernel := &fakeKernel{stopErr: errors.New("boom")}
	rt := New(kernel, nil)
	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rt.Dispose(ctx); err != nil {
		t.Fatalf("Expected dispose to ignore the stop failure, got %v", err)
	}
	if rt.Status() != StatusDisposed {
		t.Errorf("Expected DISPOSED, got %s", rt.Status())
	}
}

func TestRuntimeStartFailure(t *testing.T) {
	ctx := context.Background()
	rt := New(&fakeKernel{startErr: errors.New("boom")}, nil)
	if err := rt.Start(ctx); err == nil {
		t.Fatal("Expected start to fail")
	}
	if rt.Status() != StatusInit {
		t.Errorf("Expected the runtime to fall back to INIT, got %s", rt.Status())
	}
}

func TestRuntimeServices(t *testing.T) {
	ctx := context.Background()
	services := NewRegistry()
	services.Register("greeting", "hello")
	rt := New(&fakeKernel{}, services)

	if _, err := rt.Service("greeting"); err == nil || err.Error() != "runtime is not started yet, it is in INIT state" {
		t.Errorf("Expected services to be unavailable before start, got %v", err)
	}
	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}

	greeting, err := ServiceAs[string](rt, "greeting")
	if err != nil || greeting != "hello" {
		t.Errorf("ServiceAs[string] = %q, %v", greeting, err)
	}
	if _, err := ServiceAs[int](rt, "greeting"); err == nil {
		t.Error("Expected a type mismatch to fail")
	}
	if _, err := rt.Service("missing"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("Expected ErrServiceNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"greeting"}, services.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
