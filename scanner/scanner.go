// Package scanner drives config-property resolution over a type graph:
// it applies the type-level connector annotations to a descriptor, feeds
// every @ConfigProperty to a configprop.Handler and retries the ones that
// could not be routed yet.
package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/raconfig/configprop"
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Failure is an element that failed validation. The scan goes on without it.
type Failure struct {
	Element string `json:"element" yaml:"element"`
	Reason  string `json:"reason" yaml:"reason"`
}

type Result struct {
	ID        string    `json:"id" yaml:"id"`
	Status    Status    `json:"status" yaml:"status"`
	Processed int       `json:"processed" yaml:"processed"`
	Deferred  []string  `json:"deferred,omitempty" yaml:"deferred,omitempty"`
	Failures  []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt time.Time `json:"startedAt" yaml:"startedAt"`
	EndedAt   time.Time `json:"endedAt" yaml:"endedAt"`
	Progress  int       `json:"-" yaml:"-"`
	Total     int       `json:"total" yaml:"total"`
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// OK reports whether the scan completed without failures.
func (r *Result) OK() bool {
	return r.Status == StatusCompleted && len(r.Failures) == 0
}

type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	defaults configprop.DefaultValueProvider
	log      commonlog.Logger
}

type Option func(*Scanner)

// WithDefaults sets a provider consulted before accessors are evaluated
// from source.
func WithDefaults(p configprop.DefaultValueProvider) Option {
	return func(s *Scanner) {
		s.defaults = p
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(s *Scanner) {
		s.log = log
	}
}

func New(opts ...Option) *Scanner {
	s := &Scanner{
		scans: make(map[string]*Result),
		log:   commonlog.GetLogger("raconfig.scanner"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan resolves every @ConfigProperty in graph into desc. Validation
// failures are collected in the result; a structural inconsistency aborts
// the scan and is returned together with the failed result.
func (s *Scanner) Scan(ctx context.Context, desc *connector.Descriptor, graph *java.Graph) (*Result, error) {
	result := &Result{
		ID:        uuid.NewString(),
		Status:    StatusInProgress,
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.scans[result.ID] = result
	s.mu.Unlock()

	err := s.scan(ctx, desc, graph, result)

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		return result, err
	}
	result.Status = StatusCompleted
	return result, nil
}

func (s *Scanner) scan(ctx context.Context, desc *connector.Descriptor, graph *java.Graph, result *Result) error {
	ApplyTypeAnnotations(desc, graph, s.log)

	var opts []configprop.Option
	opts = append(opts, configprop.WithLogger(s.log))
	if s.defaults != nil {
		opts = append(opts, configprop.WithDefaults(configprop.ChainDefaults{
			s.defaults,
			configprop.SourceDefaults{Types: graph},
		}))
	}
	h := configprop.NewHandler(graph, opts...)

	// Designation and the descriptor entities all come from the type-level
	// annotations applied above and Process never adds any, so an element
	// deferred here stays deferred and one pass is enough.
	elements := Elements(graph)
	s.mu.Lock()
	result.Total = len(elements)
	s.mu.Unlock()

	var deferred []configprop.Element
	for _, el := range elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := h.Process(desc, el)
		switch configprop.StatusOf(err) {
		case configprop.StatusProcessed:
			s.advance(result, func() { result.Processed++ })
		case configprop.StatusDeferred:
			deferred = append(deferred, el)
			s.advance(result, func() { result.Deferred = append(result.Deferred, el.String()) })
		case configprop.StatusFailed:
			s.advance(result, func() {
				result.Failures = append(result.Failures, Failure{Element: el.String(), Reason: err.Error()})
			})
		case configprop.StatusFatal:
			return err
		}
	}

	for _, el := range deferred {
		s.log.Noticef("config property %s was not attached: no matching descriptor entry", el)
	}
	return nil
}

func (s *Scanner) advance(result *Result, update func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update()
	result.Progress++
}

func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	return result, ok
}
