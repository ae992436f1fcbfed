package validation

import (
	"sort"
	"sync"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/ports"
)

// ErrorQueue is an append-only, concurrency-safe ports.ErrorSink.
type ErrorQueue struct {
	mu   sync.Mutex
	errs []domain.ValidationError
}

var _ ports.ErrorSink = (*ErrorQueue)(nil)

// NewErrorQueue creates an empty queue.
func NewErrorQueue() *ErrorQueue {
	return &ErrorQueue{}
}

// AddError appends a finding.
func (q *ErrorQueue) AddError(code domain.ErrorCode, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, domain.ValidationError{Code: code, Message: message})
}

// Errors returns a copy of the findings in the order they were added.
func (q *ErrorQueue) Errors() []domain.ValidationError {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.ValidationError(nil), q.errs...)
}

// Sorted returns the findings ordered by code, then message. Concurrent
// validation appends in no particular order; this view is stable for reports.
func (q *ErrorQueue) Sorted() []domain.ValidationError {
	out := q.Errors()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// Len returns the number of findings.
func (q *ErrorQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errs)
}

// HasErrors reports whether any finding was added.
func (q *ErrorQueue) HasErrors() bool { return q.Len() > 0 }

// Err returns the sorted findings as an *AggregateError, or nil if there are none.
func (q *ErrorQueue) Err() error {
	errs := q.Sorted()
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

// Clear drops every finding.
func (q *ErrorQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = nil
}
