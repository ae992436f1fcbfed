package bpmnflow

import (
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/validation"
)

// Report is the outcome of validating one process definition.
type Report struct {
	DefinitionID string                   `json:"definition_id"`
	Name         string                   `json:"name,omitempty"`
	Metadata     map[string]string        `json:"metadata,omitempty"`
	FlowObjects  int                      `json:"flow_objects"`
	Errors       []domain.ValidationError `json:"errors"`
	// NodeErrors lists flow objects that could not be checked, such as
	// unregistered kinds. Findings of the other flow objects are still in Errors.
	NodeErrors []string `json:"node_errors,omitempty"`
	LoadError  string   `json:"load_error,omitempty"`
}

func newReport(def *definition.ProcessDefinition, queue *validation.ErrorQueue) *Report {
	errs := queue.Sorted()
	if errs == nil {
		errs = []domain.ValidationError{}
	}
	return &Report{
		DefinitionID: def.ID,
		Name:         def.Name,
		Metadata:     def.Metadata(),
		FlowObjects:  len(def.FlowObjects()),
		Errors:       errs,
	}
}

// nodeErrors flattens the joined per-node errors returned by validation.Validate.
func nodeErrors(err error) []string {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

// Valid reports whether the definition loaded, every flow object could be
// checked and no findings were produced.
func (r *Report) Valid() bool {
	return r.LoadError == "" && len(r.NodeErrors) == 0 && len(r.Errors) == 0
}

// Err returns the findings as a *validation.AggregateError, or nil when there are none.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &validation.AggregateError{Errors: r.Errors}
}
