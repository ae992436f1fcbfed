package validation

import (
	"fmt"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// AggregateError represents multiple validation findings.
type AggregateError struct {
	Errors []domain.ValidationError
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all findings if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []domain.ValidationError {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
