package ports

import "github.com/aretw0/bpmnflow/pkg/domain"

// ErrorSink collects structural validation findings. It is append-only and
// must accept concurrent calls.
type ErrorSink interface {
	AddError(code domain.ErrorCode, message string)
}
