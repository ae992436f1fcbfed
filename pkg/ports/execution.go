package ports

import "github.com/aretw0/bpmnflow/pkg/domain"

// ExecutionContext is the runtime side of a process instance as seen by a flow object.
// Any serialization needed when several tokens travel the same flow is its concern.
type ExecutionContext interface {
	// OutgoingFlows resolves the sequence flows leaving the flow object.
	OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow

	// EmitTokenAlong advances a token carrying data along the given sequence flow.
	EmitTokenAlong(flow *domain.SequenceFlow, data any)
}
