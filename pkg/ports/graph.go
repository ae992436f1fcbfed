package ports

import "github.com/aretw0/bpmnflow/pkg/domain"

// Connectivity answers structural questions about a finalized process definition.
// Implementations must not change their answers once the definition is finalized.
type Connectivity interface {
	// OutgoingFlows returns the sequence flows leaving the flow object. Order is not significant.
	OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow
	HasOutgoingFlows(fo *domain.FlowObject) bool

	// IncomingFlows returns the sequence flows entering the flow object. Order is not significant.
	IncomingFlows(fo *domain.FlowObject) []*domain.SequenceFlow
	HasIncomingFlows(fo *domain.FlowObject) bool
}
