package flowobject

import (
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/ports"
)

// FlowNode is a flow object that knows how to pass on a token it received.
type FlowNode interface {
	FlowObject() *domain.FlowObject
	Forward(ctx ports.ExecutionContext, data any)
}

// Forwarder is the execution semantics of a node kind.
type Forwarder func(ctx ports.ExecutionContext, fo *domain.FlowObject, data any)

// DefaultForwarder is used by every kind that does not provide its own Forwarder.
var DefaultForwarder Forwarder = EmitTokens

// EmitTokens emits a token carrying data along every outgoing sequence flow of fo.
// A flow object without outgoing flows silently emits nothing.
func EmitTokens(ctx ports.ExecutionContext, fo *domain.FlowObject, data any) {
	for _, flow := range ctx.OutgoingFlows(fo) {
		ctx.EmitTokenAlong(flow, data)
	}
}

// Base binds a flow object to a Forwarder and satisfies FlowNode.
type Base struct {
	fo      *domain.FlowObject
	forward Forwarder
}

// NewBase returns a FlowNode for fo. A nil forward selects DefaultForwarder.
func NewBase(fo *domain.FlowObject, forward Forwarder) *Base {
	if forward == nil {
		forward = DefaultForwarder
	}
	return &Base{fo: fo, forward: forward}
}

// FlowObject returns the wrapped flow object.
func (b *Base) FlowObject() *domain.FlowObject { return b.fo }

// Forward passes a token carrying data on with the node's Forwarder.
func (b *Base) Forward(ctx ports.ExecutionContext, data any) {
	b.forward(ctx, b.fo, data)
}
