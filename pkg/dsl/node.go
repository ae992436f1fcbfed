package dsl

import (
	"fmt"

	"github.com/aretw0/bpmnflow/internal/compiler"
	"github.com/aretw0/bpmnflow/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a flow object.
type NodeBuilder struct {
	object  compiler.FlowObjectDoc
	flows   []compiler.SequenceFlowDoc
	builder *Builder
}

// As sets the kind and name of the flow object.
func (n *NodeBuilder) As(kind domain.Kind, name string) *NodeBuilder {
	n.object.Type = string(kind)
	n.object.Name = name
	return n
}

// Start marks the flow object as a start event.
func (n *NodeBuilder) Start(name string) *NodeBuilder {
	return n.As(domain.KindStartEvent, name)
}

// End marks the flow object as an end event.
func (n *NodeBuilder) End(name string) *NodeBuilder {
	return n.As(domain.KindEndEvent, name)
}

// Task marks the flow object as a plain task.
func (n *NodeBuilder) Task(name string) *NodeBuilder {
	return n.As(domain.KindTask, name)
}

// ServiceTask marks the flow object as a service task.
func (n *NodeBuilder) ServiceTask(name string) *NodeBuilder {
	return n.As(domain.KindServiceTask, name)
}

// UserTask marks the flow object as a user task.
func (n *NodeBuilder) UserTask(name string) *NodeBuilder {
	return n.As(domain.KindUserTask, name)
}

// Exclusive marks the flow object as an exclusive gateway.
func (n *NodeBuilder) Exclusive(name string) *NodeBuilder {
	return n.As(domain.KindExclusiveGateway, name)
}

// Parallel marks the flow object as a parallel gateway.
func (n *NodeBuilder) Parallel(name string) *NodeBuilder {
	return n.As(domain.KindParallelGateway, name)
}

// Go adds a sequence flow to the target flow object.
func (n *NodeBuilder) Go(targetID string) *NodeBuilder {
	return n.GoIf(targetID, "")
}

// GoIf adds a sequence flow with a condition expression.
// Conditions are carried for documentation and graph labels; they are not evaluated.
func (n *NodeBuilder) GoIf(targetID, condition string) *NodeBuilder {
	n.flows = append(n.flows, compiler.SequenceFlowDoc{
		ID:        fmt.Sprintf("%s_%s_%d", n.object.ID, targetID, len(n.flows)+1),
		SourceRef: n.object.ID,
		TargetRef: targetID,
		Condition: condition,
	})
	return n
}

// Add is a shortcut to the parent builder, for chaining whole processes.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}
