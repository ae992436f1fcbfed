package registry

import (
	"github.com/aretw0/bpmnflow/pkg/flowobject"
	"github.com/aretw0/bpmnflow/pkg/ports"
)

// Node is a flow object bound to the behavior of its kind.
type Node struct {
	*flowobject.Base
	rules []flowobject.Rule
}

var _ flowobject.FlowNode = (*Node)(nil)

// Validate applies every rule of the node's kind.
func (n *Node) Validate(graph ports.Connectivity, sink ports.ErrorSink) {
	flowobject.Apply(n.FlowObject(), graph, sink, n.rules...)
}
