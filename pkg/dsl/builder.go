package dsl

import (
	"fmt"

	"github.com/aretw0/bpmnflow/internal/compiler"
	"github.com/aretw0/bpmnflow/pkg/definition"
)

// Builder manages the process construction.
type Builder struct {
	id    string
	name  string
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new process builder.
func New(id, name string) *Builder {
	return &Builder{
		id:    id,
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new flow object in the process.
// If the flow object already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		object:  compiler.FlowObjectDoc{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Document returns the serializable description, flow objects in insertion order.
func (b *Builder) Document() *compiler.Document {
	doc := &compiler.Document{
		ID:          b.id,
		Name:        b.name,
		FlowObjects: make([]compiler.FlowObjectDoc, 0, len(b.order)),
	}
	for _, id := range b.order {
		nb := b.nodes[id]
		doc.FlowObjects = append(doc.FlowObjects, nb.object)
		doc.SequenceFlows = append(doc.SequenceFlows, nb.flows...)
	}
	return doc
}

// Build compiles the process into a finalized ProcessDefinition.
func (b *Builder) Build() (*definition.ProcessDefinition, error) {
	def, err := compiler.NewParser().Build(b.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to build process %s: %w", b.id, err)
	}
	return def, nil
}

// YAML serializes the process description.
func (b *Builder) YAML() ([]byte, error) {
	return compiler.NewParser().Encode(b.Document())
}
