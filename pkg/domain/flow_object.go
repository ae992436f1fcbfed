package domain

import "sync/atomic"

// Kind identifies the concrete category of a flow object.
// Values are the BPMN element local names, which is also how they are rendered in messages.
type Kind string

const (
	KindStartEvent             Kind = "startEvent"
	KindEndEvent               Kind = "endEvent"
	KindIntermediateThrowEvent Kind = "intermediateThrowEvent"
	KindIntermediateCatchEvent Kind = "intermediateCatchEvent"
	KindBoundaryEvent          Kind = "boundaryEvent"

	KindTask         Kind = "task"
	KindUserTask     Kind = "userTask"
	KindServiceTask  Kind = "serviceTask"
	KindScriptTask   Kind = "scriptTask"
	KindCallActivity Kind = "callActivity"
	KindSubProcess   Kind = "subProcess"

	KindExclusiveGateway  Kind = "exclusiveGateway"
	KindInclusiveGateway  Kind = "inclusiveGateway"
	KindParallelGateway   Kind = "parallelGateway"
	KindEventBasedGateway Kind = "eventBasedGateway"
)

// String returns the human-facing category name.
func (k Kind) String() string { return string(k) }

// FlowObject subsumes every process element that can have incoming and outgoing
// sequence flows. It owns no graph structure; connectivity is answered by the
// definition it belongs to.
//
// The id and kind never change. The name may be edited while the definition is
// being built; once the definition is finalized the object is frozen and can be
// shared by any number of concurrently running process instances.
type FlowObject struct {
	id     string
	name   string
	kind   Kind
	frozen atomic.Bool
}

// NewFlowObject creates a mutable flow object.
func NewFlowObject(id, name string, kind Kind) *FlowObject {
	return &FlowObject{id: id, name: name, kind: kind}
}

// ID returns the identifier, unique within a process definition.
func (f *FlowObject) ID() string { return f.id }

// Name returns the label. It may be empty or whitespace-only.
func (f *FlowObject) Name() string { return f.name }

// Kind returns the node category.
func (f *FlowObject) Kind() Kind { return f.kind }

// SetName changes the label. Returns ErrFinalized once the object has been frozen.
func (f *FlowObject) SetName(name string) error {
	if f.frozen.Load() {
		return ErrFinalized
	}
	f.name = name
	return nil
}

// Freeze makes the flow object read-only. It is idempotent.
func (f *FlowObject) Freeze() { f.frozen.Store(true) }

// Frozen reports whether Freeze has been called.
func (f *FlowObject) Frozen() bool { return f.frozen.Load() }

// SequenceFlow is a directed connection between two flow objects.
type SequenceFlow struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	SourceRef string `json:"source_ref" yaml:"source_ref"`
	TargetRef string `json:"target_ref" yaml:"target_ref"`

	// Condition is carried for specialized gateways; the default behavior never evaluates it.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}
