// Package definition holds the static graph of a process: its flow objects and
// the sequence flows between them. A finalized ProcessDefinition is the
// ports.Connectivity collaborator used by validation and by the runtime.
package definition

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// ProcessDefinition is built once, finalized, and then shared read-only by every
// process instance that runs it.
type ProcessDefinition struct {
	ID   string
	Name string

	mu        sync.RWMutex
	finalized bool
	metadata  map[string]string
	objects   map[string]*domain.FlowObject
	flows     map[string]*domain.SequenceFlow
	flowOrder []string
	outgoing  map[string][]*domain.SequenceFlow
	incoming  map[string][]*domain.SequenceFlow
}

// New creates an empty, mutable process definition.
func New(id, name string) *ProcessDefinition {
	return &ProcessDefinition{
		ID:       id,
		Name:     name,
		objects:  make(map[string]*domain.FlowObject),
		flows:    make(map[string]*domain.SequenceFlow),
		outgoing: make(map[string][]*domain.SequenceFlow),
		incoming: make(map[string][]*domain.SequenceFlow),
	}
}

// SetMetadata attaches a free-form key/value pair to the definition.
func (d *ProcessDefinition) SetMetadata(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.finalized {
		return domain.ErrFinalized
	}
	if d.metadata == nil {
		d.metadata = make(map[string]string)
	}
	d.metadata[key] = value
	return nil
}

// Metadata returns a copy of the definition metadata, or nil when there is none.
func (d *ProcessDefinition) Metadata() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.metadata))
	for k, v := range d.metadata {
		out[k] = v
	}
	return out
}

// AddFlowObject registers a flow object.
func (d *ProcessDefinition) AddFlowObject(fo *domain.FlowObject) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.finalized {
		return domain.ErrFinalized
	}
	if _, ok := d.objects[fo.ID()]; ok {
		return fmt.Errorf("flow object %q: %w", fo.ID(), domain.ErrDuplicateID)
	}
	d.objects[fo.ID()] = fo
	return nil
}

// AddSequenceFlow connects two registered flow objects.
func (d *ProcessDefinition) AddSequenceFlow(flow *domain.SequenceFlow) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.finalized {
		return domain.ErrFinalized
	}
	if _, ok := d.flows[flow.ID]; ok {
		return fmt.Errorf("sequence flow %q: %w", flow.ID, domain.ErrDuplicateID)
	}
	if _, ok := d.objects[flow.SourceRef]; !ok {
		return fmt.Errorf("sequence flow %q source %q: %w", flow.ID, flow.SourceRef, domain.ErrUnknownReference)
	}
	if _, ok := d.objects[flow.TargetRef]; !ok {
		return fmt.Errorf("sequence flow %q target %q: %w", flow.ID, flow.TargetRef, domain.ErrUnknownReference)
	}

	d.flows[flow.ID] = flow
	d.flowOrder = append(d.flowOrder, flow.ID)
	d.outgoing[flow.SourceRef] = append(d.outgoing[flow.SourceRef], flow)
	d.incoming[flow.TargetRef] = append(d.incoming[flow.TargetRef], flow)
	return nil
}

// Finalize freezes the definition and every flow object in it. It is idempotent.
func (d *ProcessDefinition) Finalize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.finalized = true
	for _, fo := range d.objects {
		fo.Freeze()
	}
}

// Finalized reports whether Finalize has been called.
func (d *ProcessDefinition) Finalized() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.finalized
}

// FlowObject looks up a flow object by id.
func (d *ProcessDefinition) FlowObject(id string) (*domain.FlowObject, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	fo, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("%q in %q: %w", id, d.ID, domain.ErrFlowObjectNotFound)
	}
	return fo, nil
}

// FlowObjects returns every flow object sorted by id.
func (d *ProcessDefinition) FlowObjects() []*domain.FlowObject {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.FlowObject, 0, len(d.objects))
	for _, fo := range d.objects {
		out = append(out, fo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// SequenceFlows returns every sequence flow in insertion order.
func (d *ProcessDefinition) SequenceFlows() []*domain.SequenceFlow {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.SequenceFlow, 0, len(d.flowOrder))
	for _, id := range d.flowOrder {
		out = append(out, d.flows[id])
	}
	return out
}

// SequenceFlow looks up a sequence flow by id.
func (d *ProcessDefinition) SequenceFlow(id string) (*domain.SequenceFlow, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	flow, ok := d.flows[id]
	return flow, ok
}

// StartEvents returns the flow objects of kind startEvent, sorted by id.
func (d *ProcessDefinition) StartEvents() []*domain.FlowObject {
	var out []*domain.FlowObject
	for _, fo := range d.FlowObjects() {
		if fo.Kind() == domain.KindStartEvent {
			out = append(out, fo)
		}
	}
	return out
}

// OutgoingFlows returns the sequence flows leaving fo, in declaration order.
func (d *ProcessDefinition) OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*domain.SequenceFlow(nil), d.outgoing[fo.ID()]...)
}

// HasOutgoingFlows reports whether any sequence flow leaves fo.
func (d *ProcessDefinition) HasOutgoingFlows(fo *domain.FlowObject) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.outgoing[fo.ID()]) > 0
}

// IncomingFlows returns the sequence flows entering fo, in declaration order.
func (d *ProcessDefinition) IncomingFlows(fo *domain.FlowObject) []*domain.SequenceFlow {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*domain.SequenceFlow(nil), d.incoming[fo.ID()]...)
}

// HasIncomingFlows reports whether any sequence flow enters fo.
func (d *ProcessDefinition) HasIncomingFlows(fo *domain.FlowObject) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.incoming[fo.ID()]) > 0
}
