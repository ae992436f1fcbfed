package flowobject_test

import (
	"sync"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// fakeGraph answers connectivity from fixed counts.
type fakeGraph struct {
	outgoing []*domain.SequenceFlow
	incoming []*domain.SequenceFlow
}

func newFakeGraph(out, in int) *fakeGraph {
	g := &fakeGraph{}
	for i := 0; i < out; i++ {
		g.outgoing = append(g.outgoing, &domain.SequenceFlow{ID: "out" + string(rune('a'+i))})
	}
	for i := 0; i < in; i++ {
		g.incoming = append(g.incoming, &domain.SequenceFlow{ID: "in" + string(rune('a'+i))})
	}
	return g
}

func (g *fakeGraph) OutgoingFlows(*domain.FlowObject) []*domain.SequenceFlow { return g.outgoing }
func (g *fakeGraph) HasOutgoingFlows(*domain.FlowObject) bool                { return len(g.outgoing) > 0 }
func (g *fakeGraph) IncomingFlows(*domain.FlowObject) []*domain.SequenceFlow { return g.incoming }
func (g *fakeGraph) HasIncomingFlows(*domain.FlowObject) bool                { return len(g.incoming) > 0 }

// recordingSink keeps every finding in call order.
type recordingSink struct {
	errs []domain.ValidationError
}

func (s *recordingSink) AddError(code domain.ErrorCode, message string) {
	s.errs = append(s.errs, domain.ValidationError{Code: code, Message: message})
}

func (s *recordingSink) codes() []domain.ErrorCode {
	out := make([]domain.ErrorCode, 0, len(s.errs))
	for _, e := range s.errs {
		out = append(out, e.Code)
	}
	return out
}

type emission struct {
	flowID string
	data   any
}

// recordingContext serves outgoing flows from a fakeGraph and records emissions.
type recordingContext struct {
	graph *fakeGraph

	mu    sync.Mutex
	calls []emission
}

func (c *recordingContext) OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow {
	return c.graph.OutgoingFlows(fo)
}

func (c *recordingContext) EmitTokenAlong(flow *domain.SequenceFlow, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, emission{flowID: flow.ID, data: data})
}
