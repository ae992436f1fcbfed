package registry_test

import (
	"testing"

	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/flowobject"
	"github.com/aretw0/bpmnflow/pkg/ports"
	"github.com/aretw0/bpmnflow/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct{ codes []domain.ErrorCode }

func (s *sink) AddError(code domain.ErrorCode, _ string) { s.codes = append(s.codes, code) }

type countingContext struct {
	graph   ports.Connectivity
	emitted []string
}

func (c *countingContext) OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow {
	return c.graph.OutgoingFlows(fo)
}

func (c *countingContext) EmitTokenAlong(flow *domain.SequenceFlow, _ any) {
	c.emitted = append(c.emitted, flow.ID)
}

// isolated returns a finalized definition holding a single disconnected flow object.
func isolated(t *testing.T, fo *domain.FlowObject) *definition.ProcessDefinition {
	t.Helper()
	def := definition.New("p", "")
	require.NoError(t, def.AddFlowObject(fo))
	def.Finalize()
	return def
}

func TestRegistry_RegisterLookup(t *testing.T) {
	r := registry.NewRegistry()
	_, ok := r.Lookup(domain.KindTask)
	assert.False(t, ok)

	r.Register(domain.KindTask, registry.Behavior{Rules: []flowobject.Rule{flowobject.RuleName}})
	r.Register(domain.KindEndEvent, registry.Behavior{})

	b, ok := r.Lookup(domain.KindTask)
	require.True(t, ok)
	assert.Len(t, b.Rules, 1)
	assert.Equal(t, []domain.Kind{domain.KindEndEvent, domain.KindTask}, r.Kinds())
}

func TestRegistry_NewNodeUnknownKind(t *testing.T) {
	r := registry.NewRegistry()
	_, err := r.NewNode(domain.NewFlowObject("x", "X", domain.Kind("choreographyTask")))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestDefault_IsolatedNodes(t *testing.T) {
	tests := []struct {
		kind domain.Kind
		name string
		want []domain.ErrorCode
	}{
		{domain.KindStartEvent, "Start", []domain.ErrorCode{"FO3"}},
		{domain.KindEndEvent, "End", []domain.ErrorCode{"FO5"}},
		{domain.KindBoundaryEvent, "", []domain.ErrorCode{"FO1", "FO3"}},
		{domain.KindTask, "", []domain.ErrorCode{"FO1", "FO5", "FO3"}},
		{domain.KindServiceTask, "Call API", []domain.ErrorCode{"FO5", "FO3"}},
		{domain.KindIntermediateCatchEvent, "Wait", []domain.ErrorCode{"FO5", "FO3"}},
		{domain.KindExclusiveGateway, "", []domain.ErrorCode{"FO5", "FO2"}},
		{domain.KindParallelGateway, "", []domain.ErrorCode{"FO5", "FO2"}},
	}

	r := registry.Default()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			fo := domain.NewFlowObject("n1", tt.name, tt.kind)
			node, err := r.NewNode(fo)
			require.NoError(t, err)

			s := &sink{}
			node.Validate(isolated(t, fo), s)
			assert.Equal(t, tt.want, s.codes)
		})
	}
}

func TestDefault_ForwardsToEveryOutgoingFlow(t *testing.T) {
	def := definition.New("p", "")
	gw := domain.NewFlowObject("gw", "Choose", domain.KindExclusiveGateway)
	require.NoError(t, def.AddFlowObject(gw))
	require.NoError(t, def.AddFlowObject(domain.NewFlowObject("a", "A", domain.KindTask)))
	require.NoError(t, def.AddFlowObject(domain.NewFlowObject("b", "B", domain.KindTask)))
	require.NoError(t, def.AddSequenceFlow(&domain.SequenceFlow{ID: "ga", SourceRef: "gw", TargetRef: "a"}))
	require.NoError(t, def.AddSequenceFlow(&domain.SequenceFlow{ID: "gb", SourceRef: "gw", TargetRef: "b"}))
	def.Finalize()

	node, err := registry.Default().NewNode(gw)
	require.NoError(t, err)

	ctx := &countingContext{graph: def}
	node.Forward(ctx, nil)

	assert.ElementsMatch(t, []string{"ga", "gb"}, ctx.emitted)
}

func TestRegistry_ForwardOverride(t *testing.T) {
	r := registry.Default()
	r.Register(domain.KindEndEvent, registry.Behavior{
		Rules:   []flowobject.Rule{flowobject.RuleNoOutgoing},
		Forward: func(ports.ExecutionContext, *domain.FlowObject, any) {},
	})

	def := definition.New("p", "")
	end := domain.NewFlowObject("end", "End", domain.KindEndEvent)
	require.NoError(t, def.AddFlowObject(end))
	require.NoError(t, def.AddFlowObject(domain.NewFlowObject("t", "T", domain.KindTask)))
	require.NoError(t, def.AddSequenceFlow(&domain.SequenceFlow{ID: "bad", SourceRef: "end", TargetRef: "t"}))
	def.Finalize()

	node, err := r.NewNode(end)
	require.NoError(t, err)

	ctx := &countingContext{graph: def}
	node.Forward(ctx, nil)
	assert.Empty(t, ctx.emitted)

	s := &sink{}
	node.Validate(def, s)
	assert.Equal(t, []domain.ErrorCode{"FO4"}, s.codes)
}
