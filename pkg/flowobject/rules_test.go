package flowobject_test

import (
	"testing"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/flowobject"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestAssertName(t *testing.T) {
	tests := []struct {
		name string
		want []domain.ErrorCode
	}{
		{"", []domain.ErrorCode{domain.CodeMissingName}},
		{"   ", []domain.ErrorCode{domain.CodeMissingName}},
		{"\t\n", []domain.ErrorCode{domain.CodeMissingName}},
		{"Task A", nil},
		{"  Task A  ", nil},
	}

	for _, tt := range tests {
		sink := &recordingSink{}
		flowobject.AssertName(domain.NewFlowObject("t1", tt.name, domain.KindTask), sink)
		if diff := cmp.Diff(tt.want, sink.codes(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("AssertName(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestAssertName_Message(t *testing.T) {
	sink := &recordingSink{}
	flowobject.AssertName(domain.NewFlowObject("Task_0x1", "  ", domain.KindUserTask), sink)

	want := []domain.ValidationError{{
		Code:    "FO1",
		Message: "Found a userTask flow object having no name. BPMN id='Task_0x1'.",
	}}
	if diff := cmp.Diff(want, sink.errs); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectivityRules(t *testing.T) {
	tests := []struct {
		desc     string
		rule     flowobject.Rule
		out, in  int
		wantCode domain.ErrorCode
		wantMsg  string
	}{
		{"outgoing required, none", flowobject.RuleOutgoing, 0, 0, "FO2", "The task 'Task A' must have at least one outgoing sequence flow."},
		{"outgoing required, one", flowobject.RuleOutgoing, 1, 0, "", ""},
		{"outgoing required, many", flowobject.RuleOutgoing, 3, 0, "", ""},

		{"exactly one, none", flowobject.RuleOneOutgoing, 0, 0, "FO3", "The task 'Task A' must have exactly one outgoing sequence flow."},
		{"exactly one, one", flowobject.RuleOneOutgoing, 1, 0, "", ""},
		{"exactly one, two", flowobject.RuleOneOutgoing, 2, 0, "FO3", "The task 'Task A' must have exactly one outgoing sequence flow."},

		{"no outgoing, none", flowobject.RuleNoOutgoing, 0, 0, "", ""},
		{"no outgoing, one", flowobject.RuleNoOutgoing, 1, 0, "FO4", "The task 'Task A' must not have outgoing sequence flows."},
		{"no outgoing, many", flowobject.RuleNoOutgoing, 4, 0, "FO4", "The task 'Task A' must not have outgoing sequence flows."},

		{"incoming required, none", flowobject.RuleIncoming, 0, 0, "FO5", "The task 'Task A' must have at least one incoming sequence flow."},
		{"incoming required, one", flowobject.RuleIncoming, 0, 1, "", ""},
		{"no incoming, none", flowobject.RuleNoIncoming, 0, 0, "", ""},
		{"no incoming, one", flowobject.RuleNoIncoming, 0, 1, "FO5", "The task 'Task A' must not have incoming sequence flows."},
		{"no incoming, many", flowobject.RuleNoIncoming, 0, 2, "FO5", "The task 'Task A' must not have incoming sequence flows."},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			sink := &recordingSink{}
			tt.rule(domain.NewFlowObject("t1", "Task A", domain.KindTask), newFakeGraph(tt.out, tt.in), sink)

			if tt.wantCode == "" {
				assert.Empty(t, sink.errs)
				return
			}
			want := []domain.ValidationError{{Code: tt.wantCode, Message: tt.wantMsg}}
			if diff := cmp.Diff(want, sink.errs); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIncomingRules_ShareCode(t *testing.T) {
	fo := domain.NewFlowObject("t1", "Task A", domain.KindTask)

	none := &recordingSink{}
	flowobject.Apply(fo, newFakeGraph(1, 0), none, flowobject.RuleIncoming, flowobject.RuleNoIncoming)
	assert.Equal(t, []domain.ErrorCode{"FO5"}, none.codes())
	assert.Contains(t, none.errs[0].Message, "must have at least one incoming")

	some := &recordingSink{}
	flowobject.Apply(fo, newFakeGraph(1, 2), some, flowobject.RuleIncoming, flowobject.RuleNoIncoming)
	assert.Equal(t, []domain.ErrorCode{"FO5"}, some.codes())
	assert.Contains(t, some.errs[0].Message, "must not have incoming")
}

func TestApply_EndToEndGateway(t *testing.T) {
	fo := domain.NewFlowObject("Gateway_1", "", domain.Kind("ExclusiveGateway"))
	graph := newFakeGraph(0, 0)

	sink := &recordingSink{}
	flowobject.Apply(fo, graph, sink, flowobject.RuleName, flowobject.RuleOneOutgoing)
	want := []domain.ValidationError{
		{Code: "FO1", Message: "Found a ExclusiveGateway flow object having no name. BPMN id='Gateway_1'."},
		{Code: "FO3", Message: "The ExclusiveGateway '' must have exactly one outgoing sequence flow."},
	}
	if diff := cmp.Diff(want, sink.errs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	withIncoming := &recordingSink{}
	flowobject.Apply(fo, graph, withIncoming, flowobject.RuleName, flowobject.RuleOneOutgoing, flowobject.RuleIncoming)
	assert.Equal(t, []domain.ErrorCode{"FO1", "FO3", "FO5"}, withIncoming.codes())
}

func TestApply_Idempotent(t *testing.T) {
	fo := domain.NewFlowObject("e1", " ", domain.KindEndEvent)
	graph := newFakeGraph(2, 0)
	rules := []flowobject.Rule{flowobject.RuleName, flowobject.RuleIncoming, flowobject.RuleNoOutgoing}

	sink := &recordingSink{}
	flowobject.Apply(fo, graph, sink, rules...)
	first := append([]domain.ValidationError(nil), sink.errs...)
	flowobject.Apply(fo, graph, sink, rules...)

	assert.Len(t, first, 3)
	if diff := cmp.Diff(append(first, first...), sink.errs); diff != "" {
		t.Errorf("second pass differs (-want +got):\n%s", diff)
	}
}

func TestApply_NoRules(t *testing.T) {
	sink := &recordingSink{}
	flowobject.Apply(domain.NewFlowObject("x", "", domain.KindTask), newFakeGraph(0, 0), sink)
	assert.Empty(t, sink.errs)
}
