package flowobject

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/ports"
)

// Rule is a single structural check. It appends at most one finding to sink.
type Rule func(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink)

var (
	RuleName        Rule = func(fo *domain.FlowObject, _ ports.Connectivity, sink ports.ErrorSink) { AssertName(fo, sink) }
	RuleOutgoing    Rule = AssertOutgoingFlows
	RuleOneOutgoing Rule = AssertOneOutgoingFlow
	RuleNoOutgoing  Rule = AssertNoOutgoingFlows
	RuleIncoming    Rule = AssertIncomingFlows
	RuleNoIncoming  Rule = AssertNoIncomingFlows
)

// Apply runs every rule against fo.
func Apply(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink, rules ...Rule) {
	for _, rule := range rules {
		rule(fo, graph, sink)
	}
}

// AssertName reports FO1 when the trimmed name is empty.
func AssertName(fo *domain.FlowObject, sink ports.ErrorSink) {
	if strings.TrimSpace(fo.Name()) == "" {
		sink.AddError(domain.CodeMissingName,
			fmt.Sprintf("Found a %s flow object having no name. BPMN id='%s'.", fo.Kind(), fo.ID()))
	}
}

// AssertOutgoingFlows reports FO2 when fo has no outgoing sequence flow.
func AssertOutgoingFlows(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink) {
	if !graph.HasOutgoingFlows(fo) {
		sink.AddError(domain.CodeMissingOutgoing, mustMessage(fo, "must have at least one outgoing sequence flow"))
	}
}

// AssertOneOutgoingFlow reports FO3 unless fo has exactly one outgoing sequence flow.
func AssertOneOutgoingFlow(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink) {
	if len(graph.OutgoingFlows(fo)) != 1 {
		sink.AddError(domain.CodeNotOneOutgoing, mustMessage(fo, "must have exactly one outgoing sequence flow"))
	}
}

// AssertNoOutgoingFlows reports FO4 when fo has any outgoing sequence flow.
func AssertNoOutgoingFlows(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink) {
	if graph.HasOutgoingFlows(fo) {
		sink.AddError(domain.CodeUnexpectedOutgoing, mustMessage(fo, "must not have outgoing sequence flows"))
	}
}

// AssertIncomingFlows reports FO5 when fo has no incoming sequence flow.
func AssertIncomingFlows(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink) {
	if !graph.HasIncomingFlows(fo) {
		sink.AddError(domain.CodeMissingIncoming, mustMessage(fo, "must have at least one incoming sequence flow"))
	}
}

// AssertNoIncomingFlows reports FO5 when fo has any incoming sequence flow.
func AssertNoIncomingFlows(fo *domain.FlowObject, graph ports.Connectivity, sink ports.ErrorSink) {
	if graph.HasIncomingFlows(fo) {
		sink.AddError(domain.CodeUnexpectedIncoming, mustMessage(fo, "must not have incoming sequence flows"))
	}
}

func mustMessage(fo *domain.FlowObject, requirement string) string {
	return fmt.Sprintf("The %s '%s' %s.", fo.Kind(), fo.Name(), requirement)
}
