package registry

import (
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/flowobject"
)

var (
	activityRules = []flowobject.Rule{flowobject.RuleName, flowobject.RuleIncoming, flowobject.RuleOneOutgoing}
	gatewayRules  = []flowobject.Rule{flowobject.RuleIncoming, flowobject.RuleOutgoing}
)

// Default returns a registry with the standard BPMN kinds. Every kind forwards
// tokens with the default fan-out; specialized gateway routing is registered by
// the host when it needs it.
func Default() *Registry {
	r := NewRegistry()

	r.Register(domain.KindStartEvent, Behavior{Rules: []flowobject.Rule{
		flowobject.RuleName, flowobject.RuleNoIncoming, flowobject.RuleOneOutgoing,
	}})
	r.Register(domain.KindEndEvent, Behavior{Rules: []flowobject.Rule{
		flowobject.RuleName, flowobject.RuleIncoming, flowobject.RuleNoOutgoing,
	}})
	r.Register(domain.KindBoundaryEvent, Behavior{Rules: []flowobject.Rule{
		flowobject.RuleName, flowobject.RuleNoIncoming, flowobject.RuleOneOutgoing,
	}})

	for _, k := range []domain.Kind{
		domain.KindIntermediateThrowEvent,
		domain.KindIntermediateCatchEvent,
		domain.KindTask,
		domain.KindUserTask,
		domain.KindServiceTask,
		domain.KindScriptTask,
		domain.KindCallActivity,
		domain.KindSubProcess,
	} {
		r.Register(k, Behavior{Rules: activityRules})
	}

	for _, k := range []domain.Kind{
		domain.KindExclusiveGateway,
		domain.KindInclusiveGateway,
		domain.KindParallelGateway,
		domain.KindEventBasedGateway,
	} {
		r.Register(k, Behavior{Rules: gatewayRules})
	}

	return r
}
