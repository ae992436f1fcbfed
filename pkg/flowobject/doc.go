/*
Package flowobject implements the behavior shared by every node of a process graph.

It provides the default execution semantics, which fan an incoming token out along
every outgoing sequence flow, and the structural validation rules that concrete
node kinds compose to check their connectivity.

Rules never stop at the first defect: each one appends at most one finding to the
error sink it is given and returns, so a caller can apply every rule of every flow
object in a single pass.

	sink := validation.NewErrorQueue()
	flowobject.Apply(fo, def, sink,
		flowobject.RuleName,
		flowobject.RuleIncoming,
		flowobject.RuleOneOutgoing,
	)
*/
package flowobject
