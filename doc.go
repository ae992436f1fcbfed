/*
Package bpmnflow is a structural validator and token runner for BPMN-style process definitions.

A process definition is a graph of flow objects (events, activities, gateways) connected by
sequence flows. The engine checks every flow object against the structural rules of its kind and
can drive a token-based process instance through the graph using the default fan-out behavior.

# Concept

Process descriptions are plain YAML or JSON documents:

	id: order
	name: Order handling
	flow_objects:
	  - {id: start, name: Order received, type: startEvent}
	  - {id: ship, name: Ship, type: task}
	  - {id: end, name: Shipped, type: endEvent}
	sequence_flows:
	  - {source_ref: start, target_ref: ship}
	  - {source_ref: ship, target_ref: end}

Each finding carries a stable code (FO1 to FO5) and a human-readable message. Consumers key off
the codes; the messages are meant for people.

# Usage

	eng, err := bpmnflow.New("./processes")
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Validate(ctx, "order")
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range report.Errors {
		fmt.Println(e.Code, e.Message)
	}

A custom loader (in-memory, Redis) can be injected with WithLoader, and per-kind behavior can be
replaced with WithRegistry.

# Architecture

The core (pkg/domain, pkg/flowobject, pkg/definition, pkg/validation, pkg/runtime) depends only on
the interfaces in pkg/ports. Adapters under pkg/adapters provide loaders and stores plus the HTTP
and MCP servers used by cmd/bpmnflow.
*/
package bpmnflow
