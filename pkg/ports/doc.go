/*
Package ports defines the driven ports (interfaces) for the bpmnflow engine.

These interfaces decouple the flow-object core from the collaborators it relies on,
allowing the same validation rules and default token forwarding to work against any
graph representation, runtime, error sink or definition storage backend.

# Key Interfaces

  - Connectivity: Answers incoming/outgoing sequence flow queries for a flow object.
  - ExecutionContext: Propagates a token along a sequence flow at runtime.
  - ErrorSink: Append-only collector of structural validation findings.
  - DefinitionLoader / DefinitionStore: Retrieve (and persist) raw process descriptions.
*/
package ports
