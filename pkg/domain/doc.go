/*
Package domain contains the core domain models of the bpmnflow engine.

It defines the passive descriptors of a process definition (flow objects and the
sequence flows connecting them) together with the fixed vocabulary of structural
validation codes. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - FlowObject: An identified, typed, named node of a process graph (task, gateway, event).
  - SequenceFlow: A directed connection along which tokens travel.
  - ErrorCode: The closed set of validation codes (FO1..FO5) consumers key off.
  - ValidationError: A single structural finding, as appended to an error sink.
*/
package domain
