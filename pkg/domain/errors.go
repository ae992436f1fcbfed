package domain

import "errors"

// ErrFinalized is returned when a frozen definition or flow object is modified.
var ErrFinalized = errors.New("process definition is finalized")

// ErrDefinitionNotFound is returned when a process definition id cannot be found by a loader.
var ErrDefinitionNotFound = errors.New("process definition not found")

// ErrFlowObjectNotFound is returned when a flow object id is not part of a definition.
var ErrFlowObjectNotFound = errors.New("flow object not found")

// ErrDuplicateID is returned when a flow object or sequence flow id is reused.
var ErrDuplicateID = errors.New("duplicate id")

// ErrUnknownReference is returned when a sequence flow points at a missing flow object.
var ErrUnknownReference = errors.New("unknown flow object reference")

// ErrUnknownKind is returned when no behavior is registered for a flow object kind.
var ErrUnknownKind = errors.New("unknown flow object kind")

// ErrInvalidDescription is returned when a process description cannot be compiled into a definition.
var ErrInvalidDescription = errors.New("invalid process description")
