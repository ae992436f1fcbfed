package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventTokenEmitted   EventType = "token_emitted"
	EventTokenCompleted EventType = "token_completed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ProcessID string    `json:"process_id"`
}

// NodeEvent represents a token entering a flow object.
type NodeEvent struct {
	EventBase
	FlowObjectID string `json:"flow_object_id"`
	Kind         Kind   `json:"kind"`
	TokenID      string `json:"token_id"`
}

// TokenEvent represents a token being emitted along a sequence flow, or
// completing on a flow object that has nowhere else to send it.
type TokenEvent struct {
	EventBase
	TokenID        string `json:"token_id"`
	SequenceFlowID string `json:"sequence_flow_id,omitempty"`
	FlowObjectID   string `json:"flow_object_id"`
}

// LifecycleHooks defines callbacks for runtime observability.
type LifecycleHooks struct {
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnTokenEmitted   func(context.Context, *TokenEvent)
	OnTokenCompleted func(context.Context, *TokenEvent)
}
