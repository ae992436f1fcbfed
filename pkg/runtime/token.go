package runtime

// Token is a unit of control travelling the process graph.
type Token struct {
	ID string `json:"id"`
	// SequenceFlowID is the flow the token was emitted along. Empty for start tokens.
	SequenceFlowID string `json:"sequence_flow_id,omitempty"`
	// FlowObjectID is the flow object the token is headed to, or completed at.
	FlowObjectID string `json:"flow_object_id"`
	Data         any    `json:"data,omitempty"`
}
