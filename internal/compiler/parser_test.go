package compiler

import (
	"os"
	"testing"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_YAML(t *testing.T) {
	data, err := os.ReadFile("testdata/order.yaml")
	require.NoError(t, err)

	def, err := NewParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "order", def.ID)
	assert.Equal(t, "Order handling", def.Name)
	assert.Equal(t, map[string]string{"owner": "sales"}, def.Metadata())
	assert.True(t, def.Finalized())
	assert.Len(t, def.FlowObjects(), 7)
	assert.Len(t, def.SequenceFlows(), 7)

	split, err := def.FlowObject("split")
	require.NoError(t, err)
	assert.Equal(t, domain.KindParallelGateway, split.Kind())
	assert.True(t, split.Frozen())
	assert.Len(t, def.OutgoingFlows(split), 2)
}

func TestParser_JSON(t *testing.T) {
	data := []byte(`{
		"id": "p1",
		"flow_objects": [
			{"id": "s", "name": "Start", "type": "startEvent"},
			{"id": "e", "name": "  ", "type": "endEvent"}
		],
		"sequence_flows": [
			{"source_ref": "s", "target_ref": "e", "condition": "true"}
		]
	}`)

	def, err := NewParser().Parse(data)
	require.NoError(t, err)

	flows := def.SequenceFlows()
	require.Len(t, flows, 1)
	assert.Equal(t, "s->e#0", flows[0].ID)
	assert.Equal(t, "true", flows[0].Condition)

	e, err := def.FlowObject("e")
	require.NoError(t, err)
	assert.Equal(t, "  ", e.Name())
}

func TestParser_WeakTyping(t *testing.T) {
	def, err := NewParser().Parse([]byte("id: 42\nflow_objects:\n  - {id: 1, name: One, type: task}\n"))
	require.NoError(t, err)
	assert.Equal(t, "42", def.ID)
	_, err = def.FlowObject("1")
	assert.NoError(t, err)
}

func TestParser_LoadErrors(t *testing.T) {
	tests := []struct {
		desc    string
		data    string
		wantErr error
		wantMsg string
	}{
		{desc: "empty", data: "", wantMsg: "empty process description"},
		{desc: "malformed", data: "id: [", wantMsg: "failed to parse"},
		{desc: "missing id", data: "name: x", wantMsg: "missing ID"},
		{desc: "flow object missing id", data: "id: p\nflow_objects:\n  - {name: x, type: task}\n", wantMsg: "flow object #0 missing ID"},
		{desc: "flow object missing type", data: "id: p\nflow_objects:\n  - {id: a}\n", wantMsg: "missing type"},
		{
			desc:    "duplicate flow object",
			data:    "id: p\nflow_objects:\n  - {id: a, type: task}\n  - {id: a, type: task}\n",
			wantErr: domain.ErrDuplicateID,
		},
		{
			desc:    "dangling reference",
			data:    "id: p\nflow_objects:\n  - {id: a, type: task}\nsequence_flows:\n  - {id: f, source_ref: a, target_ref: b}\n",
			wantErr: domain.ErrUnknownReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDescription)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParser_EncodeRoundTrip(t *testing.T) {
	p := NewParser()
	data, err := os.ReadFile("testdata/order.yaml")
	require.NoError(t, err)

	doc, err := p.Decode(data)
	require.NoError(t, err)

	encoded, err := p.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), "flow_objects:")
	assert.Contains(t, string(encoded), "source_ref: start")

	again, err := p.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
