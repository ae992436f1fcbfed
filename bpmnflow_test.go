package bpmnflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/pkg/adapters/memory"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/runtime"
	"github.com/aretw0/bpmnflow/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderYAML = `
id: order
name: Order handling
flow_objects:
  - {id: start, name: Order received, type: startEvent}
  - {id: check, name: Check stock, type: serviceTask}
  - {id: split, type: parallelGateway}
  - {id: pack, name: Pack, type: task}
  - {id: bill, name: Bill, type: task}
  - {id: join, type: parallelGateway}
  - {id: end, name: Shipped, type: endEvent}
sequence_flows:
  - {id: f1, source_ref: start, target_ref: check}
  - {id: f2, source_ref: check, target_ref: split}
  - {id: f3, source_ref: split, target_ref: pack}
  - {id: f4, source_ref: split, target_ref: bill}
  - {id: f5, source_ref: pack, target_ref: join}
  - {id: f6, source_ref: bill, target_ref: join}
  - {id: f7, source_ref: join, target_ref: end}
`

const brokenYAML = `
id: broken
flow_objects:
  - {id: s, name: "  ", type: startEvent}
  - {id: gw, name: Route, type: exclusiveGateway}
  - {id: e, name: Done, type: endEvent}
sequence_flows:
  - {source_ref: s, target_ref: e}
`

func newEngine(t *testing.T, opts ...bpmnflow.Option) *bpmnflow.Engine {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"order":  orderYAML,
		"broken": brokenYAML,
		"bad":    "id: [",
	})
	eng, err := bpmnflow.New("", append([]bpmnflow.Option{bpmnflow.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestNew_RequiresDirWithoutLoader(t *testing.T) {
	_, err := bpmnflow.New("")
	assert.Error(t, err)
}

func TestNew_DirectoryLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order.yaml"), []byte(orderYAML), 0644))

	eng, err := bpmnflow.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), eng.Name)

	ids, err := eng.Definitions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order"}, ids)

	report, err := eng.Validate(context.Background(), "order")
	require.NoError(t, err)
	assert.True(t, report.Valid())
}

func TestEngine_Validate(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		report, err := eng.Validate(ctx, "order")
		require.NoError(t, err)
		assert.True(t, report.Valid())
		assert.Equal(t, "Order handling", report.Name)
		assert.Equal(t, 7, report.FlowObjects)
		assert.NoError(t, report.Err())
	})

	t.Run("findings", func(t *testing.T) {
		report, err := eng.Validate(ctx, "broken")
		require.NoError(t, err)
		assert.False(t, report.Valid())
		assert.Equal(t, []domain.ValidationError{
			{Code: domain.CodeMissingName, Message: "Found a startEvent flow object having no name. BPMN id='s'."},
			{Code: domain.CodeMissingOutgoing, Message: "The exclusiveGateway 'Route' must have at least one outgoing sequence flow."},
			{Code: domain.CodeMissingIncoming, Message: "The exclusiveGateway 'Route' must have at least one incoming sequence flow."},
		}, report.Errors)
		assert.Len(t, validation.ValidationErrors(report.Err()), 3)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := eng.Validate(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("unparseable", func(t *testing.T) {
		_, err := eng.Validate(ctx, "bad")
		assert.Error(t, err)
	})
}

func TestEngine_ValidateAll(t *testing.T) {
	eng := newEngine(t)

	reports, err := eng.ValidateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "bad", reports[0].DefinitionID)
	assert.NotEmpty(t, reports[0].LoadError)
	assert.False(t, reports[0].Valid())

	assert.Equal(t, "broken", reports[1].DefinitionID)
	assert.Len(t, reports[1].Errors, 3)

	assert.Equal(t, "order", reports[2].DefinitionID)
	assert.True(t, reports[2].Valid())
}

func TestEngine_ValidateRaw(t *testing.T) {
	eng := newEngine(t)

	report, err := eng.ValidateRaw(context.Background(), []byte(`{
		"id": "json",
		"flow_objects": [
			{"id": "s", "name": "Start", "type": "startEvent"},
			{"id": "e", "name": "End", "type": "endEvent"}
		],
		"sequence_flows": [{"source_ref": "s", "target_ref": "e"}]
	}`))
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Equal(t, "json", report.DefinitionID)
}

func TestEngine_Run(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	var entered []string
	eng := newEngine(t,
		bpmnflow.WithMetrics(metrics),
		bpmnflow.WithLifecycleHooks(domain.LifecycleHooks{
			OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
				entered = append(entered, e.FlowObjectID)
			},
		}),
	)

	p, err := eng.Run(context.Background(), "order", map[string]any{"sku": "42"})
	require.NoError(t, err)
	assert.True(t, p.Done())

	completed := p.Completed()
	require.Len(t, completed, 2)
	for _, tok := range completed {
		assert.Equal(t, "end", tok.FlowObjectID)
		assert.Equal(t, map[string]any{"sku": "42"}, tok.Data)
	}
	assert.Contains(t, entered, "pack")
	assert.Contains(t, entered, "bill")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.TokensCompleted))
}

func TestEngine_RunStepLimit(t *testing.T) {
	eng := newEngine(t, bpmnflow.WithMaxSteps(3))

	p, err := eng.Run(context.Background(), "order", nil)
	assert.ErrorIs(t, err, runtime.ErrStepLimit)
	assert.Equal(t, 3, p.Steps())
}

const alienYAML = `
id: alien
flow_objects:
  - {id: s, name: "", type: startEvent}
  - {id: x, name: Sign, type: manualTask}
  - {id: e, name: "", type: endEvent}
sequence_flows:
  - {source_ref: s, target_ref: x}
  - {source_ref: x, target_ref: e}
`

func TestEngine_UnknownKindKeepsFindings(t *testing.T) {
	ctx := context.Background()
	eng, err := bpmnflow.New("", bpmnflow.WithLoader(memory.NewLoader(map[string]string{
		"alien": alienYAML,
		"order": orderYAML,
	})))
	require.NoError(t, err)

	check := func(t *testing.T, report *bpmnflow.Report) {
		t.Helper()
		require.NotNil(t, report)
		assert.Equal(t, "alien", report.DefinitionID)
		assert.Equal(t, 3, report.FlowObjects)
		assert.Empty(t, report.LoadError)
		assert.False(t, report.Valid())

		require.Len(t, report.NodeErrors, 1)
		assert.Contains(t, report.NodeErrors[0], `"x"`)

		codes := make([]domain.ErrorCode, 0, len(report.Errors))
		for _, e := range report.Errors {
			codes = append(codes, e.Code)
		}
		assert.Equal(t, []domain.ErrorCode{domain.CodeMissingName, domain.CodeMissingName}, codes)
	}

	t.Run("ValidateRaw", func(t *testing.T) {
		report, err := eng.ValidateRaw(ctx, []byte(alienYAML))
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
		check(t, report)
	})

	t.Run("Validate", func(t *testing.T) {
		report, err := eng.Validate(ctx, "alien")
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
		check(t, report)
	})

	t.Run("ValidateAll", func(t *testing.T) {
		reports, err := eng.ValidateAll(ctx)
		require.NoError(t, err)
		require.Len(t, reports, 2)
		check(t, reports[0])
		assert.True(t, reports[1].Valid())
	})
}
