package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every runtime event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter",
				"process_id", e.ProcessID,
				"flow_object_id", e.FlowObjectID,
				"kind", e.Kind,
				"token_id", e.TokenID,
			)
		},
		OnTokenEmitted: func(ctx context.Context, e *domain.TokenEvent) {
			logger.DebugContext(ctx, "token_emitted",
				"process_id", e.ProcessID,
				"token_id", e.TokenID,
				"sequence_flow_id", e.SequenceFlowID,
				"flow_object_id", e.FlowObjectID,
			)
		},
		OnTokenCompleted: func(ctx context.Context, e *domain.TokenEvent) {
			logger.DebugContext(ctx, "token_completed",
				"process_id", e.ProcessID,
				"token_id", e.TokenID,
				"flow_object_id", e.FlowObjectID,
			)
		},
	}
}
