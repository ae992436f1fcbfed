package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/graph"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/runtime"
)

// RunOptions configure a single process run from the command line.
type RunOptions struct {
	// Data is an optional JSON document attached to every token.
	Data string
	// Graph prints a Mermaid flowchart with the visited flow objects highlighted.
	Graph bool
	// JSON prints the completed tokens as JSON instead of a trace.
	JSON  bool
	Debug bool
}

// trace records the flow objects entered by a process, in order.
type trace struct {
	mu      sync.Mutex
	visited []string
}

func (t *trace) hooks(next domain.LifecycleHooks) domain.LifecycleHooks {
	h := next
	h.OnNodeEnter = func(ctx context.Context, e *domain.NodeEvent) {
		t.mu.Lock()
		t.visited = append(t.visited, e.FlowObjectID)
		t.mu.Unlock()
		if next.OnNodeEnter != nil {
			next.OnNodeEnter(ctx, e)
		}
	}
	return h
}

// RunProcess starts the definition id on every start event, drains it, and writes the outcome to w.
func RunProcess(ctx context.Context, eng *bpmnflow.Engine, id string, opts RunOptions, logger *slog.Logger, w io.Writer) error {
	var data any
	if opts.Data != "" {
		if err := json.Unmarshal([]byte(opts.Data), &data); err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
	}

	var base domain.LifecycleHooks
	if opts.Debug {
		base = observability.LoggingHooks(logger)
	}
	tr := &trace{}

	p, err := eng.Run(ctx, id, data, runtime.WithLifecycleHooks(tr.hooks(base)))
	if p == nil {
		return err
	}

	switch {
	case opts.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(map[string]any{
			"process_id": p.ID,
			"steps":      p.Steps(),
			"visited":    tr.visited,
			"completed":  p.Completed(),
		}); encErr != nil {
			return encErr
		}
	case opts.Graph:
		def, defErr := eng.Definition(ctx, id)
		if defErr != nil {
			return defErr
		}
		overlay := &graph.GraphOverlay{VisitedNodes: tr.visited}
		if len(tr.visited) > 0 {
			overlay.CurrentNode = tr.visited[len(tr.visited)-1]
		}
		fmt.Fprint(w, graph.GenerateMermaid(def, overlay))
	default:
		fmt.Fprintf(w, "process %s\n", p.ID)
		for i, foID := range tr.visited {
			fmt.Fprintf(w, "%4d  %s\n", i+1, foID)
		}
		for _, tok := range p.Completed() {
			fmt.Fprintf(w, "completed  %s at %s\n", tok.ID, tok.FlowObjectID)
		}
	}
	return err
}
