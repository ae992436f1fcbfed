package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/graph"
)

// Graph writes the Mermaid flowchart of definition id to w.
func Graph(ctx context.Context, eng *bpmnflow.Engine, id string, w io.Writer) error {
	def, err := eng.Definition(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(w, graph.GenerateMermaid(def, nil))
	return nil
}
