package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/pkg/ports"
)

// Import checks that raw compiles and saves it into store.
// An empty id takes the id declared by the description.
func Import(ctx context.Context, eng *bpmnflow.Engine, store ports.DefinitionStore, id string, raw []byte, w io.Writer) (string, error) {
	def, err := eng.Parse(raw)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = def.ID
	}
	if err := store.SaveDefinition(ctx, id, raw); err != nil {
		return "", fmt.Errorf("save %s: %w", id, err)
	}
	fmt.Fprintf(w, "imported %s (%d flow objects)\n", id, len(def.FlowObjects()))
	return id, nil
}
