package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/tui"
)

// ErrInvalid is returned by Validate when at least one definition has findings.
var ErrInvalid = errors.New("validation failed")

// Validate checks the given definitions (all of them when ids is empty) and writes a report to w.
// With jsonOutput the reports are written as a JSON array; otherwise as rendered markdown.
func Validate(ctx context.Context, eng *bpmnflow.Engine, ids []string, w io.Writer, jsonOutput bool) error {
	var reports []*bpmnflow.Report
	if len(ids) == 0 {
		all, err := eng.ValidateAll(ctx)
		if err != nil {
			return err
		}
		reports = all
	} else {
		for _, id := range ids {
			report, err := eng.Validate(ctx, id)
			if report == nil {
				report = &bpmnflow.Report{DefinitionID: id, LoadError: err.Error()}
			}
			reports = append(reports, report)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		out, err := tui.RenderReport(reports)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(w, out)
	}

	for _, r := range reports {
		if !r.Valid() {
			return ErrInvalid
		}
	}
	return nil
}
