package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnflow"
)

// ReportMarkdown formats validation reports as a markdown document.
func ReportMarkdown(reports []*bpmnflow.Report) string {
	var sb strings.Builder
	sb.WriteString("# Validation report\n\n")

	valid := 0
	for _, r := range reports {
		if r.Valid() {
			valid++
		}
	}
	fmt.Fprintf(&sb, "%d of %d definitions valid.\n", valid, len(reports))

	for _, r := range reports {
		title := r.DefinitionID
		if r.Name != "" {
			title = fmt.Sprintf("%s (%s)", r.DefinitionID, r.Name)
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", title)

		if r.LoadError != "" {
			fmt.Fprintf(&sb, "**Could not load:** %s\n", r.LoadError)
			continue
		}
		for _, ne := range r.NodeErrors {
			fmt.Fprintf(&sb, "**Not checked:** %s\n\n", ne)
		}

		switch {
		case len(r.Errors) == 0 && len(r.NodeErrors) == 0:
			fmt.Fprintf(&sb, "OK, %d flow objects checked.\n", r.FlowObjects)
		case len(r.Errors) > 0:
			sb.WriteString("| Code | Message |\n|------|---------|\n")
			for _, e := range r.Errors {
				fmt.Fprintf(&sb, "| %s | %s |\n", e.Code, strings.ReplaceAll(e.Message, "|", "\\|"))
			}
		}
	}
	return sb.String()
}

// RenderReport formats reports and renders them for the current terminal.
func RenderReport(reports []*bpmnflow.Report) (string, error) {
	return NewRenderer()(ReportMarkdown(reports))
}
