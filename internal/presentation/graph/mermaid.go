package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
)

// GraphOverlay contains process instance data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart for a process definition.
// It applies BPMN-like shapes:
// - Start/intermediate/boundary events: ((Circle))
// - End events: (((Double circle)))
// - Gateways: {Rhombus}
// - Service tasks, call activities, sub-processes: [[Subroutine]]
// - User tasks: [/Parallelogram/]
// - Other activities: [Rectangle]
// Flow objects are labeled with their name, falling back to the id.
func GenerateMermaid(def *definition.ProcessDefinition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, fo := range def.FlowObjects() {
		opener, closer := shape(fo.Kind())
		label := strings.TrimSpace(fo.Name())
		if label == "" {
			label = fo.ID()
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(fo.ID()), opener, escapeLabel(label), closer)
	}

	for _, flow := range def.SequenceFlows() {
		from, to := sanitizeMermaidID(flow.SourceRef), sanitizeMermaidID(flow.TargetRef)
		label := flow.Name
		if flow.Condition != "" {
			label = flow.Condition
		}
		if label == "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
			continue
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(label), to)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func shape(kind domain.Kind) (string, string) {
	switch kind {
	case domain.KindStartEvent, domain.KindIntermediateThrowEvent,
		domain.KindIntermediateCatchEvent, domain.KindBoundaryEvent:
		return "((", "))"
	case domain.KindEndEvent:
		return "(((", ")))"
	case domain.KindExclusiveGateway, domain.KindInclusiveGateway,
		domain.KindParallelGateway, domain.KindEventBasedGateway:
		return "{", "}"
	case domain.KindServiceTask, domain.KindCallActivity, domain.KindSubProcess:
		return "[[", "]]"
	case domain.KindUserTask:
		return "[/", "/]"
	default:
		return "[", "]"
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
