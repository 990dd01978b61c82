package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/navbind/pkg/domain"
)

// GraphOverlay marks bindings by their initialization outcome.
type GraphOverlay struct {
	MissingTriggers []string
}

// GenerateMermaid produces a Mermaid flowchart of the bindings:
// - Trigger: ([Stadium])
// - Target: [Rectangle]
// Edges carry the activation event. Targets shared by several triggers are
// drawn once.
func GenerateMermaid(bindings []domain.Binding, eventType string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	seenTargets := make(map[string]bool)
	for _, b := range bindings {
		triggerID := "trigger_" + sanitizeMermaidID(b.TriggerID)
		// Targets are absolute; "/" alone becomes target_.
		targetID := "target_" + sanitizeMermaidID(strings.TrimPrefix(b.TargetPath, "/"))

		sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", triggerID, escapeLabel(b.TriggerID)))
		if !seenTargets[targetID] {
			seenTargets[targetID] = true
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", targetID, escapeLabel(b.TargetPath)))
		}

		arrow := "-->"
		if eventType != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(eventType))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", triggerID, arrow, targetID))
	}

	if overlay != nil && len(overlay.MissingTriggers) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-width:2px,stroke-dasharray:4,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.MissingTriggers {
			safeID := "trigger_" + sanitizeMermaidID(id)
			if id == "" || seen[safeID] {
				continue
			}
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s missing;\n", safeID))
		}
	}

	return sb.String()
}

// sanitizeMermaidID keeps ASCII letters and digits and writes any other rune
// as _<hex>_, so distinct ids never collide.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteString("_" + strconv.FormatInt(int64(r), 16) + "_")
		}
	}
	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
