package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/navbind/pkg/domain"
)

// BindingsMarkdown renders the bindings as a markdown document with a table.
func BindingsMarkdown(bindings []domain.Binding, policy domain.Policy, eventType string) string {
	var sb strings.Builder
	sb.WriteString("# Bindings\n\n")
	sb.WriteString(fmt.Sprintf("- **Policy**: `%s`\n", policy))
	sb.WriteString(fmt.Sprintf("- **Event**: `%s`\n\n", eventType))

	if len(bindings) == 0 {
		sb.WriteString("_No bindings._\n")
		return sb.String()
	}

	sb.WriteString("| Trigger | Target |\n")
	sb.WriteString("|---|---|\n")
	for _, b := range bindings {
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` |\n", escapeCell(b.TriggerID), escapeCell(b.TargetPath)))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
