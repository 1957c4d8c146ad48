package views

import (
	"fmt"

	"sketchgen/internal/output"
	"sketchgen/internal/trigger"
	"sketchgen/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderSection renders one report section as aligned label/value rows.
func RenderSection(sec *output.Section) string {
	if sec == nil {
		return ""
	}
	content := lipgloss.NewStyle().Bold(true).Render(sec.Title) + "\n"
	for _, item := range sec.Items {
		valStr := item.Note
		if item.Unit != "" {
			valStr = fmt.Sprintf("%.1f%s", item.Value, item.Unit)
		} else if valStr == "" {
			valStr = fmt.Sprintf("%.0f", item.Value)
		}
		if item.Status != "" {
			valStr = ColorForStatus(item.Status).Render(fmt.Sprintf("%s [%s]", valStr, item.Status))
		}
		content += fmt.Sprintf("%-16s : %s\n", item.Label, valStr)
	}
	return content
}

func ColorForStatus(status string) lipgloss.Style {
	sStyle := styles.StatusStyle
	if status == output.StatusWarn {
		return sStyle.Foreground(lipgloss.Color("220")) // Gold
	} else if status == output.StatusCrit {
		return sStyle.Foreground(lipgloss.Color("196")) // Red
	} else if status == "" {
		return sStyle.Foreground(lipgloss.Color("#888"))
	}
	return sStyle.Foreground(lipgloss.Color("46")) // Green
}

// ColorForStatusKind styles text by outcome kind.
func ColorForStatusKind(kind string) lipgloss.Style {
	return ColorForStatus(output.StatusFor(trigger.Kind(kind)))
}
