package views

import (
	"fmt"
	"strings"

	"sketchgen/internal/output"
	"sketchgen/ui/tui/state"
	"sketchgen/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ActivityView shows the activation report and duration chart above the
// scrollable diagnostic log.
type ActivityView struct{}

func (v ActivityView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("Activity Log")

	latest := styles.CardStyle.Render(RenderSection(s.Report.SectionByID(output.SectionLatest)))
	totals := styles.CardStyle.Render(RenderSection(s.Report.SectionByID(output.SectionTotals)))
	summary := lipgloss.JoinHorizontal(lipgloss.Top, latest, totals, props.ChartView)

	availableHeight := props.Height - lipgloss.Height(header) - lipgloss.Height(summary) - 4
	if availableHeight < 1 {
		availableHeight = 1
	}

	lines := props.Logs
	totalLines := len(lines)

	scrollY := props.ScrollY
	if scrollY > totalLines-availableHeight {
		scrollY = totalLines - availableHeight
	}
	if scrollY < 0 {
		scrollY = 0
	}

	end := scrollY + availableHeight
	if end > totalLines {
		end = totalLines
	}

	viewContent := strings.Join(lines[scrollY:end], "\n")
	if totalLines == 0 {
		viewContent = styles.CopyStyle.Render("No diagnostics yet.")
	}

	boxStyle := lipgloss.NewStyle().
		Height(availableHeight).
		Padding(0, 1)
	// Unknown width (before the first WindowSizeMsg) leaves lines unwrapped.
	if props.Width > 14 {
		boxStyle = boxStyle.Width(props.Width - 4)
	}
	box := boxStyle.Render(viewContent)

	footerText := fmt.Sprintf("Scroll: %d/%d • Press 'b' to go back", scrollY, totalLines)
	if totalLines > availableHeight {
		footerText += " • Use ↑/↓ to scroll"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		summary,
		lipgloss.NewStyle().Padding(0, 2).Render(box),
		lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#555")).Render(footerText),
	)
}
