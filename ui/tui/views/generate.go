package views

import (
	"fmt"
	"math"
	"time"

	"sketchgen/ui/tui/state"
	"sketchgen/ui/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

type GenerateView struct{}

func (v GenerateView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("SKETCHGEN // SKETCH TO IMAGE")

	// Output image panel
	ref := props.ImageRef
	caption := ""
	if ref == props.Placeholder {
		caption = styles.CopyStyle.Render("(placeholder)")
	}
	panel := styles.CardStyle.Width(60).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("Output Image"),
			ref,
			caption,
		),
	)

	// Loading overlay sits right under the panel
	overlay := lipgloss.NewStyle().PaddingLeft(2).Height(1).Render(props.OverlayView)

	// Generate button pops out while the press animation settles
	popOut := int(math.Round(props.ButtonPress * 2))
	if popOut < 0 {
		popOut = 0
	}
	btnStyle := styles.ButtonStyle.MarginLeft(2 + popOut)
	if hover := zone.Get(props.ButtonZone); hover != nil && hover.InBounds(tea.MouseMsg{X: props.MouseX, Y: props.MouseY}) {
		btnStyle = btnStyle.BorderForeground(lipgloss.Color("#aaa"))
	}
	button := zone.Mark(props.ButtonZone, btnStyle.Render("Generate"))

	status := ""
	if o := s.LastOutcome; o != nil {
		status = fmt.Sprintf("Last: #%d %s in %s", o.Seq, o.Kind, o.Duration.Round(time.Millisecond))
		if !s.LastUpdate.IsZero() {
			status += " at " + s.LastUpdate.Format("15:04:05")
		}
		status = ColorForStatusKind(string(o.Kind)).Render(status)
	}

	controls := lipgloss.NewStyle().Foreground(lipgloss.Color("#555")).
		Render("[G/Enter/Click] Generate • [Tab] Activity • [Q] Quit")

	body := lipgloss.JoinVertical(lipgloss.Left,
		panel,
		overlay,
		button,
		lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(status),
		lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(controls),
	)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
