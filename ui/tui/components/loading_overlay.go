package components

import (
	"sketchgen/internal/trigger"
	"sketchgen/ui/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingOverlay renders a spinner while its overlay element is visible.
type LoadingOverlay struct {
	Overlay *trigger.Overlay
	Spinner spinner.Model
	Label   string
}

func NewLoadingOverlay(o *trigger.Overlay) *LoadingOverlay {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &LoadingOverlay{
		Overlay: o,
		Spinner: s,
		Label:   "Generating image...",
	}
}

func (l *LoadingOverlay) Init() tea.Cmd {
	return l.Spinner.Tick
}

func (l *LoadingOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		l.Spinner, cmd = l.Spinner.Update(tick)
		return l, cmd
	}
	return l, nil
}

func (l *LoadingOverlay) View() string {
	if !l.Overlay.Visible() {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Left,
		l.Spinner.View(),
		styles.CopyStyle.Render(" "+l.Label),
	)
}
