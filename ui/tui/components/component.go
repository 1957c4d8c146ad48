package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is a self-updating widget embedded in a page. The main model
// forwards every message to each component it owns.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

var (
	_ Component = (*LoadingOverlay)(nil)
	_ Component = (*DurationChart)(nil)
)
