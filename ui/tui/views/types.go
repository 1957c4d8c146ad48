package views

import (
	"sketchgen/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height  int
	MouseX, MouseY int

	// Live element state
	ImageRef    string
	Placeholder string
	OverlayView string
	ButtonZone  string
	ButtonPress float64 // 1 right after a press, springs back to 0

	// Activity page
	Logs      []string
	ScrollY   int
	ChartView string
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}
