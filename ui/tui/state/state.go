package state

import (
	"time"

	"sketchgen/internal/output"
	"sketchgen/internal/trigger"
)

type Page int

const (
	PageGenerate Page = iota
	PageActivity      // report + diagnostic log
)

// AppState holds what the views render besides the live elements.
type AppState struct {
	Report      output.Report
	LastOutcome *trigger.Outcome
	LastUpdate  time.Time // when LastOutcome settled
	CurrentPage Page
}
