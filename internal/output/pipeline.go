package output

import (
	"context"

	"sketchgen/internal/history"
	"sketchgen/internal/trigger"
)

// Activator runs one activation to completion.
type Activator interface {
	Activate(ctx context.Context) trigger.Outcome
}

// Payload bundles one activation with the report built after it.
type Payload struct {
	Outcome trigger.Outcome
	Report  Report
}

// RunPipeline executes Activate -> Summarize -> Report.
// The activator must already record into log (trigger.WithObserver(log.Record)).
func RunPipeline(ctx context.Context, act Activator, log *history.Log, endpoint string, recent int) Payload {
	out := act.Activate(ctx)

	return Payload{
		Outcome: out,
		Report:  BuildReport(endpoint, log.Summarize(), log.Recent(recent)),
	}
}
