package trigger

import "time"

// Kind classifies how an activation settled.
type Kind string

const (
	KindSuccess        Kind = "success"
	KindMissingResult  Kind = "missing_result"
	KindRequestFailure Kind = "request_failure"
	KindSkipped        Kind = "skipped" // single-flight guard rejected the activation
)

// Outcome is the record of one activation.
type Outcome struct {
	Seq       uint64        `json:"sequence"`
	Started   time.Time     `json:"started"`
	Duration  time.Duration `json:"duration"`
	ImageRef  string        `json:"imageUrl"`
	Kind      Kind          `json:"kind"`
	Err       error         `json:"-"`
	ErrDetail string        `json:"error,omitempty"`
}

// Placeholder reports whether the activation fell back to the placeholder.
func (o Outcome) Placeholder() bool {
	return o.Kind == KindMissingResult || o.Kind == KindRequestFailure
}
