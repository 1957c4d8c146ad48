package history

import (
	"sync"
	"time"

	"sketchgen/internal/trigger"
)

// Log keeps the most recent activation outcomes.
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  []trigger.Outcome
}

// New creates a Log retaining at most capacity outcomes.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{
		capacity: capacity,
		entries:  make([]trigger.Outcome, 0, capacity),
	}
}

// Record appends o, dropping the oldest entry once full. Its signature
// matches trigger.WithObserver.
func (l *Log) Record(o trigger.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, o)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[1:]
	}
}

// Recent returns up to n outcomes, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) []trigger.Outcome {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]trigger.Outcome, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len returns the number of retained outcomes.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Summary aggregates the retained outcomes.
type Summary struct {
	Total       int
	ByKind      map[trigger.Kind]int
	AvgDuration time.Duration
	Last        *trigger.Outcome
}

// Summarize computes a Summary over the retained outcomes. Skipped
// activations are excluded from the average duration.
func (l *Log) Summarize() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{Total: len(l.entries), ByKind: make(map[trigger.Kind]int)}
	var total time.Duration
	timed := 0
	for _, o := range l.entries {
		s.ByKind[o.Kind]++
		if o.Kind != trigger.KindSkipped {
			total += o.Duration
			timed++
		}
	}
	if timed > 0 {
		s.AvgDuration = total / time.Duration(timed)
	}
	if n := len(l.entries); n > 0 {
		last := l.entries[n-1]
		s.Last = &last
	}
	return s
}
