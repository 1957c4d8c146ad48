package components

import (
	"strings"
	"sync"
)

// LogBuffer is an io.Writer keeping the last Max lines written to it. The
// TUI points its logger here so diagnostics never draw over the alt screen.
type LogBuffer struct {
	mu      sync.Mutex
	Max     int
	lines   []string
	partial string
}

func NewLogBuffer(max int) *LogBuffer {
	return &LogBuffer{Max: max}
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	text := b.partial + string(p)
	parts := strings.Split(text, "\n")
	b.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		b.lines = append(b.lines, line)
	}
	if b.Max > 0 && len(b.lines) > b.Max {
		b.lines = b.lines[len(b.lines)-b.Max:]
	}
	return len(p), nil
}

// Lines returns a copy of the complete lines written so far.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *LogBuffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
