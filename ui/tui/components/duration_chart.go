package components

import (
	"fmt"
	"math"
	"time"

	"sketchgen/internal/trigger"
	"sketchgen/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MaxDurationSamples is how many settled activations the chart keeps.
const MaxDurationSamples = 30

// minChartCeilingMs keeps sub-100ms requests from filling the whole chart.
const minChartCeilingMs = 100.0

// DurationChart plots request durations (ms) of recent activations, oldest
// on the left.
type DurationChart struct {
	Chart   linechart.Model
	Samples []float64
	Width   int
	Height  int
}

func NewDurationChart(width, height int) *DurationChart {
	return &DurationChart{
		Chart:   linechart.New(width, height, 0, MaxDurationSamples-1, 0, minChartCeilingMs),
		Samples: make([]float64, 0, MaxDurationSamples),
		Width:   width,
		Height:  height,
	}
}

func (c *DurationChart) Init() tea.Cmd {
	return nil
}

// Push appends one duration. Skipped activations never issued a request and
// must not be pushed.
func (c *DurationChart) Push(d time.Duration) {
	c.Samples = append(c.Samples, float64(d)/float64(time.Millisecond))
	if len(c.Samples) > MaxDurationSamples {
		c.Samples = c.Samples[len(c.Samples)-MaxDurationSamples:]
	}
}

// Load replaces the samples with recent, given newest first as returned by
// history.Log.Recent.
func (c *DurationChart) Load(recent []trigger.Outcome) {
	c.Samples = c.Samples[:0]
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Kind == trigger.KindSkipped {
			continue
		}
		c.Push(recent[i].Duration)
	}
}

// Ceiling is the y-axis maximum for the current samples.
func (c *DurationChart) Ceiling() float64 {
	ceiling := minChartCeilingMs
	for _, v := range c.Samples {
		ceiling = math.Max(ceiling, v)
	}
	// Round up to the next 50ms for readable axis labels
	return math.Ceil(ceiling*1.1/50) * 50
}

func (c *DurationChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

func (c *DurationChart) Resize(w, h int) {
	c.Width = w
	c.Height = h
	c.Chart.Resize(w, h)
}

func (c *DurationChart) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Request Duration (ms)")
	if len(c.Samples) == 0 {
		return styles.CardStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left, title, styles.CopyStyle.Render("No requests yet.")),
		)
	}

	c.Chart = linechart.New(c.Width, c.Height, 0, MaxDurationSamples-1, 0, c.Ceiling())
	if len(c.Samples) == 1 {
		p := canvas.Float64Point{X: 0, Y: c.Samples[0]}
		c.Chart.DrawBrailleLine(p, p)
	}
	for i := 0; i < len(c.Samples)-1; i++ {
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: c.Samples[i]},
			canvas.Float64Point{X: float64(i + 1), Y: c.Samples[i+1]},
		)
	}
	c.Chart.DrawXYAxisAndLabel()

	last := styles.CopyStyle.Render(fmt.Sprintf("last %.0fms", c.Samples[len(c.Samples)-1]))
	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, c.Chart.View(), last),
	)
}
