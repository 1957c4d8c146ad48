package tui

import (
	"context"
	"fmt"
	"time"

	"sketchgen/internal/config"
	"sketchgen/internal/generation"
	"sketchgen/internal/history"
	"sketchgen/internal/logging"
	"sketchgen/internal/output"
	"sketchgen/internal/trigger"
	"sketchgen/ui/tui/components"
	"sketchgen/ui/tui/state"
	"sketchgen/ui/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	zone "github.com/lrstanley/bubblezone"
)

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	cfg     config.Config
	ids     trigger.IDs
	page    *trigger.Page
	trigger *trigger.Trigger
	history *history.Log
	logs    *components.LogBuffer
	overlay *components.LoadingOverlay
	chart   *components.DurationChart
	settled chan trigger.Outcome

	state          state.AppState
	buttonPress    float64
	velocity       float64 // Physics velocity
	spring         harmonica.Spring
	consoleScrollY int
	mouseX         int
	mouseY         int
	quitting       bool
	width          int
	height         int
}

// Messages
type AnimateMsg time.Time
type GenerationSettledMsg struct {
	Outcome trigger.Outcome
}

// InitialModel builds the page, resolves the trigger's elements by the ids
// in cfg and binds the Generate button. It fails if an element cannot be
// resolved.
func InitialModel(cfg config.Config, fetcher generation.Fetcher) (*MainModel, error) {
	zone.NewGlobal()

	page := trigger.NewPage(cfg.PlaceholderImage)
	ids := trigger.IDs{Control: cfg.ControlID, Surface: cfg.SurfaceID, Indicator: cfg.IndicatorID}

	// The page registers its elements under the default ids; cfg decides which ones to attach to.
	handles, err := trigger.Resolve(page.Elements(trigger.DefaultIDs()), ids)
	if err != nil {
		return nil, fmt.Errorf("resolve page elements: %w", err)
	}

	logs := components.NewLogBuffer(cfg.LogLines)
	hist := history.New(cfg.HistoryCapacity)

	// Increased frequency for a snappy press and damping < 1 for a small bounce
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.6)

	m := &MainModel{
		cfg:     cfg,
		ids:     ids,
		page:    page,
		history: hist,
		logs:    logs,
		overlay: components.NewLoadingOverlay(page.Overlay),
		chart:   components.NewDurationChart(30, 8),
		settled: make(chan trigger.Outcome, 16),
		spring:  spring,
		state: state.AppState{
			CurrentPage: state.PageGenerate,
		},
	}

	m.trigger = trigger.New(handles, fetcher, cfg.PlaceholderImage,
		trigger.WithLogger(logging.Plain(logs)),
		trigger.WithSingleFlight(cfg.SingleFlight),
		trigger.WithObserver(hist.Record),
	)
	m.trigger.Bind(context.Background(), func(o trigger.Outcome) {
		m.settled <- o
	})
	m.refreshReport()

	return m, nil
}

func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.overlay.Init(),
		animateCmd(),
		waitForSettled(m.settled),
	)
}

// Commands
func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func waitForSettled(ch <-chan trigger.Outcome) tea.Cmd {
	return func() tea.Msg {
		return GenerationSettledMsg{Outcome: <-ch}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Chart takes whatever the two report cards leave, within bounds
		chartW := m.width - 70
		if chartW < 20 {
			chartW = 20
		}
		if chartW > 60 {
			chartW = 60
		}
		m.chart.Resize(chartW, 8)
		return m, nil

	case GenerationSettledMsg:
		return m.handleSettledMsg(msg)

	case spinner.TickMsg:
		_, cmd := m.overlay.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.state.CurrentPage == state.PageGenerate {
			m.state.CurrentPage = state.PageActivity
		} else {
			m.state.CurrentPage = state.PageGenerate
		}
		m.consoleScrollY = 0
		return m, nil
	}

	if m.state.CurrentPage == state.PageGenerate {
		switch msg.String() {
		case "g", "enter", " ":
			m.press()
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.consoleScrollY > 0 {
			m.consoleScrollY--
		}
	case "down", "j":
		m.consoleScrollY++
	case "b", "esc", "backspace":
		m.state.CurrentPage = state.PageGenerate
		m.consoleScrollY = 0
	}
	return m, nil
}

// press activates the Generate button: the placeholder and overlay are in
// place before press returns, the request runs in the background.
func (m *MainModel) press() {
	m.buttonPress = 1
	m.velocity = 0
	m.page.Button.Press()
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	m.buttonPress, m.velocity = m.spring.Update(m.buttonPress, m.velocity, 0)
	return m, animateCmd()
}

func (m *MainModel) handleSettledMsg(msg GenerationSettledMsg) (tea.Model, tea.Cmd) {
	o := msg.Outcome
	if o.Kind != trigger.KindSkipped {
		m.state.LastOutcome = &o
	}
	m.state.LastUpdate = time.Now()
	m.refreshReport()
	return m, waitForSettled(m.settled)
}

func (m *MainModel) refreshReport() {
	m.state.Report = output.BuildReport(m.cfg.EndpointURL(), m.history.Summarize(), m.history.Recent(10))
	m.chart.Load(m.history.Recent(components.MaxDurationSamples))
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if msg.Action == tea.MouseActionRelease && m.state.CurrentPage == state.PageGenerate {
		if zone.Get(m.ids.Control).InBounds(msg) {
			m.press()
		}
	}
	return m, nil
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch m.state.CurrentPage {
	case state.PageActivity:
		return views.RenderActivity(m.state, m.chart.View(), m.width, m.height, m.consoleScrollY, m.logs.Lines())
	default:
		return views.RenderGenerate(m.state, views.ViewProps{
			Width:       m.width,
			Height:      m.height,
			MouseX:      m.mouseX,
			MouseY:      m.mouseY,
			ImageRef:    m.page.Image.Ref(),
			Placeholder: m.cfg.PlaceholderImage,
			OverlayView: m.overlay.View(),
			ButtonZone:  m.ids.Control,
			ButtonPress: m.buttonPress,
		})
	}
}

func Start(cfg config.Config, fetcher generation.Fetcher) error {
	m, err := InitialModel(cfg, fetcher)
	if err != nil {
		return err
	}
	defer zone.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
