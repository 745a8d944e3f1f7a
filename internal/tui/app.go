package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/viz"
)

const (
	gridTop     = 3
	gridLeft    = 2
	cellWidth   = 2
	sliderWidth = 20
	sparkWidth  = 40

	speedStep     = 50
	speedPageStep = 250
	historyCap    = 200
)

// Options configure a terminal session.
type Options struct {
	Theme   string
	Pattern string
	Seed    int64
}

// tickMsg carries the epoch it was scheduled under so a chain left over from
// an earlier run dies out instead of doubling the rate.
type tickMsg struct {
	epoch uint64
}

func tick(epoch uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{epoch: epoch} })
}

func tickNow(epoch uint64) tea.Cmd {
	return func() tea.Msg { return tickMsg{epoch: epoch} }
}

type model struct {
	sim     *sim.Simulation
	rng     *rand.Rand
	theme   viz.Theme
	styles  viz.Styles
	layout  viz.Layout
	pattern string
	history []float64
	lastErr error

	width  int
	height int
}

// NewModel returns the bubbletea model for s.
func NewModel(s *sim.Simulation, opts Options) model {
	g := s.Grid()
	theme := viz.GetTheme(opts.Theme)
	m := model{
		sim:     s,
		rng:     life.NewRNG(opts.Seed),
		theme:   theme,
		styles:  viz.NewStyles(theme),
		pattern: opts.Pattern,
		layout: viz.Layout{
			X: gridLeft, Y: gridTop,
			CellW: cellWidth, CellH: 1,
			Rows: g.Rows(), Cols: g.Cols(),
		},
		history: make([]float64, 0, historyCap),
		width:   80,
		height:  24,
	}
	m.record()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		delay, ok := m.sim.Tick(msg.epoch)
		if !ok {
			return m, nil
		}
		m.record()
		return m, tick(msg.epoch, delay)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sim.Stop()
		return m, tea.Quit
	case " ", "enter":
		return m.toggleRunning()
	case "c":
		m.sim.Clear()
		m.resetHistory()
	case "r":
		m.sim.Randomize(m.rng)
		m.resetHistory()
	case "n":
		if m.sim.StepOnce() {
			m.record()
		}
	case "left", "h":
		m.sim.SetSpeed(m.sim.SpeedMs() - speedStep)
	case "right", "l":
		m.sim.SetSpeed(m.sim.SpeedMs() + speedStep)
	case "pgdown":
		m.sim.SetSpeed(m.sim.SpeedMs() - speedPageStep)
	case "pgup":
		m.sim.SetSpeed(m.sim.SpeedMs() + speedPageStep)
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.styles = viz.NewStyles(m.theme)
	case "p":
		m.nextPattern()
	}
	return m, nil
}

func (m model) toggleRunning() (model, tea.Cmd) {
	epoch, started := m.sim.Toggle()
	if !started {
		log.Debug("stopped", "generation", m.sim.Generation())
		return m, nil
	}
	log.Debug("started", "epoch", epoch, "speed_ms", m.sim.SpeedMs())
	return m, tickNow(epoch)
}

func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row, col, ok := m.layout.Cell(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	if err := m.sim.ToggleCell(row, col); err != nil {
		m.lastErr = err
		return m, nil
	}
	m.replaceLast()
	return m, nil
}

// nextPattern loads the next named pattern that fits, centred on an empty
// board.
func (m *model) nextPattern() {
	names := life.PatternNames()
	start := 0
	for i, n := range names {
		if n == m.pattern {
			start = i + 1
			break
		}
	}
	g := m.sim.Grid()
	for i := 0; i < len(names); i++ {
		p := life.MustPattern(names[(start+i)%len(names)])
		if p.Shape.Rows() > g.Rows() || p.Shape.Cols() > g.Cols() {
			continue
		}
		if err := m.sim.Load(life.PlaceCentered(life.Clear(g.Rows(), g.Cols()), p)); err != nil {
			m.lastErr = err
			return
		}
		m.pattern = p.Name
		m.resetHistory()
		return
	}
}

func (m *model) record() {
	m.history = append(m.history, float64(m.sim.Grid().Population()))
	if len(m.history) > historyCap {
		m.history = m.history[1:]
	}
}

func (m *model) replaceLast() {
	if len(m.history) == 0 {
		m.record()
		return
	}
	m.history[len(m.history)-1] = float64(m.sim.Grid().Population())
}

func (m *model) resetHistory() {
	m.history = m.history[:0]
	m.record()
}

func (m model) View() string {
	var b strings.Builder
	st := m.styles
	g := m.sim.Grid()

	pattern := m.pattern
	if pattern == "" {
		pattern = "custom"
	}
	b.WriteString(strings.Repeat(" ", gridLeft) + st.Title.Render("lifesim") + "  " +
		st.Label.Render(fmt.Sprintf("%dx%d  %s  %s", g.Rows(), g.Cols(), pattern, m.theme.Name)) + "\n")

	status := st.Stopped.Render("○ stopped")
	if m.sim.Running() {
		status = st.Running.Render("● running")
	}
	b.WriteString(strings.Repeat(" ", gridLeft) + status + "  " +
		st.Label.Render("gen ") + st.Value.Render(fmt.Sprintf("%-6d", m.sim.Generation())) +
		st.Label.Render("pop ") + st.Value.Render(fmt.Sprintf("%-6d", g.Population())) +
		st.Label.Render("speed ") + st.Value.Render(viz.Slider(m.sim.SpeedMs(), sim.MinSpeedMs, sim.MaxSpeedMs, sliderWidth)) +
		st.Label.Render(fmt.Sprintf(" %dms", m.sim.SpeedMs())) + "\n")
	b.WriteString("\n")

	alive := st.Alive.Render("██")
	dead := st.Dead.Render("··")
	for r := 0; r < g.Rows(); r++ {
		b.WriteString(strings.Repeat(" ", gridLeft))
		for c := 0; c < g.Cols(); c++ {
			if g.Alive(r, c) {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + strings.Repeat(" ", gridLeft) + st.Label.Render("pop ") +
		st.Alive.Render(viz.Sparkline(m.history, sparkWidth)) + "\n")
	if m.lastErr != nil {
		b.WriteString(strings.Repeat(" ", gridLeft) + st.Stopped.Render(m.lastErr.Error()) + "\n")
	}
	b.WriteString(strings.Repeat(" ", gridLeft) +
		st.Hint.Render("space start/stop  click toggle  c clear  r random  n step  ←→ speed  p pattern  t theme  q quit") + "\n")

	return b.String()
}

// Run opens the terminal UI on s and blocks until the user quits.
func Run(s *sim.Simulation, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
