package gui

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/viz"
)

const (
	margin      = 16
	toolbarH    = 56
	buttonW     = 96
	buttonH     = 28
	sliderW     = 240
	minWindowW  = 720
	speedStep   = 50
	fontSize    = 18
	hintSize    = 14
	windowTitle = "lifesim"
)

// Options configure a window session.
type Options struct {
	Theme    string
	CellSize int
	Seed     int64
}

type button struct {
	label  string
	rect   rl.Rectangle
	action func(a *App, now time.Time)
}

type App struct {
	Sim    *sim.Simulation
	Pacer  *sim.Pacer
	Layout viz.Layout
	Theme  viz.Theme

	rng      *rand.Rand
	buttons  []button
	slider   rl.Rectangle
	dragging bool
	width    int
	height   int

	colAlive rl.Color
	colDead  rl.Color
	colGrid  rl.Color
	colText  rl.Color
	colMuted rl.Color
	colAcc   rl.Color
}

// NewApp sizes the window from the grid and cell size. It does not open the
// window.
func NewApp(s *sim.Simulation, opts Options) *App {
	g := s.Grid()
	cell := opts.CellSize
	if cell <= 0 {
		cell = 16
	}
	layout := viz.Layout{
		X: margin, Y: toolbarH + margin,
		CellW: cell, CellH: cell,
		Rows: g.Rows(), Cols: g.Cols(),
	}
	w := layout.Width() + 2*margin
	if w < minWindowW {
		w = minWindowW
	}

	a := &App{
		Sim:    s,
		Pacer:  sim.NewPacer(s),
		Layout: layout,
		rng:    life.NewRNG(opts.Seed),
		width:  w,
		height: layout.Y + layout.Height() + margin + 2*hintSize + 4 + margin,
	}
	a.setTheme(viz.GetTheme(opts.Theme))

	y := float32(margin)
	x := float32(margin)
	a.buttons = []button{
		{label: "start", action: func(a *App, now time.Time) { a.Pacer.Toggle(now) }},
		{label: "step", action: func(a *App, now time.Time) { a.Sim.StepOnce() }},
		{label: "clear", action: func(a *App, now time.Time) { a.Sim.Clear() }},
		{label: "random", action: func(a *App, now time.Time) { a.Sim.Randomize(a.rng) }},
	}
	for i := range a.buttons {
		a.buttons[i].rect = rl.NewRectangle(x, y, buttonW, buttonH)
		x += buttonW + 8
	}
	a.slider = rl.NewRectangle(x+margin, y+buttonH/2-4, sliderW, 8)
	return a
}

func (a *App) setTheme(t viz.Theme) {
	a.Theme = t
	a.colAlive = themeColor(t.Alive)
	a.colDead = themeColor(t.Dead)
	a.colGrid = themeColor(t.Grid)
	a.colText = themeColor(t.Text)
	a.colMuted = themeColor(t.Muted)
	a.colAcc = themeColor(t.Accent)
}

// Run opens a window on s and blocks until it is closed.
func Run(s *sim.Simulation, opts Options) {
	a := NewApp(s, opts)
	rl.InitWindow(int32(a.width), int32(a.height), windowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	log.Debug("window open", "width", a.width, "height", a.height)
	a.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update(time.Now()) {
			return
		}
		a.Draw()
	}
}

// Update applies input and advances the pacer. It returns false when the
// user asked to quit.
func (a *App) Update(now time.Time) bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter) {
		a.Pacer.Toggle(now)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Sim.Clear()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Randomize(a.rng)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.Sim.StepOnce()
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Sim.SetSpeed(a.Sim.SpeedMs() - speedStep)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Sim.SetSpeed(a.Sim.SpeedMs() + speedStep)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.setTheme(viz.NextTheme(a.Theme.Name))
	}

	a.handleMouse(now)
	a.Pacer.Poll(now)
	return true
}

func (a *App) handleMouse(now time.Time) {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.dragging = false
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, b := range a.buttons {
			if rl.CheckCollisionPointRec(mouse, b.rect) {
				b.action(a, now)
				return
			}
		}
		hit := a.slider
		hit.Y -= 8
		hit.Height += 16
		if rl.CheckCollisionPointRec(mouse, hit) {
			a.dragging = true
		} else if row, col, ok := a.Layout.Cell(int(mouse.X), int(mouse.Y)); ok {
			if err := a.Sim.ToggleCell(row, col); err != nil {
				log.Warn("toggle failed", "row", row, "col", col, "err", err)
			}
		}
	}
	if a.dragging {
		offset := int(mouse.X - a.slider.X)
		a.Sim.SetSpeed(viz.SliderValue(offset, int(a.slider.Width), sim.MinSpeedMs, sim.MaxSpeedMs))
	}
}
