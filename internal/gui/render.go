package gui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/viz"
)

func themeColor(c lipgloss.Color) rl.Color {
	r, g, b := viz.RGB(c)
	return rl.NewColor(r, g, b, 255)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.colDead)

	a.drawGrid()
	a.drawToolbar()
	a.drawFooter()

	rl.EndDrawing()
}

func (a *App) drawGrid() {
	g := a.Sim.Grid()
	l := a.Layout
	gap := int32(1)
	if l.CellW < 6 {
		gap = 0
	}

	rl.DrawRectangle(int32(l.X), int32(l.Y), int32(l.Width()), int32(l.Height()), a.colGrid)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			x, y := l.Origin(r, c)
			col := a.colDead
			if g.Alive(r, c) {
				col = a.colAlive
			}
			rl.DrawRectangle(int32(x)+gap, int32(y)+gap, int32(l.CellW)-gap, int32(l.CellH)-gap, col)
		}
	}
}

func (a *App) drawToolbar() {
	for i, b := range a.buttons {
		label := b.label
		if i == 0 && a.Sim.Running() {
			label = "stop"
		}
		rl.DrawRectangleLinesEx(b.rect, 1, a.colMuted)
		tw := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(b.rect.X+(b.rect.Width-float32(tw))/2), int32(b.rect.Y+5), fontSize, a.colText)
	}

	s := a.slider
	rl.DrawRectangleRec(s, a.colGrid)
	frac := float32(a.Sim.SpeedMs()-sim.MinSpeedMs) / float32(sim.MaxSpeedMs-sim.MinSpeedMs)
	knob := s.X + frac*(s.Width-1)
	rl.DrawRectangle(int32(s.X), int32(s.Y), int32(knob-s.X), int32(s.Height), a.colAcc)
	rl.DrawCircle(int32(knob), int32(s.Y+s.Height/2), 8, a.colAcc)
	rl.DrawText(fmt.Sprintf("%d ms", a.Sim.SpeedMs()), int32(s.X+s.Width+12), int32(s.Y-5), fontSize, a.colText)
}

func (a *App) drawFooter() {
	g := a.Sim.Grid()
	status := "stopped"
	if a.Sim.Running() {
		status = "running"
	}
	y := int32(a.Layout.Y + a.Layout.Height() + margin/2)
	line := fmt.Sprintf("%s   gen %d   pop %d   %s", status, a.Sim.Generation(), g.Population(), a.Theme.Name)
	rl.DrawText(line, margin, y, hintSize, a.colText)

	hint := "space start/stop  click toggle  c clear  r random  n step  <- -> speed  t theme  q quit"
	rl.DrawText(hint, margin, y+hintSize+4, hintSize, a.colMuted)
}
