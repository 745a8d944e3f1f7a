package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints each generation it is handed as a full-screen frame.
// It implements sim.Observer and is meant for a single runner goroutine.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	braille   bool
	lastFrame time.Time
	canvas    *viz.Canvas
}

// NewLiveRenderer writes frames to out at most frameRate times a second;
// frameRate <= 0 draws every generation. With braille set each character
// holds a 2x4 block of cells, for boards wider than the terminal.
func NewLiveRenderer(out io.Writer, title string, frameRate int, braille bool) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		braille:   braille,
	}
}

func (r *LiveRenderer) OnStep(g life.Grid, generation int) {
	if r.frameRate > 0 && !r.lastFrame.IsZero() {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	io.WriteString(r.out, r.Frame(g, generation))
}

// Frame renders one generation without writing it.
func (r *LiveRenderer) Frame(g life.Grid, generation int) string {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  gen=%d  pop=%d\n", r.title, generation, g.Population()))

	width := g.Cols()
	if r.braille {
		width = (g.Cols() + 1) / 2
	}
	rule := "  " + strings.Repeat("-", width) + "\n"
	b.WriteString(rule)

	if r.braille {
		if r.canvas == nil || r.canvas.Width != (g.Cols()+1)/2 || r.canvas.Height != (g.Rows()+3)/4 {
			r.canvas = viz.CanvasFor(g)
		}
		r.canvas.DrawGrid(g)
		for _, row := range r.canvas.Grid {
			b.WriteString("  ")
			b.WriteString(string(row))
			b.WriteString("\n")
		}
	} else {
		for _, line := range strings.SplitAfter(g.String(), "\n") {
			if line == "" {
				continue
			}
			b.WriteString("  ")
			b.WriteString(line)
		}
	}

	b.WriteString(rule)
	return b.String()
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
