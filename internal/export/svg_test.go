package export

import (
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/viz"
)

func TestGridToSVG(t *testing.T) {
	g := life.PlaceCentered(life.Clear(6, 6), life.MustPattern("glider"))
	svg := GridToSVG(g, 10, viz.ThemeMinimal)

	if !strings.Contains(svg, `width="60" height="60"`) {
		t.Error("unexpected canvas size")
	}
	if n := strings.Count(svg, "<rect x="); n != 5 {
		t.Errorf("expected 5 cells, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("live cells not in theme color")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}
}

func TestPopulationToSVG(t *testing.T) {
	if PopulationToSVG([]int{3}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}
	svg := PopulationToSVG([]int{5, 5, 5, 5}, 300, 100, "#00ff00")
	if !strings.Contains(svg, `d="M0.0,`) || strings.Count(svg, " L") != 3 {
		t.Errorf("unexpected path: %s", svg)
	}
	if !strings.Contains(svg, "L300.0,") {
		t.Error("last point must reach the right edge")
	}
}
