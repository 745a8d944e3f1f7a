package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Alive   lipgloss.Style
	Dead    lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Running lipgloss.Style
	Stopped lipgloss.Style
	Border  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Alive:   lipgloss.NewStyle().Foreground(t.Alive),
		Dead:    lipgloss.NewStyle().Foreground(t.Grid),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		Stopped: lipgloss.NewStyle().Bold(true).Foreground(t.Stopped),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Grid),
	}
}

// Sparkline renders values as a row of block characters scaled between the
// series minimum and maximum. Long series keep their most recent width
// values; an empty series is a flat rule.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - min) / rng * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// Slider draws a horizontal track with a knob at value's position in
// [min, max]. Out-of-range values pin the knob to the nearest end.
func Slider(value, min, max, width int) string {
	if width < 2 {
		return "●"
	}
	pos := 0
	if max > min {
		pos = (value - min) * (width - 1) / (max - min)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}
	return strings.Repeat("━", pos) + "●" + strings.Repeat("─", width-1-pos)
}

// ansi16 holds the xterm defaults for the sixteen basic terminal colors.
var ansi16 = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// RGB splits a "#rrggbb" color or an xterm 256-color index into its
// components. Anything else is white.
func RGB(c lipgloss.Color) (r, g, b uint8) {
	s := string(c)
	if len(s) == 7 && s[0] == '#' {
		return parseHexByte(s[1:3]), parseHexByte(s[3:5]), parseHexByte(s[5:7])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return 255, 255, 255
	}
	switch {
	case n < 16:
		return ansi16[n][0], ansi16[n][1], ansi16[n][2]
	case n < 232:
		n -= 16
		return cubeLevels[n/36], cubeLevels[n/6%6], cubeLevels[n%6]
	default:
		v := uint8(8 + 10*(n-232))
		return v, v, v
	}
}

func parseHexByte(s string) uint8 {
	var val uint8
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			val += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += uint8(c - 'A' + 10)
		}
	}
	return val
}

// SliderValue is the inverse of Slider: it maps an offset along a track of
// the given width to a value in [min, max].
func SliderValue(offset, width, min, max int) int {
	if width < 2 || max <= min {
		return min
	}
	if offset <= 0 {
		return min
	}
	if offset >= width-1 {
		return max
	}
	return min + offset*(max-min)/(width-1)
}
