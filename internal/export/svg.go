package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/viz"
)

// GridToSVG draws one square per live cell on the theme's background.
func GridToSVG(g life.Grid, cellSize int, theme viz.Theme) string {
	if cellSize <= 0 {
		cellSize = 1
	}
	width := g.Cols() * cellSize
	height := g.Rows() * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, theme.Dead, theme.Alive))

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !g.Alive(r, c) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>
`, c*cellSize, r*cellSize, cellSize, cellSize))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PopulationToSVG plots a population series as a polyline, generation on
// the x axis.
func PopulationToSVG(populations []int, width, height int, strokeColor string) string {
	if len(populations) < 2 {
		return ""
	}

	minY, maxY := populations[0], populations[0]
	for _, p := range populations {
		if p < minY {
			minY = p
		}
		if p > maxY {
			maxY = p
		}
	}

	rangeY := float64(maxY - minY)
	if rangeY == 0 {
		rangeY = 1
	}
	lo := float64(minY) - rangeY*0.1
	rangeY *= 1.2
	rangeX := float64(len(populations) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range populations {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (float64(p)-lo)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
