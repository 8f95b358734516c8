// Package export renders stored fields to standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"
)

// CurveSVG renders one sampled density row as a polyline over its mesh.
func CurveSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	minY, maxY := ys[0], ys[0]
	for _, v := range ys {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
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

// HeatmapSVG renders field rows over time as a cell grid, one row of cells
// per time index, brightness scaled to the field's global maximum.
func HeatmapSVG(rows [][]float64, width, height int) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}

	max := 0.0
	for _, row := range rows {
		for _, v := range row {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
	}
	if max == 0 {
		max = 1
	}

	cellW := float64(width) / float64(len(rows[0]))
	cellH := float64(height) / float64(len(rows))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for n, row := range rows {
		// Time runs upward, the newest row at the top.
		y := float64(height) - float64(n+1)*cellH
		for j, v := range row {
			level := int(math.Abs(v) / max * 255)
			if level == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="rgb(0,%d,%d)"/>
`, float64(j)*cellW, y, cellW, cellH, level, level/3))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
