// Package viz renders field rows and time series as terminal plots.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// PlotRow renders one field row against its mesh index.
func PlotRow(row []float64, caption string) string {
	return asciigraph.Plot(row,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotSeries renders a scalar time series.
func PlotSeries(series []float64, caption string) string {
	return asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// CompareRows overlays the initial and final rows of a field.
func CompareRows(first, last []float64, caption string) string {
	return asciigraph.PlotMany([][]float64{first, last},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
	)
}

// Stat formats one labelled value in the shared style.
func Stat(label string, value float64) string {
	return LabelStyle.Render(label) + ValueStyle.Render(fmt.Sprintf("%.6f", value))
}
