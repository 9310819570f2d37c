package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/equilib/internal/market"
)

type PlotOptions struct {
	Width  int
	Height int
	Theme  Theme
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 72, Height: 16, Theme: ThemeClassic}
}

// PlotCurves plots quantity demanded and supplied against the price grid.
// The caption names the grid bounds and, when eq is set, the equilibrium.
func PlotCurves(c market.Curves, eq *market.Point, opts PlotOptions) string {
	if c.Len() == 0 {
		return Subtle.Render("(no grid points)")
	}

	caption := fmt.Sprintf("quantity vs price %.4g..%.4g  demand/supply", c.Prices[0], c.Prices[c.Len()-1])
	if eq != nil {
		caption += fmt.Sprintf("  P*=%.4g Q*=%.4g", eq.Price, eq.Quantity)
	}

	return asciigraph.PlotMany([][]float64{c.Demand, c.Supply},
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(opts.Theme.Demand, opts.Theme.Supply),
		asciigraph.AxisColor(opts.Theme.Axis),
		asciigraph.Caption(caption),
	)
}
