package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/equilib/internal/market"
)

const (
	DemandColor = "#ff5f87"
	SupplyColor = "#5fafff"
	margin      = 40.0
)

// CurvesToSVG draws demand and supply in the conventional orientation:
// quantity on the x axis and price on the y axis. The equilibrium is marked
// when eq is non-nil.
func CurvesToSVG(c market.Curves, eq *market.Point, width, height int) string {
	if c.Len() < 2 {
		return ""
	}

	minQ, maxQ := math.Inf(1), math.Inf(-1)
	for i := range c.Prices {
		minQ = math.Min(minQ, math.Min(c.Demand[i], c.Supply[i]))
		maxQ = math.Max(maxQ, math.Max(c.Demand[i], c.Supply[i]))
	}
	if minQ > 0 {
		minQ = 0
	}
	minP, maxP := c.Prices[0], c.Prices[len(c.Prices)-1]

	rangeQ := maxQ - minQ
	rangeP := maxP - minP
	if rangeQ == 0 {
		rangeQ = 1
	}
	if rangeP == 0 {
		rangeP = 1
	}

	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin
	x := func(q float64) float64 { return margin + (q-minQ)/rangeQ*plotW }
	y := func(p float64) float64 { return float64(height) - margin - (p-minP)/rangeP*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// axes
	sb.WriteString(fmt.Sprintf(`<g stroke="#666688" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, margin, y(minP), float64(width)-margin, y(minP), x(minQ), margin, x(minQ), float64(height)-margin))

	sb.WriteString(fmt.Sprintf(`<g fill="#888899" font-family="monospace" font-size="11">
<text x="%.1f" y="%.1f">Q</text>
<text x="%.1f" y="%.1f">P</text>
<text x="%.1f" y="%.1f">%.4g</text>
<text x="%.1f" y="%.1f">%.4g</text>
</g>
`, float64(width)-margin+6, y(minP)+4, x(minQ)-4, margin-8,
		4.0, margin+4, maxP, x(maxQ)-20, float64(height)-margin+16, maxQ))

	writePath(&sb, c.Demand, c.Prices, x, y, DemandColor)
	writePath(&sb, c.Supply, c.Prices, x, y, SupplyColor)

	if eq != nil {
		ex, ey := x(eq.Quantity), y(eq.Price)
		sb.WriteString(fmt.Sprintf(`<g stroke="#ffcc00" stroke-dasharray="4 3" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
<circle cx="%.1f" cy="%.1f" r="4" fill="#ffcc00"/>
`, x(minQ), ey, ex, ey, ex, ey, ex, y(minP), ex, ey))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, qs, ps []float64, x, y func(float64) float64, color string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
	for i := range qs {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x(qs[i]), y(ps[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x(qs[i]), y(ps[i])))
		}
	}
	sb.WriteString("\"/>\n")
}
