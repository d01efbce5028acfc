package internal

import (
	"fmt"
	"strings"
)

// Fixed canvas geometry for the equity/price chart.
const (
	chartWidth  = 800.0
	chartHeight = 220.0
	chartPad    = 18.0
)

// RenderChartSVG draws an ordered series as a single SVG document: a dashed
// reference line at the last value, the polyline itself, an end marker, and
// min/max labels along the bottom edge. Fewer than 2 points hides the chart
// entirely (ok=false, no partial draw). The function is pure, so redrawing
// with the same input yields a byte-identical document.
func RenderChartSVG(values []float64) (svg string, ok bool) {
	if len(values) < 2 {
		return "", false
	}

	yMin, yMax := values[0], values[0]
	for _, v := range values[1:] {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	yRange := yMax - yMin
	if yRange == 0 {
		// flat series: pin the line mid-chart instead of dividing by zero
		yRange = 1
	}

	xScale := func(i int) float64 {
		n := len(values) - 1
		if n < 1 {
			n = 1
		}
		return chartPad + float64(i)*(chartWidth-2*chartPad)/float64(n)
	}
	yScale := func(v float64) float64 {
		return chartHeight - chartPad - (v-yMin)*(chartHeight-2*chartPad)/yRange
	}

	lastX := xScale(len(values) - 1)
	lastY := yScale(values[len(values)-1])

	points := make([]string, len(values))
	for i, v := range values {
		points[i] = fmt.Sprintf("%s,%s", coord(xScale(i)), coord(yScale(v)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" role="img">`,
		int(chartWidth), int(chartHeight), int(chartWidth), int(chartHeight))

	// draw order matters for stacking: reference line under the polyline,
	// marker and labels on top
	fmt.Fprintf(&sb,
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#8884" stroke-width="1" stroke-dasharray="4 4"/>`,
		coord(chartPad), coord(lastY), coord(chartWidth-chartPad), coord(lastY))
	fmt.Fprintf(&sb,
		`<polyline points="%s" fill="none" stroke="#2f81f7" stroke-width="2"/>`,
		strings.Join(points, " "))
	fmt.Fprintf(&sb,
		`<circle cx="%s" cy="%s" r="3" fill="#2f81f7"/>`,
		coord(lastX), coord(lastY))
	fmt.Fprintf(&sb,
		`<text x="%s" y="%s" font-size="11" fill="#888" text-anchor="start">%s</text>`,
		coord(chartPad), coord(chartHeight-4), FormatFixed(yMin, 2))
	fmt.Fprintf(&sb,
		`<text x="%s" y="%s" font-size="11" fill="#888" text-anchor="end">%s</text>`,
		coord(chartWidth-chartPad), coord(chartHeight-4), FormatFixed(yMax, 2))
	sb.WriteString(`</svg>`)

	return sb.String(), true
}

func coord(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
