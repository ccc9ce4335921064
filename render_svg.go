package main

import (
	"fmt"
	"html"
	"strings"
)

// Heatmap layout in pixels.
const (
	svgCellSize         = 10
	svgCellSpacing      = 2
	svgCellPitch        = svgCellSize + svgCellSpacing
	svgMonthLabelHeight = 20
	svgDayLabelWidth    = 30
)

// svgDayRows are the weekday rows that carry a label.
var svgDayRows = []int{1, 3, 5}

// RenderSVG renders the heatmap as a standalone SVG document. Cells carry
// data-date and data-count attributes and a <title> for hover text.
func RenderSVG(doc HeatmapDocument) string {
	width := len(doc.Grid)*svgCellPitch + svgDayLabelWidth + 20
	height := daysPerWeek*svgCellPitch + svgMonthLabelHeight + 40
	gridTop := svgMonthLabelHeight + 20
	loc := doc.Locale

	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height)
	b.WriteString(`  <style>
    .month-label { font: 10px sans-serif; fill: #767676; }
    .day-label { font: 9px sans-serif; fill: #767676; }
    .contrib-cell { shape-rendering: geometricPrecision; }
    .contrib-cell:hover { stroke: #000; stroke-width: 1px; }
    .title { font: 14px sans-serif; fill: #24292e; font-weight: bold; }
    .stats { font: 11px sans-serif; fill: #586069; }
    .legend-text { font: 10px sans-serif; fill: #767676; }
  </style>

`)

	fmt.Fprintf(&b, "  <text x=\"10\" y=\"15\" class=\"title\">%s</text>\n", html.EscapeString(loc.Title(doc.Username)))
	fmt.Fprintf(&b, "  <text x=\"10\" y=\"32\" class=\"stats\">%s</text>\n\n", html.EscapeString(loc.StatsLine(doc.Stats)))

	// Month labels
	fmt.Fprintf(&b, "  <g transform=\"translate(%d, %d)\">\n", svgDayLabelWidth, gridTop)
	for _, label := range doc.Months {
		fmt.Fprintf(&b, "    <text x=\"%d\" y=\"-5\" class=\"month-label\">%s</text>\n",
			label.WeekIndex*svgCellPitch, html.EscapeString(label.Name))
	}
	b.WriteString("  </g>\n\n")

	// Weekday labels
	fmt.Fprintf(&b, "  <g transform=\"translate(0, %d)\">\n", gridTop)
	for _, row := range svgDayRows {
		y := row*svgCellPitch + svgCellSize/2
		fmt.Fprintf(&b, "    <text x=\"5\" y=\"%d\" class=\"day-label\" text-anchor=\"start\">%s</text>\n",
			y+3, html.EscapeString(loc.DayLabels[row]))
	}
	b.WriteString("  </g>\n\n")

	// Cells
	fmt.Fprintf(&b, "  <g transform=\"translate(%d, %d)\">\n", svgDayLabelWidth, gridTop)
	for weekIndex, week := range doc.Grid {
		for _, day := range week {
			fmt.Fprintf(&b, "    <rect class=\"contrib-cell\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\" data-date=\"%s\" data-count=\"%d\">\n",
				weekIndex*svgCellPitch, day.Weekday*svgCellPitch, svgCellSize, svgCellSize,
				doc.Palette.Color(day.Level), day.Date, day.Count)
			fmt.Fprintf(&b, "      <title>%s</title>\n", html.EscapeString(loc.CellTitle(day.Date, day.Count)))
			b.WriteString("    </rect>\n")
		}
	}
	b.WriteString("  </g>\n\n")

	// Legend
	fmt.Fprintf(&b, "  <g transform=\"translate(%d, %d)\">\n", width-200, height-20)
	fmt.Fprintf(&b, "    <text x=\"0\" y=\"0\" class=\"legend-text\">%s</text>\n", html.EscapeString(loc.Less))
	for level := 0; level < levelCount; level++ {
		fmt.Fprintf(&b, "    <rect x=\"%d\" y=\"-8\" width=\"%d\" height=\"%d\" fill=\"%s\" />\n",
			25+level*svgCellPitch, svgCellSize, svgCellSize, doc.Palette.Color(level))
	}
	fmt.Fprintf(&b, "    <text x=\"%d\" y=\"0\" class=\"legend-text\">%s</text>\n",
		25+levelCount*svgCellPitch+5, html.EscapeString(loc.More))
	b.WriteString("  </g>\n")

	b.WriteString("</svg>\n")

	return b.String()
}
