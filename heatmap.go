package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOutputFile is the SVG written when no output is configured.
const DefaultOutputFile = "contribution-heatmap.svg"

// HeatmapDocument is everything a renderer needs.
type HeatmapDocument struct {
	Username string
	Grid     WeekGrid
	Months   []MonthLabel
	Stats    Statistics
	Palette  Palette
	Locale   Locale
}

// BuildDocument fills raw counts over [start, end] and derives the week
// grid, month labels and statistics. The current streak is measured as of
// asOf, or as of end when asOf falls after it.
func BuildDocument(username string, raw DailyCounts, start, end, asOf time.Time, palette Palette, loc Locale) HeatmapDocument {
	dense := FillDateRange(raw, start, end)
	grid := BuildWeekGrid(dense)

	stats := CalculateStatistics(dense)
	if asOf.After(end) {
		asOf = end
	}
	stats.CurrentStreak = CurrentStreak(dense, asOf)

	return HeatmapDocument{
		Username: username,
		Grid:     grid,
		Months:   MonthLabels(grid, loc),
		Stats:    stats,
		Palette:  palette,
		Locale:   loc,
	}
}

// OutputPaths derives the SVG and HTML file names from the configured
// output. The HTML name replaces a trailing .svg with .html.
func OutputPaths(output string) (svgPath, htmlPath string) {
	if output == "" {
		output = DefaultOutputFile
	}
	if strings.HasSuffix(output, ".svg") {
		return output, strings.TrimSuffix(output, ".svg") + ".html"
	}
	return output, output + ".html"
}

// WriteOutputs renders both documents and only then writes them, so a
// render failure leaves no partial output behind.
func WriteOutputs(doc HeatmapDocument, svgPath, htmlPath string) error {
	svg := RenderSVG(doc)
	page := RenderHTML(doc)

	for _, out := range []struct {
		path    string
		content string
	}{
		{svgPath, svg},
		{htmlPath, page},
	} {
		if dir := filepath.Dir(out.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(out.path, []byte(out.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out.path, err)
		}
	}
	return nil
}
