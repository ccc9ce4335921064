// Contribution heatmap model and its terminal rendering.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Constants define the graph dimensions and styling.
const (
	daysPerWeek   = 7
	cellWidth     = 2 // Character width per cell (block + space)
	dayLabelWidth = 5
	levelCount    = 5
	colorTitle    = "#58a6ff"
	colorLabel    = "#7d8590"
	colorBorder   = "#58a6ff"
	colorWarning  = "#484f58"
	blockChar     = "■"
)

// ContributionDay is one day of the week grid.
type ContributionDay struct {
	Date    string
	Count   int
	Level   int
	Weekday int // 0 = Sunday
}

// Week is up to seven consecutive days.
type Week []ContributionDay

// WeekGrid is the chronological list of weeks.
type WeekGrid []Week

// MonthLabel marks the first week in which a month appears.
type MonthLabel struct {
	Name      string
	WeekIndex int
}

// BuildWeekGrid groups a dense daily series into consecutive runs of seven
// days in date order. Runs start on whatever weekday the series starts on,
// so a grid of N days has ceil(N/7) weeks and only the last may be short.
// Renderers place each day by its Weekday.
func BuildWeekGrid(counts DailyCounts) WeekGrid {
	maxCount := 0
	for _, count := range counts {
		if count > maxCount {
			maxCount = count
		}
	}

	series := Series(counts)
	grid := make(WeekGrid, 0, (len(series)+daysPerWeek-1)/daysPerWeek)

	var week Week
	for i, day := range series {
		week = append(week, ContributionDay{
			Date:    DateKey(day.Date),
			Count:   day.Count,
			Level:   ContributionLevel(day.Count, maxCount),
			Weekday: int(day.Date.Weekday()),
		})

		if len(week) == daysPerWeek || i == len(series)-1 {
			grid = append(grid, week)
			week = nil
		}
	}

	return grid
}

// ContributionLevel maps a count to an intensity level (0-4) relative to
// maxCount. Quartile boundaries are inclusive.
func ContributionLevel(count, maxCount int) int {
	switch {
	case count <= 0 || maxCount <= 0:
		return 0
	case 4*count >= 3*maxCount:
		return 4
	case 2*count >= maxCount:
		return 3
	case 4*count >= maxCount:
		return 2
	default:
		return 1
	}
}

// MonthLabels returns a label for every week whose first day starts a
// month not seen in the previous week. The first week is always labeled.
func MonthLabels(grid WeekGrid, loc Locale) []MonthLabel {
	var labels []MonthLabel

	lastMonth := -1
	for weekIndex, week := range grid {
		if len(week) == 0 {
			continue
		}
		day, err := ParseDate(week[0].Date)
		if err != nil {
			continue
		}

		month := int(day.Month()) - 1
		if month != lastMonth {
			labels = append(labels, MonthLabel{Name: loc.Months[month], WeekIndex: weekIndex})
			lastMonth = month
		}
	}

	return labels
}

// Graph renders a week grid in the terminal.
type Graph struct {
	grid       WeekGrid
	months     []MonthLabel
	locale     Locale
	palette    Palette
	title      string
	stats      *Statistics
	showLegend bool
}

// NewGraph creates a terminal graph for a heatmap document.
func NewGraph(doc HeatmapDocument) *Graph {
	stats := doc.Stats
	return &Graph{
		grid:       doc.Grid,
		months:     doc.Months,
		locale:     doc.Locale,
		palette:    doc.Palette,
		title:      doc.Locale.Title(doc.Username),
		stats:      &stats,
		showLegend: true,
	}
}

// minWidth is the narrowest terminal the full graph fits in.
func (g *Graph) minWidth() int {
	return dayLabelWidth + len(g.grid)*cellWidth
}

// Render generates the complete contribution graph as a string.
func (g *Graph) Render() string {
	var output strings.Builder

	output.WriteString(g.renderTitle() + "\n")
	if g.stats != nil {
		output.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorLabel)).
			Render(g.locale.StatsLine(*g.stats)) + "\n")
	}
	output.WriteString("\n")
	output.WriteString(g.renderMonthLabels() + "\n")
	output.WriteString(g.renderGrid())

	if g.showLegend {
		output.WriteString("\n" + g.renderLegend() + "\n")
	}

	return output.String()
}

// RenderResponsive renders the graph or a width warning based on terminal width.
func (g *Graph) RenderResponsive(terminalWidth int) string {
	if terminalWidth > 0 && terminalWidth < g.minWidth() {
		return renderWidthWarning(terminalWidth, g.minWidth(), len(g.grid))
	}
	return g.Render()
}

// renderTitle returns the styled graph title.
func (g *Graph) renderTitle() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorTitle)).
		Render(g.title)
}

// renderMonthLabels lays out month names by display width so that wide
// (CJK) labels land on the right column.
func (g *Graph) renderMonthLabels() string {
	if len(g.months) == 0 {
		return ""
	}

	var row strings.Builder
	col := 0
	for _, label := range g.months {
		pos := label.WeekIndex * cellWidth
		if pos < col {
			continue
		}
		row.WriteString(strings.Repeat(" ", pos-col))
		row.WriteString(label.Name)
		col = pos + runewidth.StringWidth(label.Name) + 1
		row.WriteString(" ")
	}

	styled := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorLabel)).
		Render(strings.TrimRight(row.String(), " "))

	return strings.Repeat(" ", dayLabelWidth) + styled
}

// renderGrid generates all 7 weekday rows. Days missing from a short week
// are left blank.
func (g *Graph) renderGrid() string {
	var cells [daysPerWeek][]string
	for day := range cells {
		cells[day] = make([]string, len(g.grid))
		for week := range cells[day] {
			cells[day][week] = strings.Repeat(" ", cellWidth)
		}
	}
	for weekIndex, week := range g.grid {
		for _, day := range week {
			cells[day.Weekday][weekIndex] = g.renderCell(day.Level)
		}
	}

	rows := make([]string, 0, daysPerWeek)
	for day := 0; day < daysPerWeek; day++ {
		label := runewidth.FillRight(runewidth.Truncate(g.locale.DayLabels[day], dayLabelWidth-1, ""), dayLabelWidth)
		label = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorLabel)).
			Render(label)
		rows = append(rows, label+strings.Join(cells[day], ""))
	}

	return strings.Join(rows, "\n")
}

// renderCell creates a single contribution cell colored by level.
func (g *Graph) renderCell(level int) string {
	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color(g.palette.Color(level))).
		Render(blockChar)

	return block + " "
}

// renderLegend creates the "Less -> More" color scale indicator.
func (g *Graph) renderLegend() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	parts := []string{labelStyle.Render(g.locale.Less + " ")}
	for level := 0; level < levelCount; level++ {
		parts = append(parts, g.renderCell(level))
	}
	parts = append(parts, labelStyle.Render(g.locale.More))

	return strings.Repeat(" ", dayLabelWidth) + strings.Join(parts, "")
}

// renderWidthWarning replaces the preview when the terminal cannot fit every
// week column. Narrow terminals get the short form only.
func renderWidthWarning(currentWidth, minWidth, weeks int) string {
	boxWidth := max(currentWidth-4, 20)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLabel)).
			Render("Preview skipped"),
	}
	if boxWidth >= 40 {
		hint := lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning))
		lines = append(lines,
			"",
			hint.Render(fmt.Sprintf("%d weeks need %d columns, terminal has %d", weeks, minWidth, currentWidth)),
			hint.Render("Open the HTML file or shorten the date range"),
		)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1).
		Width(boxWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
