package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorAccent = "#3fb950"
	colorError  = "#f85149"
	colorWarn   = "#d29922"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorError))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	loadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLabel))
)

// successLine renders a completed step.
func successLine(format string, args ...any) string {
	return accentStyle.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// renderSummary renders the end-of-run statistics block.
func renderSummary(doc HeatmapDocument, source string) string {
	s := doc.Stats

	stat := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(label),
			accentStyle.Render(value),
		)
	}

	columns := []string{
		stat("Total Contributions", fmt.Sprintf("%d", s.Total)),
		stat("Active Days", fmt.Sprintf("%d/%d", s.DaysWithContributions, s.TotalDays)),
		stat("Max / Avg per Day", fmt.Sprintf("%d / %s", s.MaxCount, s.AvgCount)),
		stat("Current Streak", fmt.Sprintf("%d days", s.CurrentStreak)),
		stat("Longest Streak", fmt.Sprintf("%d days", s.LongestStreak)),
	}
	for i := range columns[:len(columns)-1] {
		columns[i] = lipgloss.NewStyle().PaddingRight(3).Render(columns[i])
	}

	header := titleStyle.Render("Contribution Stats") + labelStyle.Render("  via "+source)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

// renderFatal renders an error with remediation tips.
func renderFatal(err error) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error: ") + err.Error() + "\n\n")
	b.WriteString(warnStyle.Render("Tips:") + "\n")
	for i, tip := range remediationTips {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, tip)
	}
	return b.String()
}
