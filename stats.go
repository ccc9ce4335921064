package main

import (
	"fmt"
	"time"
)

// Statistics summarizes a dense daily series.
type Statistics struct {
	Total                 int
	DaysWithContributions int
	TotalDays             int
	MaxCount              int
	AvgCount              string // total/totalDays, two decimals, rounded half-up

	LongestStreak int
	CurrentStreak int
}

// CalculateStatistics computes summary statistics over counts.
// CurrentStreak is left at zero; see CurrentStreak.
func CalculateStatistics(counts DailyCounts) Statistics {
	stats := Statistics{
		TotalDays: len(counts),
	}

	for _, count := range counts {
		stats.Total += count
		if count > 0 {
			stats.DaysWithContributions++
		}
		if count > stats.MaxCount {
			stats.MaxCount = count
		}
	}

	stats.AvgCount = formatAverage(stats.Total, stats.TotalDays)
	stats.LongestStreak = LongestStreak(Series(counts))

	return stats
}

// formatAverage formats total/days with two decimals, rounding half-up.
// It works in integer hundredths so results like 0.125 round the same way
// on every platform.
func formatAverage(total, days int) string {
	if days <= 0 {
		return "0.00"
	}
	hundredths := (2*100*total + days) / (2 * days)
	return fmt.Sprintf("%d.%02d", hundredths/100, hundredths%100)
}

// String returns a human-readable summary of the statistics.
func (s Statistics) String() string {
	return fmt.Sprintf(
		"Total: %d contributions | Active: %d/%d days | Avg: %s/day | Max: %d/day",
		s.Total, s.DaysWithContributions, s.TotalDays, s.AvgCount, s.MaxCount,
	)
}

// LongestStreak returns the longest run of consecutive days with
// contributions in a chronological series.
func LongestStreak(series []DailyContribution) int {
	longest := 0
	current := 0
	var prevDate time.Time

	for _, contrib := range series {
		contribDate := truncateDay(contrib.Date)

		// Check if this is consecutive from previous date
		if current > 0 && !contribDate.Equal(prevDate.AddDate(0, 0, 1)) {
			current = 0
		}

		if contrib.Count > 0 {
			current++
			if current > longest {
				longest = current
			}
			prevDate = contribDate
		} else {
			current = 0
		}
	}

	return longest
}

// CurrentStreak returns the run of consecutive days with contributions
// ending at asOf. A quiet asOf day does not break the streak; counting then
// starts from the day before.
func CurrentStreak(counts DailyCounts, asOf time.Time) int {
	day := truncateDay(asOf)
	if counts[DateKey(day)] == 0 {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for counts[DateKey(day)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
