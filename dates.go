package main

import (
	"fmt"
	"sort"
	"time"
)

// dateLayout is the ISO calendar-day format used for every date key.
const dateLayout = "2006-01-02"

// DailyContribution represents a single day's contribution count.
type DailyContribution struct {
	Date  time.Time
	Count int
}

// DailyCounts maps an ISO date key to a contribution count.
// All keys are UTC calendar days.
type DailyCounts map[string]int

// ParseDate parses a YYYY-MM-DD string into UTC midnight of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// DateKey returns the UTC calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// truncateDay returns UTC midnight of t's UTC calendar day.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultRange returns Jan 1 through Dec 31 of now's year.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// inRange reports whether day falls within [start, end] at day granularity.
func inRange(day, start, end time.Time) bool {
	day = truncateDay(day)
	return !day.Before(truncateDay(start)) && !day.After(truncateDay(end))
}

// DaysInRange returns the inclusive number of calendar days in [start, end].
func DaysInRange(start, end time.Time) int {
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// FillDateRange returns a new mapping holding every day in [start, end].
// Days absent from counts get zero. Keys outside the range are dropped.
func FillDateRange(counts DailyCounts, start, end time.Time) DailyCounts {
	start, end = truncateDay(start), truncateDay(end)

	filled := make(DailyCounts, DaysInRange(start, end))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := DateKey(day)
		filled[key] = counts[key]
	}
	return filled
}

// SortedDates returns the keys of counts in ascending order.
func SortedDates(counts DailyCounts) []string {
	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Series returns counts as a chronological slice. Keys that do not parse
// as dates are skipped.
func Series(counts DailyCounts) []DailyContribution {
	series := make([]DailyContribution, 0, len(counts))
	for _, key := range SortedDates(counts) {
		day, err := ParseDate(key)
		if err != nil {
			continue
		}
		series = append(series, DailyContribution{Date: day, Count: counts[key]})
	}
	return series
}
