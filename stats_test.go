package main

import (
	"testing"
	"time"
)

func TestFormatAverage(t *testing.T) {
	tests := []struct {
		total    int
		days     int
		expected string
	}{
		{5, 3, "1.67"},
		{1, 8, "0.13"},  // 0.125 rounds half-up
		{3, 8, "0.38"},  // 0.375
		{1, 3, "0.33"},
		{2, 3, "0.67"},
		{10, 1, "10.00"},
		{0, 7, "0.00"},
		{0, 0, "0.00"},
		{1, 200, "0.01"}, // 0.005
		{1, 400, "0.00"}, // 0.0025
	}

	for _, tt := range tests {
		result := formatAverage(tt.total, tt.days)
		if result != tt.expected {
			t.Errorf("formatAverage(%d, %d) = %s, want %s", tt.total, tt.days, result, tt.expected)
		}
	}
}

func TestCalculateStatistics(t *testing.T) {
	counts := DailyCounts{"2024-01-01": 0, "2024-01-02": 5, "2024-01-03": 0}

	got := CalculateStatistics(counts)
	want := Statistics{
		Total:                 5,
		DaysWithContributions: 1,
		TotalDays:             3,
		MaxCount:              5,
		AvgCount:              "1.67",
		LongestStreak:         1,
	}

	if got != want {
		t.Errorf("CalculateStatistics() = %+v, want %+v", got, want)
	}
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	got := CalculateStatistics(DailyCounts{})

	if got.Total != 0 || got.MaxCount != 0 || got.TotalDays != 0 {
		t.Errorf("CalculateStatistics(empty) = %+v, want zero counters", got)
	}
	if got.AvgCount != "0.00" {
		t.Errorf("CalculateStatistics(empty).AvgCount = %s, want 0.00", got.AvgCount)
	}
}

func TestCalculateStatisticsTotalsMatchSeries(t *testing.T) {
	counts := DailyCounts{
		"2024-03-01": 4,
		"2024-03-02": 0,
		"2024-03-03": 9,
		"2024-03-04": 1,
		"2024-03-05": 0,
	}

	stats := CalculateStatistics(counts)

	sum, maxCount, active := 0, 0, 0
	for _, c := range counts {
		sum += c
		if c > maxCount {
			maxCount = c
		}
		if c > 0 {
			active++
		}
	}

	if stats.Total != sum {
		t.Errorf("Total = %d, want %d", stats.Total, sum)
	}
	if stats.MaxCount != maxCount {
		t.Errorf("MaxCount = %d, want %d", stats.MaxCount, maxCount)
	}
	if stats.DaysWithContributions != active {
		t.Errorf("DaysWithContributions = %d, want %d", stats.DaysWithContributions, active)
	}
	if stats.AvgCount != "2.80" {
		t.Errorf("AvgCount = %s, want 2.80", stats.AvgCount)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name   string
		counts DailyCounts
		want   int
	}{
		{"empty", DailyCounts{}, 0},
		{"no contributions", DailyCounts{"2024-01-01": 0, "2024-01-02": 0}, 0},
		{
			name: "two runs",
			counts: DailyCounts{
				"2024-01-01": 1, "2024-01-02": 2, "2024-01-03": 0,
				"2024-01-04": 1, "2024-01-05": 1, "2024-01-06": 1,
			},
			want: 3,
		},
		{
			name:   "gap in dates breaks streak",
			counts: DailyCounts{"2024-01-01": 1, "2024-01-02": 1, "2024-01-05": 1},
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LongestStreak(Series(tt.counts))
			if got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	counts := DailyCounts{
		"2024-01-01": 1,
		"2024-01-02": 3,
		"2024-01-03": 2,
		"2024-01-04": 0,
		"2024-01-05": 0,
	}

	tests := []struct {
		asOf string
		want int
	}{
		{"2024-01-03", 3},
		{"2024-01-04", 3}, // quiet today, streak runs through yesterday
		{"2024-01-05", 0},
		{"2024-01-02", 2},
	}

	for _, tt := range tests {
		asOf, _ := time.Parse(dateLayout, tt.asOf)
		got := CurrentStreak(counts, asOf)
		if got != tt.want {
			t.Errorf("CurrentStreak(asOf %s) = %d, want %d", tt.asOf, got, tt.want)
		}
	}
}
