package main

import (
	"fmt"
	"sort"
	"strings"
)

// Locale holds every user-visible string of the rendered heatmap.
type Locale struct {
	Code      string
	Lang      string
	Months    [12]string
	DayLabels [7]string // indexed by weekday, 0 = Sunday

	titleFormat string

	TotalLabel  string
	ActiveLabel string
	MaxLabel    string
	AvgLabel    string
	PerDay      string
	Unit        string
	Less        string
	More        string
	Footer      string
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

var locales = map[string]Locale{
	"en": {
		Code:        "en",
		Lang:        "en",
		Months:      [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		DayLabels:   [7]string{"", "Mon", "", "Wed", "", "Fri", ""},
		titleFormat: "%s's Contributions",
		TotalLabel:  "Total",
		ActiveLabel: "Active days",
		MaxLabel:    "Max",
		AvgLabel:    "Avg",
		PerDay:      "/day",
		Unit:        "contributions",
		Less:        "Less",
		More:        "More",
		Footer:      "Generated by githeat",
	},
	"zh": {
		Code:        "zh",
		Lang:        "zh-CN",
		Months:      [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		DayLabels:   [7]string{"", "周一", "", "周三", "", "周五", ""},
		titleFormat: "%s 的贡献热力图",
		TotalLabel:  "总贡献",
		ActiveLabel: "活跃天数",
		MaxLabel:    "最高",
		AvgLabel:    "平均",
		PerDay:      " 次/天",
		Unit:        "次贡献",
		Less:        "少",
		More:        "多",
		Footer:      "由 githeat 生成",
	},
}

// LookupLocale returns the built-in locale for code.
func LookupLocale(code string) (Locale, error) {
	loc, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Locale{}, &ConfigError{
			Parameter: "locale",
			Value:     code,
			Err:       fmt.Errorf("want one of %s", strings.Join(LocaleCodes(), ", ")),
		}
	}
	return loc, nil
}

// LocaleCodes returns the built-in locale codes, sorted.
func LocaleCodes() []string {
	codes := make([]string, 0, len(locales))
	for code := range locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Title returns the heading for username's heatmap.
func (l Locale) Title(username string) string {
	return fmt.Sprintf(l.titleFormat, username)
}

// StatsLine returns the one-line statistics summary.
func (l Locale) StatsLine(s Statistics) string {
	return fmt.Sprintf("%s: %d | %s: %d/%d | %s: %d%s | %s: %s%s",
		l.TotalLabel, s.Total,
		l.ActiveLabel, s.DaysWithContributions, s.TotalDays,
		l.MaxLabel, s.MaxCount, l.PerDay,
		l.AvgLabel, s.AvgCount, l.PerDay,
	)
}

// CellTitle returns the hover text for one day.
func (l Locale) CellTitle(date string, count int) string {
	return fmt.Sprintf("%s: %d %s", date, count, l.Unit)
}
