// Package transform reshapes analytics payloads into chart and table rows.
// Every function is pure and safe on zero-valued input.
package transform

import (
	"math"
	"sort"
	"strings"
	"time"

	"arena-dashboard/model"
)

// Weekdays is the fixed display order for day-of-week series.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// RecentWindow is how many historical events the trends chart shows.
const RecentWindow = 10

// CategoryPoint is one bar group in the event type chart.
type CategoryPoint struct {
	Name         string  `json:"name"`
	Attendance   float64 `json:"attendance"`
	Transactions float64 `json:"transactions"`
	Sales        float64 `json:"sales"`
}

// DayPoint is one point of the day-of-week line.
type DayPoint struct {
	Day          string  `json:"day"`
	Name         string  `json:"name"`
	Attendance   float64 `json:"attendance"`
	Transactions float64 `json:"transactions"`
	Sales        float64 `json:"sales"`
}

// TrendPoint is one event of the recent trends chart.
type TrendPoint struct {
	Date         string  `json:"date"`
	Attendance   float64 `json:"attendance"`
	Transactions float64 `json:"transactions"`
	Sales        float64 `json:"sales"`
}

// StandRow is one stand group of the stand analysis chart and table.
type StandRow struct {
	Group               string  `json:"stand_group"`
	Name                string  `json:"name"`
	Transactions        float64 `json:"transactions"`
	Sales               float64 `json:"sales"`
	SalesPerTransaction float64 `json:"sales_per_transaction"`
	Efficiency          float64 `json:"efficiency"`
}

// EventTypeSeries flattens per-type stats into rounded points sorted by name.
// The " Regular Season" suffix is dropped so leagues read as "NBA", "NHL".
func EventTypeSeries(stats map[string]model.EventTypeStats) []CategoryPoint {
	out := make([]CategoryPoint, 0, len(stats))
	for name, s := range stats {
		out = append(out, CategoryPoint{
			Name:         strings.Replace(name, " Regular Season", "", 1),
			Attendance:   math.Round(s.AvgAttendance),
			Transactions: math.Round(s.AvgTransactions),
			Sales:        math.Round(s.AvgSales),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WeekdaySeries orders day-keyed stats Monday through Sunday. Keys that are
// not weekday names follow, alphabetically.
func WeekdaySeries(stats map[string]model.EventTypeStats) []DayPoint {
	out := make([]DayPoint, 0, len(stats))
	for day, s := range stats {
		out = append(out, DayPoint{
			Day:          day,
			Name:         shortDay(day),
			Attendance:   math.Round(s.AvgAttendance),
			Transactions: math.Round(s.AvgTransactions),
			Sales:        math.Round(s.AvgSales),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := weekdayIndex(out[i].Day), weekdayIndex(out[j].Day)
		if a != b {
			return a < b
		}
		return out[i].Day < out[j].Day
	})
	return out
}

func weekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return len(Weekdays)
}

func shortDay(day string) string {
	if len(day) <= 3 {
		return day
	}
	return day[:3]
}

// RecentTrends keeps the last n events in input order. Shorter
// histories come back whole.
func RecentTrends(history []model.HistoricalEvent, n int) []TrendPoint {
	if n < 0 {
		n = 0
	}
	start := 0
	if len(history) > n {
		start = len(history) - n
	}
	window := history[start:]

	out := make([]TrendPoint, 0, len(window))
	for _, e := range window {
		out = append(out, TrendPoint{
			Date:         ShortDate(e.Date),
			Attendance:   e.Attendance,
			Transactions: e.Transactions,
			Sales:        math.Round(e.NetSales),
		})
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShortDate renders an ISO date as "Jan 2". Unparseable input is returned as is.
func ShortDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("Jan 2")
	}
	return s
}

// LongDate renders an ISO date as "1/2/2006".
func LongDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("1/2/2006")
	}
	return s
}

// StandSeries lists stand groups by total transactions, busiest first.
func StandSeries(stands model.StandPerformance) []StandRow {
	out := make([]StandRow, 0, len(stands))
	for group, s := range stands {
		row := StandRow{
			Group:        group,
			Name:         StandLabel(group),
			Transactions: s.TotalTransactions,
			Sales:        s.TotalSales,
			Efficiency:   s.TransPerPOS,
		}
		if s.TotalTransactions != 0 {
			row.SalesPerTransaction = s.TotalSales / s.TotalTransactions
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Transactions != out[j].Transactions {
			return out[i].Transactions > out[j].Transactions
		}
		return out[i].Group < out[j].Group
	})
	return out
}
