package transform

import (
	"fmt"
	"math"
	"strings"

	"arena-dashboard/model"
)

const (
	// DefaultAttendance is assumed when a forecast carries no expected attendance.
	DefaultAttendance = 10000
	// BandFraction is the half-width of the simple baseline band.
	BandFraction = 0.15

	nbaEventType  = "NBA Regular Season"
	baselineDay   = "Sunday"
	notApplicable = "N/A"
)

// ComparisonRow is one line of the predicted versus historical table.
type ComparisonRow struct {
	Metric     string `json:"metric"`
	Predicted  string `json:"predicted"`
	Historical string `json:"historical"`
	Difference string `json:"difference"`
	Negative   bool   `json:"negative"`
}

// Baseline is a per-attendee rate projected onto the expected attendance.
type Baseline struct {
	PerAttendee  float64 `json:"per_attendee"`
	AtAttendance float64 `json:"at_attendance"`
}

// BaselineSet holds the sanity-check baselines for a forecast. NBA and
// Sunday are nil when the event performance data lacks them.
type BaselineSet struct {
	Attendance float64   `json:"attendance"`
	Overall    Baseline  `json:"overall"`
	NBA        *Baseline `json:"nba,omitempty"`
	Sunday     *Baseline `json:"sunday,omitempty"`
	BandLow    float64   `json:"band_low"`
	BandHigh   float64   `json:"band_high"`
}

// Insight is one bullet in an insights card.
type Insight struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// PercentChange returns (value-baseline)/baseline*100. ok is false when the
// baseline is zero.
func PercentChange(value, baseline float64) (float64, bool) {
	if baseline == 0 {
		return 0, false
	}
	return (value - baseline) / baseline * 100, true
}

// FormatPercent renders v rounded to decimals places with a "%" suffix.
// Negative values keep their "-"; positive ones get "+" only when plus is set.
func FormatPercent(v float64, decimals int, plus bool) string {
	s := Fixed(v, decimals) + "%"
	if plus && roundTo(v, decimals) > 0 {
		return "+" + s
	}
	return s
}

// ExpectedAttendance falls back to DefaultAttendance when the forecast has none.
func ExpectedAttendance(p model.Prediction) float64 {
	if p.EventDetails.ExpectedAttendance > 0 {
		return p.EventDetails.ExpectedAttendance
	}
	return DefaultAttendance
}

// PredictionComparison lines the forecast up against historical averages.
// Rows whose baseline is missing show N/A.
func PredictionComparison(p model.Prediction, ov model.Overview) []ComparisonRow {
	attendance := ExpectedAttendance(p)
	rows := []ComparisonRow{
		comparisonRow("Attendance", attendance, ov.AvgAttendance, Thousands),
		comparisonRow("Transactions", p.Predictions.Transactions, ov.AvgTransactions, Thousands),
		comparisonRow("Net Sales", p.Predictions.NetSales, ov.AvgSales, Money),
	}
	// Historical sales are shown whole-dollar.
	if ov.AvgSales != 0 {
		rows[2].Historical = "$" + Thousands(ov.AvgSales)
	}
	return rows
}

func comparisonRow(metric string, predicted, historical float64, format func(float64) string) ComparisonRow {
	row := ComparisonRow{
		Metric:     metric,
		Predicted:  format(predicted),
		Historical: notApplicable,
		Difference: notApplicable,
	}
	if diff, ok := PercentChange(predicted, historical); ok {
		row.Historical = Thousands(historical)
		row.Difference = FormatPercent(diff, 2, false)
		row.Negative = strings.HasPrefix(row.Difference, "-")
	}
	return row
}

// Baselines projects the overall, NBA-only and Sunday transactions-per-attendee
// rates onto the forecast's expected attendance, plus a ±15% band around the
// overall baseline.
func Baselines(ov model.Overview, perf model.EventPerformance, p model.Prediction) BaselineSet {
	attendance := ExpectedAttendance(p)
	overall := ov.KeyMetrics.TransactionsPerAttendee * attendance

	set := BaselineSet{
		Attendance: attendance,
		Overall: Baseline{
			PerAttendee:  ov.KeyMetrics.TransactionsPerAttendee,
			AtAttendance: math.Round(overall),
		},
	}
	if s, ok := perf.EventTypePerformance[nbaEventType]; ok {
		set.NBA = perAttendee(s, attendance)
	}
	if s, ok := perf.DayOfWeekPerformance[baselineDay]; ok {
		set.Sunday = perAttendee(s, attendance)
	}

	band := math.Round(overall * BandFraction)
	set.BandLow = math.Max(0, math.Round(overall-band))
	set.BandHigh = math.Round(overall + band)
	return set
}

func perAttendee(s model.EventTypeStats, attendance float64) *Baseline {
	if s.AvgTransactions == 0 || s.AvgAttendance == 0 {
		return nil
	}
	rate := s.AvgTransactions / s.AvgAttendance
	return &Baseline{PerAttendee: rate, AtAttendance: math.Round(rate * attendance)}
}

// RiskScore maps a risk level to 1 (low), 2 (medium) or 3 (high). Unknown
// levels score as medium.
func RiskScore(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return 1
	case "high":
		return 3
	default:
		return 2
	}
}

// RevenueRiskScore is 2 below baseline and 1 at or above it.
func RevenueRiskScore(performanceGap float64) int {
	if performanceGap < 0 {
		return 2
	}
	return 1
}

func RevenueRiskLabel(performanceGap float64) string {
	if performanceGap < 0 {
		return "Below baseline"
	}
	return "At/Above baseline"
}

// DashboardInsights builds the four headline findings of the overview page.
func DashboardInsights(ov model.Overview, eventTypes []CategoryPoint) []Insight {
	attendanceOf := func(name string) float64 {
		for _, p := range eventTypes {
			if p.Name == name {
				return p.Attendance
			}
		}
		return 0
	}

	return []Insight{
		{Icon: ">", Text: fmt.Sprintf("Average of %s transactions per attendee across all events", Plain(ov.KeyMetrics.TransactionsPerAttendee))},
		{Icon: "$", Text: fmt.Sprintf("Average revenue of $%s per attendee", Plain(ov.KeyMetrics.SalesPerAttendee))},
		{Icon: "*", Text: fmt.Sprintf("NHL games average %s attendees vs %s for NBA games", Thousands(attendanceOf("NHL")), Thousands(attendanceOf("NBA")))},
		{Icon: "#", Text: "Weekend games typically see higher attendance and concession sales"},
	}
}
