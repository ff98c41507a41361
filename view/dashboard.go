package view

import (
	"context"

	"arena-dashboard/model"
	"arena-dashboard/transform"
)

// Metric is a labelled headline figure.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

type DashboardPage struct {
	EventsAnalyzed int                       `json:"events_analyzed"`
	PeriodStart    string                    `json:"period_start"`
	PeriodEnd      string                    `json:"period_end"`
	Metrics        []Metric                  `json:"metrics"`
	EventTypes     []transform.CategoryPoint `json:"event_types"`
	Weekdays       []transform.DayPoint      `json:"weekdays"`
	RecentTrends   []transform.TrendPoint    `json:"recent_trends"`
	Insights       []transform.Insight       `json:"insights"`
	Charts         []Chart                   `json:"-"`
}

// BuildDashboard fetches overview, event performance and history in parallel.
func BuildDashboard(ctx context.Context, src DataSource, lc *Lifecycle) (*DashboardPage, error) {
	var (
		overview model.Overview
		perf     model.EventPerformance
		history  []model.HistoricalEvent
	)
	err := Load(ctx, lc,
		func(ctx context.Context) (err error) {
			overview, err = src.Overview(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			perf, err = src.EventPerformance(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			history, err = src.HistoricalData(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return NewDashboardPage(overview, perf, history), nil
}

func NewDashboardPage(ov model.Overview, perf model.EventPerformance, history []model.HistoricalEvent) *DashboardPage {
	eventTypes := transform.EventTypeSeries(perf.EventTypePerformance)
	weekdays := transform.WeekdaySeries(perf.DayOfWeekPerformance)
	trends := transform.RecentTrends(history, transform.RecentWindow)

	p := &DashboardPage{
		EventsAnalyzed: ov.TotalEventsAnalyzed,
		PeriodStart:    transform.LongDate(ov.DateRange.Start),
		PeriodEnd:      transform.LongDate(ov.DateRange.End),
		Metrics: []Metric{
			{Label: "Average Attendance", Value: transform.Number(ov.AvgAttendance)},
			{Label: "Average Transactions", Value: transform.Number(ov.AvgTransactions)},
			{Label: "Average Sales per Event", Value: transform.Money(ov.AvgSales)},
			{Label: "Sales per Transaction", Value: "$" + transform.Plain(ov.KeyMetrics.SalesPerTransaction)},
		},
		EventTypes:   eventTypes,
		Weekdays:     weekdays,
		RecentTrends: trends,
		Insights:     transform.DashboardInsights(ov, eventTypes),
	}

	typeLabels := make([]string, len(eventTypes))
	typeAttendance := make([]float64, len(eventTypes))
	typeTransactions := make([]float64, len(eventTypes))
	for i, e := range eventTypes {
		typeLabels[i] = e.Name
		typeAttendance[i] = e.Attendance
		typeTransactions[i] = e.Transactions
	}

	dayLabels := make([]string, len(weekdays))
	dayAttendance := make([]float64, len(weekdays))
	for i, d := range weekdays {
		dayLabels[i] = d.Name
		dayAttendance[i] = d.Attendance
	}

	trendLabels := make([]string, len(trends))
	trendAttendance := make([]float64, len(trends))
	trendTransactions := make([]float64, len(trends))
	for i, t := range trends {
		trendLabels[i] = t.Date
		trendAttendance[i] = t.Attendance
		trendTransactions[i] = t.Transactions
	}

	p.Charts = []Chart{
		NewChart("Performance by Event Type", "Average metrics comparison", typeLabels,
			Series{Name: "Attendance", Color: "#3b82f6", Values: typeAttendance},
			Series{Name: "Transactions", Color: "#10b981", Values: typeTransactions},
		),
		NewChart("Performance by Day of Week", "Average attendance patterns", dayLabels,
			Series{Name: "Attendance", Color: "#3b82f6", Values: dayAttendance},
		),
		NewChart("Recent Performance Trends", "Last 10 events", trendLabels,
			Series{Name: "Attendance", Color: "#3b82f6", Values: trendAttendance},
			Series{Name: "Transactions", Color: "#10b981", Values: trendTransactions},
		),
	}
	return p
}
