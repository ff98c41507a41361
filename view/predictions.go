package view

import (
	"context"
	"fmt"

	"arena-dashboard/model"
	"arena-dashboard/transform"
)

type PredictionsPage struct {
	Opponent    string                    `json:"opponent"`
	Details     []Metric                  `json:"details"`
	Headline    []Metric                  `json:"headline"`
	Comparison  []transform.ComparisonRow `json:"comparison"`
	PerAttendee []Metric                  `json:"per_attendee"`
	Insights    []string                  `json:"key_insights"`
	Baselines   transform.BaselineSet     `json:"baselines"`
	Evidence    []string                  `json:"evidence"`
	BandCheck   []Metric                  `json:"band_check"`
	Methodology []string                  `json:"methodology"`
	Chart       Chart                     `json:"-"`
}

var predictionMethodology = []string{
	"Set assumptions: attendance = 10,000; Sunday 2 PM; average opponent/event-type effect.",
	"Score models using these inputs to obtain event-level predictions for transactions, sales, units, POS.",
	"Compute KPIs: trans/attendee = transactions / 10,000; sales/attendee = sales / 10,000; sales/transaction = sales / transactions.",
	"Compare to historical NBA averages and weekend daytime patterns. Lower-than-average expected due to lower attendance and Sunday afternoon timing (historically lower per-capita than prime-time).",
}

// BuildPredictions joins the forecast with overview, staffing and event
// performance for the comparison and baseline cards.
func BuildPredictions(ctx context.Context, src DataSource, lc *Lifecycle) (*PredictionsPage, error) {
	var (
		prediction model.Prediction
		overview   model.Overview
		staffing   model.StaffingPlan
		perf       model.EventPerformance
	)
	err := Load(ctx, lc,
		func(ctx context.Context) (err error) {
			prediction, err = src.Predictions(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			overview, err = src.Overview(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			staffing, err = src.Staffing(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			perf, err = src.EventPerformance(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return NewPredictionsPage(prediction, overview, staffing, perf), nil
}

func NewPredictionsPage(pred model.Prediction, ov model.Overview, staffing model.StaffingPlan, perf model.EventPerformance) *PredictionsPage {
	ev := pred.EventDetails
	totals := pred.Predictions

	pos := float64(staffing.TotalPOSNeeded)
	if pos == 0 {
		pos = totals.POSTerminals
	}

	baselines := transform.Baselines(ov, perf, pred)
	attendance := transform.Thousands(baselines.Attendance)

	p := &PredictionsPage{
		Opponent: ev.Opponent,
		Details: []Metric{
			{Label: "Date", Value: ev.Date},
			{Label: "Opponent", Value: ev.Opponent},
			{Label: "Game Time", Value: ev.Time},
			{Label: "Expected Attendance", Value: transform.Number(ev.ExpectedAttendance)},
		},
		Headline: []Metric{
			{Label: "Predicted Transactions", Value: transform.Number(totals.Transactions), Color: "#3b82f6"},
			{Label: "Predicted Net Sales", Value: transform.Money(totals.NetSales), Color: "#10b981"},
			{Label: "Predicted Units Sold", Value: transform.Number(totals.Units), Color: "#f59e0b"},
			{Label: "POS Terminals Recommended", Value: transform.Number(pos), Color: "#ef4444"},
		},
		Comparison: transform.PredictionComparison(pred, ov),
		PerAttendee: []Metric{
			{Label: "Transactions per Attendee", Value: transform.Plain(pred.DerivedMetrics.TransPerAttendee), Color: "#3b82f6"},
			{Label: "Sales per Attendee", Value: "$" + transform.Plain(pred.DerivedMetrics.SalesPerAttendee), Color: "#10b981"},
			{Label: "Sales per Transaction", Value: "$" + transform.Plain(pred.DerivedMetrics.SalesPerTransaction), Color: "#f59e0b"},
		},
		Insights:    pred.KeyInsights,
		Baselines:   baselines,
		Methodology: predictionMethodology,
		BandCheck: []Metric{
			{Label: "Baseline trans/attendee", Value: transform.Plain(baselines.Overall.PerAttendee)},
			{Label: "Baseline at " + attendance, Value: transform.Thousands(baselines.Overall.AtAttendance)},
			{Label: "Simple 95% band", Value: transform.Thousands(baselines.BandLow) + " - " + transform.Thousands(baselines.BandHigh)},
			{Label: "Model prediction", Value: transform.Number(totals.Transactions)},
		},
	}

	p.Evidence = []string{
		fmt.Sprintf("Historical average transactions per event: %s.", transform.Number(ov.AvgTransactions)),
		fmt.Sprintf("Overall trans/attendee baseline × %s: %s.", attendance, transform.Thousands(baselines.Overall.AtAttendance)),
		segmentEvidence("NBA-only", baselines.NBA, attendance),
		segmentEvidence("Sunday", baselines.Sunday, attendance),
		fmt.Sprintf("Model prediction (%s) sits within these baselines and below overall average due to Sunday afternoon timing and lower attendance profile.", transform.Number(totals.Transactions)),
	}

	p.Chart = NewChart("Metrics Visualization", "Predicted vs Historical",
		[]string{"Predicted", "Historical Avg"},
		Series{Name: "Transactions", Color: "#3b82f6", Values: []float64{totals.Transactions, ov.AvgTransactions}},
		Series{Name: "Sales", Color: "#10b981", Values: []float64{totals.NetSales, ov.AvgSales}, Format: transform.Money},
	)
	return p
}

func segmentEvidence(name string, b *transform.Baseline, attendance string) string {
	if b == nil {
		return fmt.Sprintf("%s baseline: N/A per attendee ⇒ N/A at %s.", name, attendance)
	}
	return fmt.Sprintf("%s baseline: %s per attendee ⇒ %s at %s.", name, transform.Fixed(b.PerAttendee, 3), transform.Thousands(b.AtAttendance), attendance)
}
