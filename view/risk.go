package view

import (
	"context"
	"strings"

	"arena-dashboard/model"
	"arena-dashboard/transform"
)

// RiskCard is one quantitative risk panel.
type RiskCard struct {
	Title   string   `json:"title"`
	Level   string   `json:"level"`
	Metrics []Metric `json:"metrics"`
	// GapNegative colours the last metric.
	GapNegative bool `json:"gap_negative"`
}

// ScoreLine is one row of the normalised risk summary.
type ScoreLine struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

type RiskPage struct {
	Attendance  RiskCard    `json:"attendance"`
	Revenue     RiskCard    `json:"revenue"`
	Operational []string    `json:"operational_risks"`
	Opportunity []string    `json:"opportunities"`
	Mitigation  []string    `json:"mitigation_strategies"`
	Scores      []ScoreLine `json:"scores"`
}

func BuildRisk(ctx context.Context, src DataSource, lc *Lifecycle) (*RiskPage, error) {
	var risk model.RiskAssessment
	err := Load(ctx, lc, func(ctx context.Context) (err error) {
		risk, err = src.RiskAssessment(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewRiskPage(risk), nil
}

func NewRiskPage(r model.RiskAssessment) *RiskPage {
	att := r.AttendanceRisk
	rev := r.RevenueRisk

	return &RiskPage{
		Attendance: RiskCard{
			Title: "Attendance Risk Analysis",
			Level: strings.ToLower(att.RiskLevel),
			Metrics: []Metric{
				{Label: "Predicted Attendance", Value: transform.Number(att.PredictedAttendance)},
				{Label: "Average NBA Attendance", Value: transform.Number(att.AvgNBAAttendance)},
				{Label: "Attendance Gap", Value: transform.SignedInt(att.AttendanceGap)},
			},
			GapNegative: att.AttendanceGap < 0,
		},
		// The revenue panel is always shown at medium.
		Revenue: RiskCard{
			Title: "Revenue Risk Analysis",
			Level: "medium",
			Metrics: []Metric{
				{Label: "Predicted Trans/Attendee", Value: transform.Plain(rev.PredictedTransPerAttendee)},
				{Label: "Average NBA Trans/Attendee", Value: transform.Plain(rev.AvgNBATransPerAttendee)},
				{Label: "Performance Gap", Value: signedPlain(rev.PerformanceGap)},
			},
			GapNegative: rev.PerformanceGap < 0,
		},
		Operational: r.OperationalRisks,
		Opportunity: r.Opportunities,
		Mitigation:  r.MitigationStrategies,
		Scores: []ScoreLine{
			{Label: "Attendance Risk: " + att.RiskLevel, Score: transform.RiskScore(att.RiskLevel)},
			{Label: "Revenue Risk: " + transform.RevenueRiskLabel(rev.PerformanceGap), Score: transform.RevenueRiskScore(rev.PerformanceGap)},
			{Label: "Operational Complexity: High-traffic stands and halftime surge require proactive queue management", Score: 2},
		},
	}
}

func signedPlain(v float64) string {
	if v > 0 {
		return "+" + transform.Plain(v)
	}
	return transform.Plain(v)
}
