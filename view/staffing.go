package view

import (
	"context"
	"fmt"

	"arena-dashboard/model"
	"arena-dashboard/transform"
)

type StaffingPage struct {
	Summary         []Metric                `json:"summary"`
	Rows            []transform.StaffingRow `json:"staffing_by_stand"`
	Shares          []transform.POSShare    `json:"pos_distribution"`
	Legend          []string                `json:"legend"`
	Recommendations []string                `json:"recommendations"`
	Methodology     []string                `json:"methodology"`
	Timeline        []Metric                `json:"timeline"`
	Mitigation      []string                `json:"mitigation"`
	Chart           Chart                   `json:"-"`
}

var staffingMethodology = []string{
	"Step 1: Allocate predicted transactions across stand groups by historical share of transactions observed in the Stand POS dataset.",
	"Step 2: For each stand group, compute POS terminals as POS_needed = ceil(predicted_transactions_for_group / avg_trans_per_pos_for_group).",
	"The pie chart shows the distribution of POS terminals by stand group, not transactions. Bars show both POS needed and predicted transactions for context.",
}

var staffingTimeline = []Metric{
	{Label: "90 minutes before game", Value: "Deploy 60% of staff to handle early arrivals"},
	{Label: "30 minutes before game", Value: "All staff deployed, focus on high-traffic stands"},
	{Label: "Halftime", Value: "Peak demand period - ensure all terminals are operational"},
	{Label: "Post-game", Value: "Maintain 40% staff for post-game sales (15 minutes)"},
}

var staffingMitigation = []string{
	"Keep 2-3 backup cashiers on standby for unexpected demand spikes",
	"Have technical support available for POS system issues",
	"Implement mobile payment backup systems for high-volume stands",
	"Monitor real-time queue lengths and adjust staffing dynamically",
}

func BuildStaffing(ctx context.Context, src DataSource, lc *Lifecycle) (*StaffingPage, error) {
	var plan model.StaffingPlan
	err := Load(ctx, lc, func(ctx context.Context) (err error) {
		plan, err = src.Staffing(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewStaffingPage(plan), nil
}

func NewStaffingPage(plan model.StaffingPlan) *StaffingPage {
	rows := transform.StaffingRows(plan.StaffingByStand)
	shares := transform.POSShares(plan.StaffingByStand)

	legend := make([]string, len(shares))
	for i, s := range shares {
		legend[i] = fmt.Sprintf("%s: %s (%d POS)", s.Name, transform.FormatPercent(s.Percent, 0, false), s.Value)
	}

	labels := make([]string, len(rows))
	pos := make([]float64, len(rows))
	transactions := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Name
		pos[i] = float64(r.POSTerminals)
		transactions[i] = r.PredictedTransactions
	}

	return &StaffingPage{
		Summary: []Metric{
			{Label: "Total POS Terminals", Value: transform.Number(float64(plan.TotalPOSNeeded)), Color: "#3b82f6"},
			{Label: "Cashiers Needed", Value: transform.Number(float64(plan.TotalCashiersNeeded)), Color: "#10b981"},
			{Label: "Stand Types", Value: transform.Number(float64(len(plan.StaffingByStand))), Color: "#f59e0b"},
			{Label: "Total Transactions", Value: transform.Number(transform.TotalPredictedTransactions(plan.StaffingByStand)), Color: "#ef4444"},
		},
		Rows:            rows,
		Shares:          shares,
		Legend:          legend,
		Recommendations: plan.Recommendations,
		Methodology:     staffingMethodology,
		Timeline:        staffingTimeline,
		Mitigation:      staffingMitigation,
		Chart: NewChart("Staffing by Stand Type", "POS terminals and predicted transactions", labels,
			Series{Name: "POS Terminals", Color: "#3b82f6", Values: pos},
			Series{Name: "Predicted Transactions", Color: "#10b981", Values: transactions},
		),
	}
}
