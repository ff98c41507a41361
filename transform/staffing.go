package transform

import (
	"fmt"
	"math"
	"regexp"

	"arena-dashboard/model"
)

// Priority is the staffing urgency of a stand group.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Palette is cycled over pie slices.
var Palette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4", "#84cc16", "#f97316"}

var standPrefix = regexp.MustCompile(`^(GC|DEST|PORTABLE) - `)

// StaffingRow is one line of the staffing breakdown table.
type StaffingRow struct {
	StandGroup            string   `json:"stand_group"`
	Name                  string   `json:"name"`
	PredictedTransactions float64  `json:"predicted_transactions"`
	POSTerminals          int      `json:"pos_terminals_needed"`
	AvgTransPerPOS        float64  `json:"avg_trans_per_pos"`
	Priority              Priority `json:"priority"`
}

// POSShare is one slice of the POS distribution pie.
type POSShare struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
}

// StandPriority classifies predicted transactions: above 500 is high,
// above 200 medium, anything else low.
func StandPriority(transactions float64) Priority {
	switch {
	case transactions > 500:
		return PriorityHigh
	case transactions > 200:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// StandLabel strips the area prefix: "GC - Beer" -> "Beer".
func StandLabel(group string) string {
	return standPrefix.ReplaceAllString(group, "")
}

func StaffingRows(stands []model.StandAllocation) []StaffingRow {
	out := make([]StaffingRow, 0, len(stands))
	for _, s := range stands {
		out = append(out, StaffingRow{
			StandGroup:            s.StandGroup,
			Name:                  StandLabel(s.StandGroup),
			PredictedTransactions: s.PredictedTransactions,
			POSTerminals:          s.POSTerminalsNeeded,
			AvgTransPerPOS:        s.AvgTransPerPOS,
			Priority:              StandPriority(s.PredictedTransactions),
		})
	}
	return out
}

// POSShares splits POS terminals across stands with whole-percent labels.
// An all-zero allocation yields 0% slices instead of dividing by zero.
func POSShares(stands []model.StandAllocation) []POSShare {
	total := 0
	for _, s := range stands {
		total += s.POSTerminalsNeeded
	}
	denom := float64(total)
	if denom == 0 {
		denom = 1
	}

	out := make([]POSShare, 0, len(stands))
	for i, s := range stands {
		pct := float64(s.POSTerminalsNeeded) / denom * 100
		name := StandLabel(s.StandGroup)
		out = append(out, POSShare{
			Name:    name,
			Value:   s.POSTerminalsNeeded,
			Percent: pct,
			Label:   fmt.Sprintf("%s %.0f%%", name, math.Round(pct)),
			Color:   Palette[i%len(Palette)],
		})
	}
	return out
}

// TotalPredictedTransactions sums the per-stand forecast.
func TotalPredictedTransactions(stands []model.StandAllocation) float64 {
	var sum float64
	for _, s := range stands {
		sum += s.PredictedTransactions
	}
	return sum
}
