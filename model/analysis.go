package model

// Overview is the aggregate summary across all historical events
type Overview struct {
	TotalEventsAnalyzed int        `json:"total_events_analyzed"`
	AvgAttendance       float64    `json:"avg_attendance"`
	AvgTransactions     float64    `json:"avg_transactions"`
	AvgSales            float64    `json:"avg_sales"`
	EventTypes          []string   `json:"event_types,omitempty"`
	KeyMetrics          KeyMetrics `json:"key_metrics"`
	DateRange           DateRange  `json:"date_range"`
}

// KeyMetrics holds per-capita KPIs
type KeyMetrics struct {
	TransactionsPerAttendee float64 `json:"transactions_per_attendee"`
	SalesPerAttendee        float64 `json:"sales_per_attendee"`
	SalesPerTransaction     float64 `json:"sales_per_transaction"`
}

// DateRange bounds the analysed events (ISO 8601 strings)
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EventPerformance breaks performance down by event type and weekday
type EventPerformance struct {
	EventTypePerformance map[string]EventTypeStats `json:"event_type_performance"`
	DayOfWeekPerformance map[string]EventTypeStats `json:"day_of_week_performance"`
}

type EventTypeStats struct {
	AvgAttendance   float64 `json:"avg_attendance"`
	AttendanceStd   float64 `json:"attendance_std,omitempty"`
	EventCount      int     `json:"event_count,omitempty"`
	AvgTransactions float64 `json:"avg_transactions"`
	AvgSales        float64 `json:"avg_sales"`
	AvgUnits        float64 `json:"avg_units,omitempty"`
}

// HistoricalEvent is one past event; the sequence is chronological
type HistoricalEvent struct {
	Date             string  `json:"date"`
	EventType        string  `json:"event_type,omitempty"`
	Opponent         string  `json:"opponent,omitempty"`
	Attendance       float64 `json:"attendance"`
	Transactions     float64 `json:"transactions"`
	NetSales         float64 `json:"net_sales"`
	Units            float64 `json:"units,omitempty"`
	DayOfWeek        string  `json:"day_of_week,omitempty"`
	TransPerAttendee float64 `json:"trans_per_attendee,omitempty"`
	SalesPerAttendee float64 `json:"sales_per_attendee,omitempty"`
}

// Prediction is a single forecast for one future event
type Prediction struct {
	EventDetails   EventDetails    `json:"event_details"`
	Predictions    PredictedTotals `json:"predictions"`
	DerivedMetrics DerivedMetrics  `json:"derived_metrics"`
	KeyInsights    []string        `json:"key_insights"`
}

type EventDetails struct {
	Date               string  `json:"date"`
	Opponent           string  `json:"opponent"`
	Time               string  `json:"time"`
	ExpectedAttendance float64 `json:"expected_attendance"`
}

type PredictedTotals struct {
	Transactions float64 `json:"transactions"`
	NetSales     float64 `json:"net_sales"`
	Units        float64 `json:"units"`
	POSTerminals float64 `json:"pos_terminals"`
}

type DerivedMetrics struct {
	TransPerAttendee    float64 `json:"trans_per_attendee"`
	SalesPerAttendee    float64 `json:"sales_per_attendee"`
	SalesPerTransaction float64 `json:"sales_per_transaction"`
}

// StaffingPlan is the stand-level POS allocation for the forecast event
type StaffingPlan struct {
	TotalPOSNeeded      int               `json:"total_pos_needed"`
	TotalCashiersNeeded int               `json:"total_cashiers_needed"`
	StaffingByStand     []StandAllocation `json:"staffing_by_stand"`
	Recommendations     []string          `json:"recommendations"`
}

type StandAllocation struct {
	StandGroup            string  `json:"stand_group"`
	PredictedTransactions float64 `json:"predicted_transactions"`
	POSTerminalsNeeded    int     `json:"pos_terminals_needed"`
	AvgTransPerPOS        float64 `json:"avg_trans_per_pos"`
}

// RiskAssessment mixes quantitative gaps with qualitative lists
type RiskAssessment struct {
	AttendanceRisk       AttendanceRisk `json:"attendance_risk"`
	RevenueRisk          RevenueRisk    `json:"revenue_risk"`
	OperationalRisks     []string       `json:"operational_risks"`
	Opportunities        []string       `json:"opportunities"`
	MitigationStrategies []string       `json:"mitigation_strategies"`
}

type AttendanceRisk struct {
	PredictedAttendance float64 `json:"predicted_attendance"`
	AvgNBAAttendance    float64 `json:"avg_nba_attendance"`
	AttendanceGap       float64 `json:"attendance_gap"`
	RiskLevel           string  `json:"risk_level"`
}

type RevenueRisk struct {
	PredictedTransPerAttendee float64 `json:"predicted_trans_per_attendee"`
	AvgNBATransPerAttendee    float64 `json:"avg_nba_trans_per_attendee"`
	PerformanceGap            float64 `json:"performance_gap"`
}

// StandPerformance is keyed by stand group
type StandPerformance map[string]StandStats

type StandStats struct {
	TotalTransactions float64 `json:"total_transactions"`
	AvgTransactions   float64 `json:"avg_transactions,omitempty"`
	TotalSales        float64 `json:"total_sales"`
	AvgSales          float64 `json:"avg_sales,omitempty"`
	TotalUnits        float64 `json:"total_units,omitempty"`
	AvgUnits          float64 `json:"avg_units,omitempty"`
	AvgPOS            float64 `json:"avg_pos,omitempty"`
	TransPerPOS       float64 `json:"trans_per_pos"`
	UnitsPerTrans     float64 `json:"units_per_trans,omitempty"`
}
