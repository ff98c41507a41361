package datasource

import (
	"fmt"
	"strings"

	"arena-dashboard/snapshot"
)

// Resource is one logical analytics resource.
type Resource string

const (
	Overview         Resource = "overview"
	EventPerformance Resource = "event-performance"
	StandPerformance Resource = "stand-performance"
	HistoricalData   Resource = "historical-data"
	Predictions      Resource = "predictions"
	Staffing         Resource = "staffing"
	RiskAssessment   Resource = "risk-assessment"
)

type resourceSpec struct {
	path        string
	snapshotKey string
}

var resources = map[Resource]resourceSpec{
	Overview:         {"/api/analysis/overview", snapshot.KeyOverview},
	EventPerformance: {"/api/analysis/event-performance", snapshot.KeyEventPerformance},
	StandPerformance: {"/api/analysis/stand-performance", snapshot.KeyStandPerformance},
	HistoricalData:   {"/api/historical-data", snapshot.KeyHistoricalData},
	Predictions:      {"/api/predictions/march5", snapshot.KeyPredictions},
	Staffing:         {"/api/staffing/recommendations", snapshot.KeyStaffing},
	RiskAssessment:   {"/api/risk-assessment", snapshot.KeyRiskAssessment},
}

// Resources lists every resource in a stable order.
func Resources() []Resource {
	return []Resource{Overview, EventPerformance, StandPerformance, HistoricalData, Predictions, Staffing, RiskAssessment}
}

// Path is the backend API path.
func (r Resource) Path() string {
	return resources[r].path
}

// SnapshotKey is the top-level key in the static snapshot.
func (r Resource) SnapshotKey() string {
	return resources[r].snapshotKey
}

func (r Resource) Valid() bool {
	_, ok := resources[r]
	return ok
}

// Mode selects where payloads come from.
type Mode int

const (
	LiveWithStaticFallback Mode = iota
	LiveOnly
	StaticOnly
)

func (m Mode) String() string {
	switch m {
	case LiveOnly:
		return "live"
	case StaticOnly:
		return "static"
	default:
		return "fallback"
	}
}

// ParseMode accepts "live", "static" and "fallback".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live", "live_only":
		return LiveOnly, nil
	case "static", "static_only":
		return StaticOnly, nil
	case "fallback", "live_with_static_fallback":
		return LiveWithStaticFallback, nil
	}
	return LiveWithStaticFallback, fmt.Errorf("unknown data source mode %q", s)
}

// StickyPolicy decides whether a live failure degrades one call or the
// resolver's whole lifetime.
type StickyPolicy int

const (
	PerCall StickyPolicy = iota
	Once
)

func (p StickyPolicy) String() string {
	if p == Once {
		return "once"
	}
	return "per_call"
}

func ParseStickyPolicy(s string) (StickyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per_call", "percall":
		return PerCall, nil
	case "once", "sticky":
		return Once, nil
	}
	return PerCall, fmt.Errorf("unknown sticky policy %q", s)
}

// Source records where a payload came from.
type Source string

const (
	SourceLive   Source = "live"
	SourceCache  Source = "cache"
	SourceStatic Source = "static"
)
