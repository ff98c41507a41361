package view

import (
	"context"

	"arena-dashboard/model"
)

// DataSource provides the decoded analytics resources a page needs.
type DataSource interface {
	Overview(ctx context.Context) (model.Overview, error)
	EventPerformance(ctx context.Context) (model.EventPerformance, error)
	StandPerformance(ctx context.Context) (model.StandPerformance, error)
	HistoricalData(ctx context.Context) ([]model.HistoricalEvent, error)
	Predictions(ctx context.Context) (model.Prediction, error)
	Staffing(ctx context.Context) (model.StaffingPlan, error)
	RiskAssessment(ctx context.Context) (model.RiskAssessment, error)
}

// Page describes one dashboard view.
type Page struct {
	Slug          string
	Path          string
	Label         string
	Title         string
	LoadingText   string
	ErrorSubtitle string
	template      string
	build         func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error)
}

// Build loads the page's resources through lc and returns its view model.
func (p Page) Build(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
	return p.build(ctx, src, lc)
}

var pages = []Page{
	{
		Slug: "dashboard", Path: "/", Label: "Dashboard", Title: "Analytics Overview",
		LoadingText: "Loading dashboard data...", ErrorSubtitle: "Failed to load dashboard data",
		template: "page_dashboard",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildDashboard(ctx, src, lc)
		},
	},
	{
		Slug: "methods", Path: "/methods", Label: "Methods", Title: "Methods",
		LoadingText: "Loading methods...", ErrorSubtitle: "Failed to load methods",
		template: "page_methods",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildMethods(ctx, lc)
		},
	},
	{
		Slug: "predictions", Path: "/predictions", Label: "March 5th Predictions", Title: "March 5th Game Predictions",
		LoadingText: "Loading predictions...", ErrorSubtitle: "Failed to load predictions data",
		template: "page_predictions",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildPredictions(ctx, src, lc)
		},
	},
	{
		Slug: "stand-analysis", Path: "/stand-analysis", Label: "Stand Performance", Title: "Stand Performance Analysis",
		LoadingText: "Loading stand analysis...", ErrorSubtitle: "Failed to load stand analysis data",
		template: "page_stands",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildStands(ctx, src, lc)
		},
	},
	{
		Slug: "staffing", Path: "/staffing", Label: "Staffing Recommendations", Title: "Staffing Recommendations",
		LoadingText: "Loading staffing recommendations...", ErrorSubtitle: "Failed to load staffing data",
		template: "page_staffing",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildStaffing(ctx, src, lc)
		},
	},
	{
		Slug: "risk-assessment", Path: "/risk-assessment", Label: "Risk Assessment", Title: "Risk Assessment",
		LoadingText: "Loading risk assessment...", ErrorSubtitle: "Failed to load risk assessment data",
		template: "page_risk",
		build: func(ctx context.Context, src DataSource, lc *Lifecycle) (any, error) {
			return BuildRisk(ctx, src, lc)
		},
	},
}

// Pages lists every page in registration order.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

func BySlug(slug string) (Page, bool) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

func ByPath(path string) (Page, bool) {
	for _, p := range pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}
