package view

import "context"

// Section is one prose card of the Methods page.
type Section struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Paragraph string   `json:"paragraph,omitempty"`
	Items     []string `json:"items,omitempty"`
	Code      string   `json:"code,omitempty"`
}

type MethodsPage struct {
	Sections []Section `json:"sections"`
}

var methodSections = []Section{
	{
		Title:    "Data Sources and Preparation",
		Subtitle: "Simple steps",
		Paragraph: "We combine three worksheets (Event Characteristics, Event POS, Stand POS), standardize dates/times, " +
			"and create per-capita KPIs. Event Characteristics joins with Event POS at the date-venue grain to form the modeling table.",
		Items: []string{
			"Collect: import three tabs and validate columns",
			"Clean: parse dates/times, fix types, remove obvious anomalies",
			"Join: link Event Characteristics to Event POS by venue and date",
			"Engineer: day-of-week, month, hour, weekend, and per-capita KPIs",
			"Check: spot-check ranges and missing values",
		},
	},
	{
		Title:    "Modeling Strategy",
		Subtitle: "Step-by-step, per model",
		Items: []string{
			"Linear Regression: establishes a simple baseline; fast and interpretable. Used to sanity-check directionality and effect sizes.",
			"Random Forest: captures non-linearities and interactions without heavy tuning. Feature importance confirms attendance and calendar fields dominate.",
			"Gradient Boosting: strongest event-level accuracy in testing; selected when it achieved the highest held-out R².",
			"Selection rule: for each target (transactions, sales, units, POS), pick the model with the best held-out R², then compute per-attendee KPIs from the predictions.",
		},
	},
	{
		Title:    "March 5 Forecasting",
		Subtitle: "Step by step",
		Items: []string{
			"Set assumptions: attendance 10,000; Sunday; 2 PM; opponent average",
			"Assemble inputs: attendance + encoded calendar/opponent fields",
			"Score models: get predictions for transactions, sales, units, POS",
			"Derive KPIs: transactions/attendee, sales/attendee, sales/transaction",
			"Cross-check: compare to historical NBA averages and weekend/daytime patterns",
		},
	},
	{
		Title:    "Stand-Level Staffing",
		Subtitle: "Allocation using historical share and service rates",
		Paragraph: "Predicted transactions are allocated across stand groups in proportion to their historical share, " +
			"then POS terminals are sized using the observed transactions-per-POS efficiency by stand type. " +
			"This yields both per-stand POS counts and total cashier counts.",
		Items: []string{
			"Share model: stand_share = stand_transactions / total_transactions",
			"Capacity: POS_needed = ceil(predicted_transactions_for_stand / avg_trans_per_pos)",
			"Outputs: per-stand POS, total POS, qualitative priority guidance",
		},
	},
	{
		Title:    "Risk, Assumptions, and Limitations",
		Subtitle: "What to watch and how to mitigate",
		Items: []string{
			"Data drift between seasons and roster changes can shift per-capita behavior.",
			"Static opponent encoding approximates opponent effect; richer context could improve this.",
			"Weather and promotions are not modeled explicitly; consider adding exogenous regressors.",
			"Mitigation: dynamic POS activation plan and real-time queue monitoring.",
		},
	},
	{
		Title:    "Performance and Deployment",
		Subtitle: "Caching, snapshot fallback, and local dev",
		Paragraph: "Analysis is pre-computed into a compact JSON cache and served by a lightweight API. " +
			"This dashboard reads that API, keeps recent responses in memory, and falls back to a bundled snapshot when the API is unreachable.",
		Code: "# Serve the dashboard against a local analytics API\n" +
			"ARENA_API_BASE_URL=http://localhost:5001 go run .\n\n" +
			"# Serve the bundled snapshot only\n" +
			"ARENA_DATASOURCE_MODE=static go run .",
	},
}

// BuildMethods has nothing to fetch; it still walks the lifecycle so the
// page behaves like every other one.
func BuildMethods(ctx context.Context, lc *Lifecycle) (*MethodsPage, error) {
	if err := Load(ctx, lc); err != nil {
		return nil, err
	}
	return &MethodsPage{Sections: methodSections}, nil
}
