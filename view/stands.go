package view

import (
	"context"

	"arena-dashboard/model"
	"arena-dashboard/transform"
)

type StandsPage struct {
	Rows  []transform.StandRow `json:"stands"`
	Chart Chart                `json:"-"`
}

func BuildStands(ctx context.Context, src DataSource, lc *Lifecycle) (*StandsPage, error) {
	var stands model.StandPerformance
	err := Load(ctx, lc, func(ctx context.Context) (err error) {
		stands, err = src.StandPerformance(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewStandsPage(stands), nil
}

func NewStandsPage(stands model.StandPerformance) *StandsPage {
	rows := transform.StandSeries(stands)

	labels := make([]string, len(rows))
	transactions := make([]float64, len(rows))
	sales := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Name
		transactions[i] = r.Transactions
		sales[i] = r.Sales
	}

	return &StandsPage{
		Rows: rows,
		Chart: NewChart("Stand Performance Overview", "Total transactions and sales by stand type", labels,
			Series{Name: "Total Transactions", Color: "#3b82f6", Values: transactions},
			Series{Name: "Total Sales", Color: "#10b981", Values: sales, Format: transform.Money},
		),
	}
}
