package view

import "arena-dashboard/transform"

// Series is one metric plotted across a chart's categories.
type Series struct {
	Name   string
	Color  string
	Values []float64
	Format func(float64) string
}

// Bar is one rendered bar; Width is a percentage of the series maximum.
type Bar struct {
	Series  string  `json:"series"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Width   float64 `json:"width"`
	Color   string  `json:"color"`
}

// BarGroup holds the bars drawn for one category.
type BarGroup struct {
	Label string `json:"label"`
	Bars  []Bar  `json:"bars"`
}

// Chart is a server-rendered horizontal bar chart.
type Chart struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Legend   []Series   `json:"-"`
	Groups   []BarGroup `json:"groups"`
}

// NewChart scales each series to its own maximum so metrics of different
// magnitude share one chart.
func NewChart(title, subtitle string, labels []string, series ...Series) Chart {
	c := Chart{Title: title, Subtitle: subtitle, Legend: series, Groups: make([]BarGroup, len(labels))}
	for i, label := range labels {
		c.Groups[i].Label = label
	}

	for _, s := range series {
		format := s.Format
		if format == nil {
			format = transform.Number
		}
		var max float64
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
		for i := range labels {
			if i >= len(s.Values) {
				break
			}
			v := s.Values[i]
			width := 0.0
			if max > 0 && v > 0 {
				width = v / max * 100
			}
			c.Groups[i].Bars = append(c.Groups[i].Bars, Bar{
				Series:  s.Name,
				Value:   v,
				Display: format(v),
				Width:   width,
				Color:   s.Color,
			})
		}
	}
	return c
}
