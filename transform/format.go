package transform

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number renders v with thousands separators and at most three fraction
// digits, trailing zeros dropped: 15234 -> "15,234", 91654.21 -> "91,654.21".
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	s := printer.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Thousands rounds v and groups digits: 4837.4 -> "4,837".
func Thousands(v float64) string {
	return Number(math.Round(v))
}

// SignedInt prefixes positive values with "+"; negatives keep their sign.
func SignedInt(v float64) string {
	if v > 0 {
		return "+" + Number(v)
	}
	return Number(v)
}

// Money renders a dollar amount the way the dashboard cards do.
func Money(v float64) string {
	return "$" + Number(v)
}

// Plain renders v with the shortest exact representation, no grouping.
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed renders v with exactly n decimals.
func Fixed(v float64, n int) string {
	return strconv.FormatFloat(roundTo(v, n), 'f', n, 64)
}

func roundTo(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	r := math.Round(v*p) / p
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}
