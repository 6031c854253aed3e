package model

import (
	"sort"
	"time"
)

// RatioRow is one fiscal year of the derived ratio table. All fields are populated.
type RatioRow struct {
	Period        time.Time `json:"period"`
	Year          int       `json:"year"`
	TotalRevenue  float64   `json:"total_revenue"`
	FreeCashFlow  float64   `json:"free_cash_flow"`
	CostOfRevenue float64   `json:"cost_of_revenue"`
}

// RatioTable is the derived per-fiscal-year table, ordered by period.
type RatioTable []RatioRow

// Sorted returns a copy ordered by period end.
func (t RatioTable) Sorted() RatioTable {
	out := append(RatioTable(nil), t...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// Years returns the fiscal year labels in table order.
func (t RatioTable) Years() []int {
	years := make([]int, len(t))
	for i, r := range t {
		years[i] = r.Year
	}
	return years
}

// Latest returns the last n rows by period, or false if the table is shorter.
func (t RatioTable) Latest(n int) (RatioTable, bool) {
	if n <= 0 || len(t) < n {
		return nil, false
	}
	sorted := t.Sorted()
	return sorted[len(sorted)-n:], true
}
