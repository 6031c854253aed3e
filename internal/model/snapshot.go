package model

import "time"

// KPIs are the scalar figures shown on the dashboard.
type KPIs struct {
	CAGR        float64 `json:"cagr"`
	CAGRFrom    int     `json:"cagr_from_year"`
	CAGRTo      int     `json:"cagr_to_year"`
	GrossMargin float64 `json:"gross_margin"`
	FCFMargin   float64 `json:"fcf_margin"`
	MarginYear  int     `json:"margin_year"`
	FairValue   float64 `json:"fair_value"`

	// NetCash is cash minus total debt from the latest balance sheet, nil when
	// either line item is missing.
	NetCash *float64 `json:"net_cash,omitempty"`
}

// Snapshot is the immutable result of one build. It is shared read-only.
type Snapshot struct {
	ID         string       `json:"id"`
	Symbol     string       `json:"symbol"`
	BuiltAt    time.Time    `json:"built_at"`
	Ratios     RatioTable   `json:"ratios"`
	KPIs       KPIs         `json:"kpis"`
	Quote      QuoteMetrics `json:"quote"`
	Prices     PriceSeries  `json:"-"`
	Statements Statements   `json:"-"`
}

// LatestFiscalYear returns the most recent fiscal year in the ratio table, or 0.
func (s *Snapshot) LatestFiscalYear() int {
	latest := 0
	for _, r := range s.Ratios {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest
}
