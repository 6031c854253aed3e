package calculator

import (
	"fmt"

	"TickerDash/internal/model"
)

// Margins are the latest fiscal year's gross and free-cash-flow margins.
type Margins struct {
	Year  int
	Gross float64
	FCF   float64
}

// CalculateLatestMargins computes (revenue - cost of revenue) / revenue and
// free cash flow / revenue for the most recent fiscal year in the table.
func CalculateLatestMargins(table model.RatioTable) (Margins, error) {
	rows, ok := table.Latest(1)
	if !ok {
		return Margins{}, fmt.Errorf("margins: %w", ErrInsufficientHistory)
	}
	row := rows[0]
	gross, err := GrossMargin(row)
	if err != nil {
		return Margins{}, fmt.Errorf("gross margin %d: %w", row.Year, err)
	}
	fcf, err := FCFMargin(row)
	if err != nil {
		return Margins{}, fmt.Errorf("fcf margin %d: %w", row.Year, err)
	}
	return Margins{Year: row.Year, Gross: gross, FCF: fcf}, nil
}

// GrossMargin returns (revenue - cost of revenue) / revenue.
func GrossMargin(row model.RatioRow) (float64, error) {
	if row.TotalRevenue == 0 {
		return 0, ErrZeroRevenue
	}
	return (row.TotalRevenue - row.CostOfRevenue) / row.TotalRevenue, nil
}

// FCFMargin returns free cash flow / revenue.
func FCFMargin(row model.RatioRow) (float64, error) {
	if row.TotalRevenue == 0 {
		return 0, ErrZeroRevenue
	}
	return row.FreeCashFlow / row.TotalRevenue, nil
}
