package calculator

import (
	"fmt"
	"math"

	"TickerDash/internal/model"
)

// Growth is a compound annual growth rate and the fiscal years it spans.
type Growth struct {
	Rate     float64
	FromYear int
	ToYear   int
}

// CalculateRevenueCAGR computes (rev[last] / rev[first]) ** (1/periods) - 1 over
// the latest `periods` fiscal years present in the table.
func CalculateRevenueCAGR(table model.RatioTable, periods int) (Growth, error) {
	if periods <= 0 {
		return Growth{}, fmt.Errorf("periods must be positive, got %d", periods)
	}
	rows, ok := table.Latest(periods)
	if !ok {
		return Growth{}, fmt.Errorf("revenue CAGR needs %d fiscal years, have %d: %w",
			periods, len(table), ErrInsufficientHistory)
	}
	first, last := rows[0], rows[len(rows)-1]
	rate, err := CAGR(first.TotalRevenue, last.TotalRevenue, periods)
	if err != nil {
		return Growth{}, fmt.Errorf("revenue CAGR %d-%d: %w", first.Year, last.Year, err)
	}
	return Growth{Rate: rate, FromYear: first.Year, ToYear: last.Year}, nil
}

// CAGR returns (end/start) ** (1/periods) - 1.
func CAGR(start, end float64, periods int) (float64, error) {
	if start <= 0 {
		return 0, ErrNonPositiveBase
	}
	if end < 0 {
		return 0, ErrNegativeEnd
	}
	return math.Pow(end/start, 1/float64(periods)) - 1, nil
}
