package calculator

import (
	"fmt"
	"sort"

	"TickerDash/internal/model"
)

// CalculateFairValue returns forward EPS × forward P/E. Both fields are required.
func CalculateFairValue(q model.QuoteMetrics) (float64, error) {
	if q.ForwardEPS == nil {
		return 0, fmt.Errorf("forward EPS: %w", ErrMissingQuoteField)
	}
	if q.ForwardPE == nil {
		return 0, fmt.Errorf("forward P/E: %w", ErrMissingQuoteField)
	}
	return *q.ForwardEPS * *q.ForwardPE, nil
}

// CalculateNetCash returns cash minus total debt for the most recent period of
// the balance sheet that reports both. ok is false when no period does.
func CalculateNetCash(balance model.Statement) (netCash float64, ok bool) {
	if balance.Frame == nil {
		return 0, false
	}
	periods := balance.Frame.Columns()
	sort.Strings(periods)
	for i := len(periods) - 1; i >= 0; i-- {
		cash, hasCash := balance.Frame.At(model.ItemCash, periods[i])
		debt, hasDebt := balance.Frame.At(model.ItemTotalDebt, periods[i])
		if hasCash && hasDebt {
			return cash - debt, true
		}
	}
	return 0, false
}
