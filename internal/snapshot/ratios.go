package snapshot

import (
	"fmt"
	"time"

	"TickerDash/internal/frame"
	"TickerDash/internal/model"
)

// DeriveRatioTable transposes the income and cash-flow statements so fiscal
// periods become rows, inner-joins them on period, keeps total revenue, free
// cash flow and cost of revenue, and drops rows missing any of the three.
func DeriveRatioTable(income, cashFlow model.Statement) (model.RatioTable, error) {
	if income.Frame == nil || cashFlow.Frame == nil {
		return nil, fmt.Errorf("ratio table: statement frame is nil")
	}

	incomeByPeriod, err := income.Frame.Transpose().Select(model.ItemTotalRevenue, model.ItemCostOfRevenue)
	if err != nil {
		return nil, fmt.Errorf("income statement: %w", err)
	}
	cashByPeriod, err := cashFlow.Frame.Transpose().Select(model.ItemFreeCashFlow)
	if err != nil {
		return nil, fmt.Errorf("cash flow statement: %w", err)
	}

	joined, err := incomeByPeriod.Join(cashByPeriod)
	if err != nil {
		return nil, fmt.Errorf("join statements: %w", err)
	}
	selected, err := joined.Select(model.ItemTotalRevenue, model.ItemFreeCashFlow, model.ItemCostOfRevenue)
	if err != nil {
		return nil, fmt.Errorf("select ratio columns: %w", err)
	}

	return toRatioTable(selected.DropNA())
}

func toRatioTable(f *frame.Frame) (model.RatioTable, error) {
	table := make(model.RatioTable, 0, f.Len())
	for _, label := range f.Index() {
		period, err := time.Parse(model.PeriodLayout, label)
		if err != nil {
			return nil, fmt.Errorf("fiscal period %q: %w", label, err)
		}
		revenue, _ := f.At(label, model.ItemTotalRevenue)
		fcf, _ := f.At(label, model.ItemFreeCashFlow)
		cost, _ := f.At(label, model.ItemCostOfRevenue)
		table = append(table, model.RatioRow{
			Period:        period,
			Year:          period.Year(),
			TotalRevenue:  revenue,
			FreeCashFlow:  fcf,
			CostOfRevenue: cost,
		})
	}
	return table.Sorted(), nil
}
