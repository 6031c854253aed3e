package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"TickerDash/internal/frame"
	"TickerDash/internal/model"
)

// MockYear is one fiscal year of synthetic statement data.
type MockYear struct {
	Year          int
	TotalRevenue  float64
	CostOfRevenue float64
	FreeCashFlow  float64
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Years     []MockYear
	Cash      float64
	TotalDebt float64
	Price     float64
	Quote     *model.QuoteMetrics
	DailyData []model.OHLCV

	StatementsErr error
	BarsErr       error
	QuoteErr      error
}

// NewDemoFetcher returns a mock with plausible values for offline runs.
func NewDemoFetcher() *MockFetcher {
	eps, pe, price := 8.9, 21.5, 165.0
	return &MockFetcher{
		Years: []MockYear{
			{Year: 2020, TotalRevenue: 182.5e9, CostOfRevenue: 84.7e9, FreeCashFlow: 42.8e9},
			{Year: 2021, TotalRevenue: 257.6e9, CostOfRevenue: 110.9e9, FreeCashFlow: 67.0e9},
			{Year: 2022, TotalRevenue: 282.8e9, CostOfRevenue: 126.2e9, FreeCashFlow: 60.0e9},
			{Year: 2023, TotalRevenue: 307.4e9, CostOfRevenue: 133.3e9, FreeCashFlow: 69.5e9},
		},
		Cash:      24.0e9,
		TotalDebt: 28.5e9,
		Price:     price,
		Quote:     &model.QuoteMetrics{Name: "Alphabet Inc.", CurrentPrice: &price, ForwardEPS: &eps, ForwardPE: &pe},
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStatements(_ context.Context, symbol string) (*model.Statements, error) {
	if m.StatementsErr != nil {
		return nil, m.StatementsErr
	}
	return MockStatements(symbol, m.Years, m.Cash, m.TotalDebt), nil
}

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, start, end time.Time) ([]model.OHLCV, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, start, end), nil
}

func (m *MockFetcher) FetchQuoteMetrics(_ context.Context, symbol string) (*model.QuoteMetrics, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	if m.Quote == nil {
		return &model.QuoteMetrics{Symbol: symbol}, nil
	}
	q := *m.Quote
	q.Symbol = symbol
	return &q, nil
}

// MockStatements builds statements in provider orientation from synthetic
// years. Fiscal periods end on December 31st. Zero cash and debt are omitted.
func MockStatements(symbol string, years []MockYear, cash, debt float64) *model.Statements {
	periods := make([]string, len(years))
	for i, y := range years {
		periods[i] = fmt.Sprintf("%d-12-31", y.Year)
	}

	income := frame.New([]string{model.ItemTotalRevenue, model.ItemCostOfRevenue}, periods)
	cashFlow := frame.New([]string{model.ItemFreeCashFlow}, periods)
	for i, y := range years {
		setPresent(income, model.ItemTotalRevenue, periods[i], y.TotalRevenue)
		setPresent(income, model.ItemCostOfRevenue, periods[i], y.CostOfRevenue)
		setPresent(cashFlow, model.ItemFreeCashFlow, periods[i], y.FreeCashFlow)
	}

	var balancePeriods []string
	if len(periods) > 0 {
		balancePeriods = periods[len(periods)-1:]
	}
	balance := frame.New([]string{model.ItemCash, model.ItemTotalDebt}, balancePeriods)
	for _, p := range balancePeriods {
		if cash != 0 {
			setPresent(balance, model.ItemCash, p, cash)
		}
		if debt != 0 {
			setPresent(balance, model.ItemTotalDebt, p, debt)
		}
	}

	return &model.Statements{
		Symbol:    symbol,
		Income:    model.Statement{Kind: model.IncomeStatement, Frame: income},
		Balance:   model.Statement{Kind: model.BalanceSheet, Frame: balance},
		CashFlow:  model.Statement{Kind: model.CashFlow, Frame: cashFlow},
		FetchedAt: time.Now(),
	}
}

// setPresent stores v unless it is NaN, which marks a missing value.
func setPresent(f *frame.Frame, row, col string, v float64) {
	if math.IsNaN(v) {
		return
	}
	_ = f.Set(row, col, v)
}

// generateMockBars produces one bar per weekday in [start, end).
func generateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	var bars []model.OHLCV
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/20))
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}
