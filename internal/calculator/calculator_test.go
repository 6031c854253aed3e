package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDash/internal/frame"
	"TickerDash/internal/model"
)

func ratioTable(revenue map[int]float64) model.RatioTable {
	var table model.RatioTable
	for year, rev := range revenue {
		table = append(table, model.RatioRow{
			Period:        time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
			Year:          year,
			TotalRevenue:  rev,
			FreeCashFlow:  rev / 5,
			CostOfRevenue: rev / 2,
		})
	}
	return table
}

func ptr(v float64) *float64 { return &v }

func TestCalculateRevenueCAGR_ExactFormula(t *testing.T) {
	table := ratioTable(map[int]float64{2020: 250, 2021: 300, 2022: 320, 2023: 410})

	g, err := CalculateRevenueCAGR(table, 4)
	require.NoError(t, err)

	assert.InDelta(t, math.Pow(410.0/250.0, 0.25)-1, g.Rate, 1e-12)
	assert.Equal(t, 2020, g.FromYear)
	assert.Equal(t, 2023, g.ToYear)
}

func TestCalculateRevenueCAGR_EndToEndScenario(t *testing.T) {
	table := ratioTable(map[int]float64{2020: 100, 2021: 110, 2022: 121, 2023: 133.1})

	g, err := CalculateRevenueCAGR(table, 4)
	require.NoError(t, err)

	assert.InDelta(t, 0.0741, g.Rate, 0.0001)
}

func TestCalculateRevenueCAGR_UsesLatestYearsPresent(t *testing.T) {
	table := ratioTable(map[int]float64{2018: 1, 2019: 80, 2020: 100, 2021: 110, 2022: 121, 2023: 133.1})

	g, err := CalculateRevenueCAGR(table, 4)
	require.NoError(t, err)

	assert.Equal(t, 2020, g.FromYear)
	assert.InDelta(t, math.Pow(1.331, 0.25)-1, g.Rate, 1e-12)
}

func TestCalculateRevenueCAGR_InsufficientHistory(t *testing.T) {
	table := ratioTable(map[int]float64{2022: 121, 2023: 133.1})

	_, err := CalculateRevenueCAGR(table, 4)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, err = CalculateRevenueCAGR(nil, 4)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCalculateRevenueCAGR_NonPositiveBase(t *testing.T) {
	table := ratioTable(map[int]float64{2020: 0, 2021: 1, 2022: 2, 2023: 3})

	_, err := CalculateRevenueCAGR(table, 4)
	assert.ErrorIs(t, err, ErrNonPositiveBase)
}

func TestCalculateRevenueCAGR_NegativeLatestRevenue(t *testing.T) {
	table := ratioTable(map[int]float64{2020: 100, 2021: 50, 2022: 10, 2023: -5})

	g, err := CalculateRevenueCAGR(table, 4)
	require.ErrorIs(t, err, ErrNegativeEnd)
	assert.False(t, math.IsNaN(g.Rate))
}

func TestCAGR_ZeroEndIsTotalLoss(t *testing.T) {
	rate, err := CAGR(100, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, -1.0, rate)
}

func TestCalculateLatestMargins(t *testing.T) {
	table := model.RatioTable{
		{Period: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), Year: 2022, TotalRevenue: 100, CostOfRevenue: 50, FreeCashFlow: 10},
		{Period: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Year: 2023, TotalRevenue: 200, CostOfRevenue: 80, FreeCashFlow: 60},
	}

	m, err := CalculateLatestMargins(table)
	require.NoError(t, err)

	assert.Equal(t, 2023, m.Year)
	assert.InDelta(t, (200.0-80.0)/200.0, m.Gross, 1e-12)
	assert.InDelta(t, 60.0/200.0, m.FCF, 1e-12)
}

func TestCalculateLatestMargins_Errors(t *testing.T) {
	_, err := CalculateLatestMargins(nil)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	table := model.RatioTable{{Year: 2023, TotalRevenue: 0}}
	_, err = CalculateLatestMargins(table)
	assert.ErrorIs(t, err, ErrZeroRevenue)
}

func TestCalculateFairValue(t *testing.T) {
	v, err := CalculateFairValue(model.QuoteMetrics{ForwardEPS: ptr(8.5), ForwardPE: ptr(21.2)})
	require.NoError(t, err)
	assert.Equal(t, 8.5*21.2, v)
}

func TestCalculateFairValue_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		quote model.QuoteMetrics
	}{
		{"no eps", model.QuoteMetrics{ForwardPE: ptr(20)}},
		{"no pe", model.QuoteMetrics{ForwardEPS: ptr(5)}},
		{"neither", model.QuoteMetrics{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := CalculateFairValue(tt.quote)
			assert.ErrorIs(t, err, ErrMissingQuoteField)
			assert.Zero(t, v)
		})
	}
}

func TestCalculateNetCash_LatestCompletePeriod(t *testing.T) {
	f := frame.New(
		[]string{model.ItemCash, model.ItemTotalDebt},
		[]string{"2023-12-31", "2021-12-31", "2022-12-31"},
	)
	require.NoError(t, f.Set(model.ItemCash, "2021-12-31", 10))
	require.NoError(t, f.Set(model.ItemTotalDebt, "2021-12-31", 4))
	require.NoError(t, f.Set(model.ItemCash, "2022-12-31", 30))
	require.NoError(t, f.Set(model.ItemTotalDebt, "2022-12-31", 12))
	require.NoError(t, f.Set(model.ItemCash, "2023-12-31", 50))

	v, ok := CalculateNetCash(model.Statement{Kind: model.BalanceSheet, Frame: f})
	assert.True(t, ok)
	assert.Equal(t, 18.0, v)

	_, ok = CalculateNetCash(model.Statement{Kind: model.BalanceSheet})
	assert.False(t, ok)
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6}

	v, err := CalculateSMA(prices, 3)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-9)

	series, err := SMASeries(prices, 3)
	require.NoError(t, err)
	require.Len(t, series, len(prices))
	assert.True(t, math.IsNaN(series[0]))
	assert.True(t, math.IsNaN(series[1]))
	assert.InDelta(t, 2.0, series[2], 1e-9)

	_, err = CalculateSMA(prices, 10)
	assert.Error(t, err)
	_, err = CalculateSMA(prices, 0)
	assert.Error(t, err)
}

func TestCalculatePriceRange(t *testing.T) {
	bars := []model.OHLCV{
		{High: 100, Low: 1, Close: 50},
		{High: 12, Low: 8, Close: 10},
		{High: 15, Low: 9, Close: 14},
		{High: 13, Low: 7, Close: 12},
	}

	r, err := CalculatePriceRange(bars, 3)
	require.NoError(t, err)
	assert.Equal(t, 15.0, r.High)
	assert.Equal(t, 7.0, r.Low)
	assert.InDelta(t, 12.0, r.MeanClose, 1e-9)
	assert.Equal(t, 12.0, r.Last)

	_, err = CalculatePriceRange(nil, 3)
	assert.Error(t, err)
}

func TestCalculate52WeekPosition(t *testing.T) {
	pos, err := Calculate52WeekPosition(15, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	pos, _ = Calculate52WeekPosition(25, 20, 10)
	assert.Equal(t, 1.0, pos)

	_, err = Calculate52WeekPosition(15, 10, 20)
	assert.Error(t, err)
}
