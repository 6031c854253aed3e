// Package charts renders the dashboard's Plotly figures from a snapshot.
package charts

import (
	"math"
	"strconv"

	"TickerDash/internal/calculator"
	"TickerDash/internal/model"
)

// Figure ids, also used as the DOM ids of the chart placeholders.
const (
	RevenueFCFID  = "revenue_fcf"
	CandleStickID = "candle_stick"
)

const (
	dateLayout = "2006-01-02"
	billion    = 1e9
)

// Render builds the two dashboard figures, in fixed order: the grouped
// revenue/free-cash-flow bar chart and the daily candlestick chart. An SMA
// overlay is added to the candlestick when smaPeriod > 0 and there are enough
// bars. Render reads the snapshot only.
func Render(snap *model.Snapshot, smaPeriod int) [2]Figure {
	return [2]Figure{
		RevenueFCF(snap.Ratios),
		CandleStick(snap.Prices, smaPeriod),
	}
}

// RevenueFCF plots revenue and free cash flow per fiscal year, in billions.
func RevenueFCF(ratios model.RatioTable) Figure {
	sorted := ratios.Sorted()
	years := sorted.Years()
	revenue := make([]float64, len(sorted))
	fcf := make([]float64, len(sorted))
	for i, r := range sorted {
		revenue[i] = r.TotalRevenue / billion
		fcf[i] = r.FreeCashFlow / billion
	}

	zero := 0.0
	return Figure{
		ID: RevenueFCFID,
		Data: []Trace{
			{Type: "bar", Name: "Revenue", X: years, Y: revenue, Base: &zero, Marker: &Marker{Color: "lightslategrey"}},
			{Type: "bar", Name: "Free Cash Flow", X: years, Y: fcf, Marker: &Marker{Color: "crimson"}},
		},
		Layout: Layout{
			Title:   Title{Text: "Values in Billions of Dollars"},
			Margin:  Margin{T: 26, B: 0, L: 40, R: 0},
			Height:  300,
			BarMode: "group",
			Legend: &Legend{
				X:           0.8,
				Y:           1.12,
				XAnchor:     "center",
				YAnchor:     "top",
				Orientation: "h",
			},
		},
		Config: NewConfig("revenue_fcf"),
	}
}

// CandleStick plots the daily OHLC series.
func CandleStick(prices model.PriceSeries, smaPeriod int) Figure {
	n := len(prices.Bars)
	dates := make([]string, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i, b := range prices.Bars {
		dates[i] = b.Time.Format(dateLayout)
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
	}

	data := []Trace{
		{Type: "candlestick", Name: prices.Symbol, X: dates, Open: open, High: high, Low: low, Close: closes},
	}
	if sma := smaTrace(dates, prices.Bars, smaPeriod); sma != nil {
		data = append(data, *sma)
	}

	return Figure{
		ID:   CandleStickID,
		Data: data,
		Layout: Layout{
			Title:  Title{Text: "Values in Dollars"},
			Margin: Margin{T: 26, B: 0, L: 0, R: 40},
			Height: 300,
		},
		Config: NewConfig("historical_data"),
	}
}

// smaTrace returns the moving-average line, without its NaN warm-up points.
func smaTrace(dates []string, bars []model.OHLCV, period int) *Trace {
	if period <= 0 {
		return nil
	}
	series, err := calculator.CalculateCloseSMA(bars, period)
	if err != nil {
		return nil
	}
	var x []string
	var y []float64
	for i, v := range series {
		if math.IsNaN(v) {
			continue
		}
		x = append(x, dates[i])
		y = append(y, v)
	}
	return &Trace{
		Type: "scatter",
		Mode: "lines",
		Name: smaName(period),
		X:    x,
		Y:    y,
		Line: &Line{Color: "#db0000", Width: 1},
	}
}

func smaName(period int) string {
	return "SMA " + strconv.Itoa(period)
}
