package calculator

import (
	"errors"
	"math"

	"github.com/markcheno/go-talib"

	"TickerDash/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	series, err := SMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// SMASeries returns the rolling simple moving average aligned with prices.
// The first period-1 entries are NaN.
func SMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for SMA calculation")
	}
	sma := talib.Sma(prices, period)
	for i := 0; i < period-1 && i < len(sma); i++ {
		sma[i] = math.NaN()
	}
	return sma, nil
}

// CalculateCloseSMA returns the SMA series of the bars' close prices.
func CalculateCloseSMA(bars []model.OHLCV, period int) ([]float64, error) {
	return SMASeries(extractCloses(bars), period)
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
