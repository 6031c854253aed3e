package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"TickerDash/internal/model"
)

// TradingDaysPerYear is the lookback used for 52-week figures.
const TradingDaysPerYear = 252

// PriceRange summarises the most recent bars of a series.
type PriceRange struct {
	High      float64
	Low       float64
	MeanClose float64
	Last      float64
}

// CalculatePriceRange scans the most recent `lookback` bars and returns their
// high, low, mean close and last close.
func CalculatePriceRange(bars []model.OHLCV, lookback int) (PriceRange, error) {
	if len(bars) == 0 {
		return PriceRange{}, errors.New("no bars provided")
	}
	if lookback <= 0 {
		return PriceRange{}, errors.New("lookback must be positive")
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	window := bars[start:]

	r := PriceRange{High: math.Inf(-1), Low: math.Inf(1)}
	for _, b := range window {
		if b.High > r.High {
			r.High = b.High
		}
		if b.Low < r.Low {
			r.Low = b.Low
		}
	}
	closes := extractCloses(window)
	r.MeanClose = stat.Mean(closes, nil)
	r.Last = closes[len(closes)-1]
	return r, nil
}

// Calculate52WeekPosition returns where the price sits within the range (0.0~1.0).
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Max(0, math.Min(1, pos)), nil
}
