package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"TickerDash/internal/model"
)

// QuoteSource provides live quote metadata for a ticker.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (*model.QuoteMetrics, error)
}

// YFinanceQuotes reads quote metadata through go-yfinance.
type YFinanceQuotes struct {
	Timeout time.Duration
}

func (q YFinanceQuotes) Quote(ctx context.Context, symbol string) (*model.QuoteMetrics, error) {
	info, err := withTicker(ctx, symbol, q.Timeout, func(t *ticker.Ticker) (*models.Info, error) {
		return t.Info()
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance info %s: %w", symbol, err)
	}
	return quoteFromInfo(symbol, info), nil
}

// quoteFromInfo maps the info fields the dashboard needs. Yahoo reports
// unknown numeric fields as zero, so zero is treated as absent.
func quoteFromInfo(symbol string, info *models.Info) *model.QuoteMetrics {
	q := &model.QuoteMetrics{Symbol: symbol}
	if info == nil {
		return q
	}
	q.Name = info.LongName
	if q.Name == "" {
		q.Name = info.ShortName
	}
	q.CurrentPrice = reported(info.CurrentPrice)
	q.ForwardEPS = reported(info.ForwardEps)
	q.ForwardPE = reported(info.ForwardPE)
	return q
}

func reported(v float64) *float64 {
	if v == 0 || math.IsNaN(v) {
		return nil
	}
	return &v
}
