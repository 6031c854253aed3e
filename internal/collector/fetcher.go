package collector

import (
	"context"
	"time"

	"TickerDash/internal/model"
)

// Fetcher defines the interface for fetching one ticker's market data.
type Fetcher interface {
	// FetchStatements returns the annual income statement, balance sheet and
	// cash-flow statement.
	FetchStatements(ctx context.Context, symbol string) (*model.Statements, error)
	// FetchDailyBars returns daily bars in [start, end), oldest first.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	// FetchQuoteMetrics returns live quote metadata.
	FetchQuoteMetrics(ctx context.Context, symbol string) (*model.QuoteMetrics, error)
	Name() string
}
