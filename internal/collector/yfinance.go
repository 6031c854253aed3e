package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wnjoon/go-yfinance/pkg/client"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"TickerDash/internal/model"
)

// YFinanceFetcher implements Fetcher with go-yfinance, which keeps Yahoo's
// cookie and crumb session and a browser TLS fingerprint for every call.
type YFinanceFetcher struct {
	Timeout   time.Duration
	Quotes    QuoteSource
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYFinanceFetcher creates a go-yfinance backed fetcher.
func NewYFinanceFetcher(timeout time.Duration) *YFinanceFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YFinanceFetcher{
		Timeout: timeout,
		Quotes:  YFinanceQuotes{Timeout: timeout},
		SymbolMap: map[string]string{
			"GOOGLE": "GOOGL",
		},
	}
}

func (f *YFinanceFetcher) Name() string { return "yahoo" }

// annualFinancials holds the three annual statements of one ticker.
type annualFinancials struct {
	Income   *models.FinancialStatement
	Balance  *models.FinancialStatement
	CashFlow *models.FinancialStatement
}

// FetchStatements fetches the annual income statement, balance sheet and
// cash flow statement.
func (f *YFinanceFetcher) FetchStatements(ctx context.Context, symbol string) (*model.Statements, error) {
	fin, err := withTicker(ctx, mapSymbol(f.SymbolMap, symbol), f.Timeout, func(t *ticker.Ticker) (annualFinancials, error) {
		var a annualFinancials
		var err error
		if a.Income, err = t.IncomeStatement(string(models.FrequencyAnnual)); err != nil {
			return a, fmt.Errorf("income statement: %w", err)
		}
		if a.Balance, err = t.BalanceSheet(string(models.FrequencyAnnual)); err != nil {
			return a, fmt.Errorf("balance sheet: %w", err)
		}
		if a.CashFlow, err = t.CashFlow(string(models.FrequencyAnnual)); err != nil {
			return a, fmt.Errorf("cash flow: %w", err)
		}
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance statements %s: %w", symbol, err)
	}

	stmts, err := statementsFromFinancials(fin)
	if err != nil {
		return nil, err
	}
	stmts.Symbol = symbol
	stmts.FetchedAt = time.Now()
	return stmts, nil
}

// statementsFromFinancials reshapes go-yfinance statements into frames with
// line items as rows and period-end dates as columns.
func statementsFromFinancials(fin annualFinancials) (*model.Statements, error) {
	values := make(map[string]map[string]float64)
	for _, fs := range []*models.FinancialStatement{fin.Income, fin.Balance, fin.CashFlow} {
		addFinancialValues(values, fs)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("yfinance statements: no data returned")
	}
	return &model.Statements{
		Income:   buildStatement(model.IncomeStatement, values),
		Balance:  buildStatement(model.BalanceSheet, values),
		CashFlow: buildStatement(model.CashFlow, values),
	}, nil
}

// addFinancialValues adds every reported point of fs to values[item][date].
// go-yfinance leaves both value and text empty when Yahoo reported nothing.
func addFinancialValues(values map[string]map[string]float64, fs *models.FinancialStatement) {
	if fs == nil {
		return
	}
	for item, points := range fs.Data {
		for _, p := range points {
			if p.Value == 0 && p.Formatted == "" {
				continue
			}
			if values[item] == nil {
				values[item] = make(map[string]float64)
			}
			values[item][p.AsOfDate.Format(model.PeriodLayout)] = p.Value
		}
	}
}

// FetchDailyBars fetches daily bars for the literal window [start, end).
func (f *YFinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	history, err := withTicker(ctx, mapSymbol(f.SymbolMap, symbol), f.Timeout, func(t *ticker.Ticker) ([]models.Bar, error) {
		return t.HistoryRange(start, end, "1d")
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance history %s: %w", symbol, err)
	}

	bars := barsFromHistory(history, start, end)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yfinance: no bars for %s in [%s, %s)",
			symbol, start.Format(model.PeriodLayout), end.Format(model.PeriodLayout))
	}
	return bars, nil
}

// barsFromHistory keeps the bars inside [start, end), drops empty bars and
// sorts the rest by time.
func barsFromHistory(history []models.Bar, start, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, 0, len(history))
	for _, b := range history {
		if b.Date.Before(start) || !b.Date.Before(end) {
			continue
		}
		if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   b.Date.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

// FetchQuoteMetrics delegates to the configured quote source.
func (f *YFinanceFetcher) FetchQuoteMetrics(ctx context.Context, symbol string) (*model.QuoteMetrics, error) {
	if f.Quotes == nil {
		return nil, fmt.Errorf("yfinance: no quote source configured")
	}
	return f.Quotes.Quote(ctx, mapSymbol(f.SymbolMap, symbol))
}

// withTicker runs fn against a fresh ticker and returns early when ctx ends.
// go-yfinance calls do not take a context, so fn runs on its own goroutine and
// owns the ticker until it returns.
func withTicker[T any](ctx context.Context, symbol string, timeout time.Duration, fn func(*ticker.Ticker) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		t, release, err := openTicker(symbol, timeout)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer release()
		v, err := fn(t)
		done <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.v, r.err
	}
}

func openTicker(symbol string, timeout time.Duration) (*ticker.Ticker, func(), error) {
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = 30
	}
	c, err := client.New(client.WithTimeout(secs))
	if err != nil {
		return nil, nil, fmt.Errorf("yfinance client: %w", err)
	}
	t, err := ticker.New(symbol, ticker.WithClient(c))
	if err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("yfinance ticker %s: %w", symbol, err)
	}
	return t, func() {
		t.Close()
		c.Close()
	}, nil
}
