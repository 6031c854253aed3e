package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"TickerDash/internal/model"
	"TickerDash/internal/recorder"
)

// Result holds everything fetched for one ticker.
type Result struct {
	Statements *model.Statements
	Prices     model.PriceSeries
	Quote      *model.QuoteMetrics
}

// Collector orchestrates the provider calls for one ticker and records each
// call in the fetch audit log.
type Collector struct {
	Fetcher  Fetcher
	Recorder recorder.Recorder
	Symbol   string
	log      zerolog.Logger
}

// NewCollector creates a new Collector. A nil recorder disables auditing.
func NewCollector(fetcher Fetcher, rec recorder.Recorder, symbol string, log zerolog.Logger) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Fetcher:  fetcher,
		Recorder: rec,
		Symbol:   symbol,
		log:      log.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Collect fetches statements, daily bars for [start, end) and quote metadata,
// in that order. The first failure aborts the collection.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) (*Result, error) {
	res := &Result{}

	err := c.track(recorder.KindStatements, func() (int, error) {
		s, err := c.Fetcher.FetchStatements(ctx, c.Symbol)
		if err != nil {
			return 0, err
		}
		res.Statements = s
		return statementRows(s), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch statements: %w", err)
	}

	err = c.track(recorder.KindDailyBars, func() (int, error) {
		bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, start, end)
		if err != nil {
			return 0, err
		}
		res.Prices = model.PriceSeries{Symbol: c.Symbol, Start: start, End: end, Bars: bars}
		return len(bars), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	err = c.track(recorder.KindQuote, func() (int, error) {
		q, err := c.Fetcher.FetchQuoteMetrics(ctx, c.Symbol)
		if err != nil {
			return 0, err
		}
		res.Quote = q
		return 1, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	return res, nil
}

func (c *Collector) track(kind string, fn func() (int, error)) error {
	started := time.Now()
	rows, err := fn()
	evt := &recorder.FetchEvent{
		Symbol:   c.Symbol,
		Kind:     kind,
		Source:   c.Fetcher.Name(),
		Rows:     rows,
		Duration: time.Since(started),
		Err:      err,
	}
	if recErr := c.Recorder.RecordFetch(evt); recErr != nil {
		c.log.Warn().Err(recErr).Str("kind", kind).Msg("record fetch failed")
	}

	if err != nil {
		c.log.Error().Err(err).Str("kind", kind).Dur("took", evt.Duration).Msg("fetch failed")
		return err
	}
	c.log.Info().Str("kind", kind).Int("rows", rows).Dur("took", evt.Duration).Msg("fetched")
	return nil
}

func statementRows(s *model.Statements) int {
	n := 0
	for _, st := range []model.Statement{s.Income, s.Balance, s.CashFlow} {
		if st.Frame != nil {
			n += st.Frame.Len()
		}
	}
	return n
}
