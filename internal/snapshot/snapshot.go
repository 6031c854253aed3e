// Package snapshot builds the immutable single-ticker snapshot served by the
// dashboard.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"TickerDash/internal/calculator"
	"TickerDash/internal/collector"
	"TickerDash/internal/model"
)

// Options controls one build.
type Options struct {
	Start       time.Time
	End         time.Time
	GrowthYears int
	Now         func() time.Time
}

// Build fetches everything for the collector's ticker and derives the ratio
// table and KPIs. It runs once per process; any failure aborts the build.
func Build(ctx context.Context, col *collector.Collector, opts Options, log zerolog.Logger) (*model.Snapshot, error) {
	log = log.With().Str("component", "snapshot").Str("ticker", col.Symbol).Logger()
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.GrowthYears <= 0 {
		opts.GrowthYears = 4
	}

	raw, err := col.Collect(ctx, opts.Start, opts.End)
	if err != nil {
		return nil, err
	}
	if raw.Statements == nil || raw.Quote == nil {
		return nil, fmt.Errorf("provider %s returned no data", col.Fetcher.Name())
	}

	ratios, err := DeriveRatioTable(raw.Statements.Income, raw.Statements.CashFlow)
	if err != nil {
		return nil, fmt.Errorf("derive ratio table: %w", err)
	}
	log.Debug().Ints("years", ratios.Years()).Msg("ratio table derived")

	kpis, err := ComputeKPIs(ratios, *raw.Quote, raw.Statements.Balance, opts.GrowthYears)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		ID:         uuid.NewString(),
		Symbol:     col.Symbol,
		BuiltAt:    opts.Now(),
		Ratios:     ratios,
		KPIs:       kpis,
		Quote:      *raw.Quote,
		Prices:     raw.Prices,
		Statements: *raw.Statements,
	}
	log.Info().
		Str("snapshot_id", snap.ID).
		Int("bars", len(snap.Prices.Bars)).
		Float64("cagr", kpis.CAGR).
		Float64("fair_value", kpis.FairValue).
		Msg("snapshot built")
	return snap, nil
}

// ComputeKPIs derives the dashboard figures from the ratio table, the quote
// and the balance sheet.
func ComputeKPIs(ratios model.RatioTable, quote model.QuoteMetrics, balance model.Statement, growthYears int) (model.KPIs, error) {
	growth, err := calculator.CalculateRevenueCAGR(ratios, growthYears)
	if err != nil {
		return model.KPIs{}, err
	}
	margins, err := calculator.CalculateLatestMargins(ratios)
	if err != nil {
		return model.KPIs{}, err
	}
	fairValue, err := calculator.CalculateFairValue(quote)
	if err != nil {
		return model.KPIs{}, fmt.Errorf("fair value: %w", err)
	}

	kpis := model.KPIs{
		CAGR:        growth.Rate,
		CAGRFrom:    growth.FromYear,
		CAGRTo:      growth.ToYear,
		GrossMargin: margins.Gross,
		FCFMargin:   margins.FCF,
		MarginYear:  margins.Year,
		FairValue:   fairValue,
	}
	if netCash, ok := calculator.CalculateNetCash(balance); ok {
		kpis.NetCash = &netCash
	}
	return kpis, nil
}
