package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/tidwall/gjson"

	"TickerDash/internal/frame"
	"TickerDash/internal/model"
)

// statementTypes lists the annual line items requested for each statement.
var statementTypes = map[model.StatementKind][]string{
	model.IncomeStatement: {
		"TotalRevenue", "CostOfRevenue", "GrossProfit", "OperatingIncome", "NetIncome", "DilutedEPS",
	},
	model.BalanceSheet: {
		"TotalAssets", "TotalLiabilitiesNetMinorityInterest", "StockholdersEquity",
		"CashAndCashEquivalents", "TotalDebt",
	},
	model.CashFlow: {
		"OperatingCashFlow", "CapitalExpenditure", "FreeCashFlow",
	},
}

var statementOrder = []model.StatementKind{model.IncomeStatement, model.BalanceSheet, model.CashFlow}

// timeseriesStart is the earliest period requested; Yahoo only keeps a few
// years of annual fundamentals anyway.
var timeseriesStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// FetchStatements fetches the annual statements from the fundamentals
// time-series endpoint in a single request.
func (f *YahooFetcher) FetchStatements(ctx context.Context, symbol string) (*model.Statements, error) {
	var types []string
	for _, kind := range statementOrder {
		for _, item := range statementTypes[kind] {
			types = append(types, "annual"+item)
		}
	}

	now := time.Now()
	u := fmt.Sprintf("%s/%s?symbol=%s&type=%s&period1=%d&period2=%d",
		strings.TrimRight(f.TimeseriesURL, "/"),
		url.PathEscape(f.yahooSymbol(symbol)),
		url.QueryEscape(f.yahooSymbol(symbol)),
		url.QueryEscape(strings.Join(types, ",")),
		timeseriesStart.Unix(), now.Unix())

	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	stmts, err := parseTimeseries(body)
	if err != nil {
		return nil, err
	}
	stmts.Symbol = symbol
	stmts.FetchedAt = now
	return stmts, nil
}

// parseTimeseries splits a time-series payload into the three statements.
// Null entries and entries without a reported value are skipped.
func parseTimeseries(body []byte) (*model.Statements, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo timeseries: invalid json")
	}
	if e := gjson.GetBytes(body, "timeseries.error"); e.Exists() && e.Type != gjson.Null {
		return nil, fmt.Errorf("yahoo timeseries error: %s", e.Get("description").String())
	}

	// values[type][asOfDate]
	values := make(map[string]map[string]float64)
	for _, r := range gjson.GetBytes(body, "timeseries.result").Array() {
		typ := r.Get("meta.type.0").String()
		if !strings.HasPrefix(typ, "annual") {
			continue
		}
		item := strings.TrimPrefix(typ, "annual")
		for _, e := range r.Get(typ).Array() {
			if e.Type == gjson.Null {
				continue
			}
			raw := e.Get("reportedValue.raw")
			date := e.Get("asOfDate").String()
			if !raw.Exists() || date == "" {
				continue
			}
			if values[item] == nil {
				values[item] = make(map[string]float64)
			}
			values[item][date] = raw.Float()
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("yahoo timeseries: no data returned")
	}

	stmts := &model.Statements{
		Income:   buildStatement(model.IncomeStatement, values),
		Balance:  buildStatement(model.BalanceSheet, values),
		CashFlow: buildStatement(model.CashFlow, values),
	}
	return stmts, nil
}

func buildStatement(kind model.StatementKind, values map[string]map[string]float64) model.Statement {
	var items []string
	dateSet := make(map[string]bool)
	for _, item := range statementTypes[kind] {
		byDate, ok := values[item]
		if !ok {
			continue
		}
		items = append(items, item)
		for d := range byDate {
			dateSet[d] = true
		}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = LineItemLabel(item)
	}
	fr := frame.New(labels, dates)
	for i, item := range items {
		for d, v := range values[item] {
			_ = fr.Set(labels[i], d, v)
		}
	}
	return model.Statement{Kind: kind, Frame: fr}
}

// LineItemLabel turns a CamelCase time-series type into the spaced label used
// by the statements, e.g. "CostOfRevenue" -> "Cost Of Revenue".
func LineItemLabel(item string) string {
	runes := []rune(item)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
