// Package dashboard renders the single-ticker dashboard page from a snapshot.
package dashboard

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"TickerDash/internal/calculator"
	"TickerDash/internal/charts"
	"TickerDash/internal/model"
)

//go:embed assets/dashboard.html.tmpl
var pageTemplate string

var tmpl = template.Must(template.New("dashboard").Parse(pageTemplate))

// KPI is one key-fact card.
type KPI struct {
	Icon  string
	Value string
	Label string
}

type ratingView struct {
	Label string
	Score float64
	Stars []string
}

type pageData struct {
	Symbol        string
	SnapshotID    string
	Content       *Content
	KPIs          []KPI
	PriceMetrics  []Metric
	Quality       []ratingView
	NetCash       string
	RevenueFCFID  string
	CandleStickID string
	Figures       [2]charts.Figure
}

// Options tunes page construction.
type Options struct {
	GrowthYears int
	SMAPeriod   int
}

// Page is the rendered dashboard. It is built once from an immutable snapshot
// and then served as is.
type Page struct {
	html    []byte
	figures [2]charts.Figure
}

// New renders the dashboard. The chart render function runs exactly once here.
func New(snap *model.Snapshot, content *Content, opts Options) (*Page, error) {
	if snap == nil {
		return nil, fmt.Errorf("dashboard: nil snapshot")
	}
	if content == nil {
		return nil, fmt.Errorf("dashboard: nil content")
	}

	figures := charts.Render(snap, opts.SMAPeriod)
	data := pageData{
		Symbol:        snap.Symbol,
		SnapshotID:    snap.ID,
		Content:       content,
		KPIs:          BuildKPIs(snap.KPIs, opts.GrowthYears),
		PriceMetrics:  priceMetrics(snap.Prices.Bars),
		Quality:       ratings(content.Quality),
		RevenueFCFID:  charts.RevenueFCFID,
		CandleStickID: charts.CandleStickID,
		Figures:       figures,
	}
	if snap.KPIs.NetCash != nil {
		data.NetCash = FormatBillions(*snap.KPIs.NetCash)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	return &Page{html: buf.Bytes(), figures: figures}, nil
}

// BuildKPIs formats the four key-fact cards in display order.
func BuildKPIs(k model.KPIs, growthYears int) []KPI {
	if growthYears <= 0 {
		growthYears = 4
	}
	return []KPI{
		{Icon: "fa-line-chart", Value: FormatPercent(k.CAGR), Label: strconv.Itoa(growthYears) + " year stock CAGR"},
		{Icon: "fa-pie-chart", Value: FormatPercent(k.GrossMargin), Label: fmt.Sprintf("LTM Gross margin %d", k.MarginYear)},
		{Icon: "fa-money", Value: FormatPercent(k.FCFMargin), Label: fmt.Sprintf("LTM Free Cash Flow %d", k.MarginYear)},
		{Icon: "fa-usd", Value: FormatDollars(k.FairValue), Label: "Est. Fair value"},
	}
}

// priceMetrics summarises the last year of bars; it is empty without bars.
func priceMetrics(bars []model.OHLCV) []Metric {
	r, err := calculator.CalculatePriceRange(bars, calculator.TradingDaysPerYear)
	if err != nil {
		return nil
	}
	pos, err := calculator.Calculate52WeekPosition(r.Last, r.High, r.Low)
	if err != nil {
		return nil
	}
	return []Metric{
		{Label: "52-week range", Value: FormatDollars(r.Low) + " - " + FormatDollars(r.High)},
		{Label: "52-week position", Value: FormatPercent(pos)},
		{Label: "52-week average close", Value: FormatDollars(r.MeanClose)},
	}
}

// ratings expands scores into five star icons, rounding to the nearest half.
func ratings(in []Rating) []ratingView {
	out := make([]ratingView, 0, len(in))
	for _, r := range in {
		halves := int(math.Round(r.Score * 2))
		stars := make([]string, 0, 5)
		for i := 0; i < 5; i++ {
			switch {
			case halves >= 2:
				stars = append(stars, "fa-star")
				halves -= 2
			case halves == 1:
				stars = append(stars, "fa-star-half-o")
				halves = 0
			default:
				stars = append(stars, "fa-star-o")
			}
		}
		out = append(out, ratingView{Label: r.Label, Score: r.Score, Stars: stars})
	}
	return out
}

// Figures returns the figures embedded in the page.
func (p *Page) Figures() [2]charts.Figure { return p.figures }

// HTML returns the rendered document.
func (p *Page) HTML() []byte { return p.html }

func (p *Page) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(p.html)
}
