package dashboard

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDash/internal/charts"
	"TickerDash/internal/model"
)

func testSnapshot() *model.Snapshot {
	netCash := -4.5e9
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &model.Snapshot{
		ID:     "snap-1",
		Symbol: "GOOGL",
		Ratios: model.RatioTable{
			{Period: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Year: 2023, TotalRevenue: 133.1, FreeCashFlow: 26.62, CostOfRevenue: 53.24},
		},
		KPIs: model.KPIs{
			CAGR:        0.07357,
			CAGRFrom:    2020,
			CAGRTo:      2023,
			GrossMargin: 0.6,
			FCFMargin:   0.2,
			MarginYear:  2023,
			FairValue:   191.345,
			NetCash:     &netCash,
		},
		Prices: model.PriceSeries{Symbol: "GOOGL", Bars: []model.OHLCV{
			{Time: day, Open: 10, High: 12, Low: 9, Close: 11},
			{Time: day.AddDate(0, 0, 1), Open: 11, High: 14, Low: 10, Close: 13},
		}},
	}
}

func newPage(t *testing.T) *Page {
	t.Helper()
	content, err := LoadContent("")
	require.NoError(t, err)
	p, err := New(testSnapshot(), content, Options{GrowthYears: 4, SMAPeriod: 50})
	require.NoError(t, err)
	return p
}

func TestNew_KPICards(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(newPage(t).HTML()))
	require.NoError(t, err)

	var values, labels []string
	doc.Find("#kpis .kpi").Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.Find("h2").Text())
		labels = append(labels, s.Find("h4").Text())
	})
	assert.Equal(t, []string{"7.36%", "60.00%", "20.00%", "$191.35"}, values)
	assert.Equal(t, []string{
		"4 year stock CAGR",
		"LTM Gross margin 2023",
		"LTM Free Cash Flow 2023",
		"Est. Fair value",
	}, labels)
}

func TestNew_ChartPlaceholdersAndSections(t *testing.T) {
	p := newPage(t)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.HTML()))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("#"+charts.RevenueFCFID).Length())
	assert.Equal(t, 1, doc.Find("#"+charts.CandleStickID).Length())
	assert.Equal(t, "Financial Google Dashboard", doc.Find("title").Text())

	for _, id := range []string{"key-metrics", "quality", "financials", "pros-cons", "valuation"} {
		assert.Equal(t, 1, doc.Find("#"+id).Length(), id)
	}
	assert.Contains(t, doc.Find("#financials").Text(), "-4.5 bln")
	assert.Contains(t, doc.Find("#key-metrics").Text(), "$9.00 - $14.00")
	assert.Equal(t, 5, doc.Find("#quality div.flex").First().Find("i").Length())

	script := doc.Find("script").Last().Text()
	assert.Contains(t, script, `"id":"revenue_fcf"`)
	assert.Contains(t, script, `"id":"candle_stick"`)
	assert.Less(t, strings.Index(script, "revenue_fcf"), strings.Index(script, "candle_stick"))
}

func TestNew_OmitsNetCashWhenUnknown(t *testing.T) {
	snap := testSnapshot()
	snap.KPIs.NetCash = nil
	content, err := LoadContent("")
	require.NoError(t, err)

	p, err := New(snap, content, Options{})
	require.NoError(t, err)
	assert.NotContains(t, string(p.HTML()), "Net cash")
}

func TestPage_ServeHTTP(t *testing.T) {
	p := newPage(t)
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, p.HTML(), rec.Body.Bytes())
	assert.Equal(t, charts.RevenueFCFID, p.Figures()[0].ID)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "7.36%", FormatPercent(0.0735675))
	assert.Equal(t, "-3.10%", FormatPercent(-0.031))
	assert.Equal(t, "$160.00", FormatDollars(160))
	assert.Equal(t, "-$2.50", FormatDollars(-2.5))
	assert.Equal(t, "69.5 bln", FormatBillions(69.495e9))
	assert.Equal(t, "-8.0 bln", FormatBillions(-8e9))
}

func TestRatings(t *testing.T) {
	got := ratings([]Rating{{Label: "Moat", Score: 3.5}, {Label: "Product", Score: 4.8}})

	assert.Equal(t, []string{"fa-star", "fa-star", "fa-star", "fa-star-half-o", "fa-star-o"}, got[0].Stars)
	assert.Equal(t, []string{"fa-star", "fa-star", "fa-star", "fa-star", "fa-star"}, got[1].Stars)
}

func TestLoadContent(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	assert.Len(t, c.Quality, 4)
	assert.Len(t, c.Valuation, 2)

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: X\nquality:\n  - label: Moat\n    score: 7\n"), 0o644))
	_, err = LoadContent(path)
	assert.Error(t, err)

	_, err = LoadContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
