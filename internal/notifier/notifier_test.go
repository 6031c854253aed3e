package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDash/internal/model"
)

func TestTelegramNotifier_Send(t *testing.T) {
	var gotPath string
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "", zerolog.Nop())
	tn.APIBase = srv.URL

	require.NoError(t, tn.Send("<b>hi</b>"))
	assert.Equal(t, "/botTOKEN/sendMessage", gotPath)
	assert.Equal(t, "42", payload["chat_id"])
	assert.Equal(t, "HTML", payload["parse_mode"])
	assert.Equal(t, "<b>hi</b>", payload["text"])
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("bad", "42", "", zerolog.Nop())
	tn.APIBase = srv.URL

	err := tn.Send("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tn.SendWithRetry(ctx, "x", 3), context.Canceled)
}

func TestTelegramNotifier_SendWithRetry_NoSleepAfterLastAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "", zerolog.Nop())
	tn.APIBase = srv.URL

	started := time.Now()
	err := tn.SendWithRetry(context.Background(), "x", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 retries exhausted")
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(started), 900*time.Millisecond)
}

func TestFormatters(t *testing.T) {
	netCash, price := -4.5e9, 165.0
	snap := &model.Snapshot{
		ID:      "abc",
		Symbol:  "GOOGL",
		BuiltAt: time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC),
		KPIs: model.KPIs{
			CAGR: 0.0736, CAGRFrom: 2020, CAGRTo: 2023,
			GrossMargin: 0.566, FCFMargin: 0.226, MarginYear: 2023,
			FairValue: 191.35, NetCash: &netCash,
		},
		Quote: model.QuoteMetrics{CurrentPrice: &price},
	}

	summary := FormatStartupSummary(snap)
	assert.Contains(t, summary, "<b>GOOGL snapshot</b>")
	assert.Contains(t, summary, "Revenue CAGR 2020-2023: 7.36%")
	assert.Contains(t, summary, "Fair value: $191.35 (price $165.00)")
	assert.Contains(t, summary, "Net cash: -4.5 bln")

	alert := FormatStaleAlert(snap, []string{"snapshot age 200h exceeds 168h", "fiscal year <2022>"})
	assert.Contains(t, alert, "• snapshot age 200h exceeds 168h")
	assert.Contains(t, alert, "&lt;2022&gt;")
	assert.Contains(t, alert, "snapshot abc built 2024-11-01 09:30")
}
