package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDash/internal/model"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func snapshotAt(built time.Time, fiscalYear int) *model.Snapshot {
	return &model.Snapshot{
		ID:      "snap",
		Symbol:  "GOOGL",
		BuiltAt: built,
		Ratios:  model.RatioTable{{Year: fiscalYear - 1}, {Year: fiscalYear}},
	}
}

func TestInspect(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		snap   *model.Snapshot
		issues int
	}{
		{"fresh", snapshotAt(now.Add(-time.Hour), 2025), 0},
		{"too old", snapshotAt(now.Add(-200*time.Hour), 2025), 1},
		{"fiscal lag", snapshotAt(now.Add(-time.Hour), 2024), 1},
		{"both", snapshotAt(now.Add(-200*time.Hour), 2023), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Inspect(tt.snap, now, 168*time.Hour), tt.issues)
		})
	}
}

func TestWatchdog_RunNowAlertsOnce(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	n := &fakeNotifier{}
	w := NewWatchdog(snapshotAt(now.Add(-200*time.Hour), 2025), n, 168*time.Hour, zerolog.Nop())
	w.now = func() time.Time { return now }

	issues := w.RunNow()
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "exceeds 168h0m0s")

	w.RunNow()
	assert.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "GOOGL snapshot is stale")
}

func TestWatchdog_FreshSnapshotSendsNothing(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	n := &fakeNotifier{}
	w := NewWatchdog(snapshotAt(now, 2025), n, time.Hour, zerolog.Nop())
	w.now = func() time.Time { return now }

	assert.Empty(t, w.RunNow())
	assert.Empty(t, n.sent)
}

func TestWatchdog_RetriesAfterSendFailure(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	n := &fakeNotifier{err: errors.New("telegram down")}
	w := NewWatchdog(snapshotAt(now.Add(-200*time.Hour), 2025), n, time.Hour, zerolog.Nop())
	w.now = func() time.Time { return now }

	w.RunNow()
	assert.Empty(t, n.sent)

	n.err = nil
	w.RunNow()
	assert.Len(t, n.sent, 1)
}

func TestWatchdog_Register(t *testing.T) {
	w := NewWatchdog(snapshotAt(time.Now(), time.Now().Year()), nil, time.Hour, zerolog.Nop())

	require.NoError(t, w.Register("0 0 * * * *"))
	assert.Len(t, w.Cron.Entries(), 1)
	assert.Error(t, w.Register("not a cron spec"))

	w.Start()
	w.Stop()
}
