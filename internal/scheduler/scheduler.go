package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TickerDash/internal/model"
	"TickerDash/internal/notifier"
)

// Watchdog periodically inspects the immutable snapshot and reports when it
// has gone stale. It never refreshes data.
type Watchdog struct {
	Cron     *cron.Cron
	Snapshot *model.Snapshot
	Notifier notifier.Notifier // nil disables alerts
	MaxAge   time.Duration

	log       zerolog.Logger
	now       func() time.Time
	mu        sync.Mutex
	lastAlert string
}

// NewWatchdog creates a watchdog for snap.
func NewWatchdog(snap *model.Snapshot, n notifier.Notifier, maxAge time.Duration, log zerolog.Logger) *Watchdog {
	return &Watchdog{
		Cron:     cron.New(cron.WithSeconds()),
		Snapshot: snap,
		Notifier: n,
		MaxAge:   maxAge,
		log:      log.With().Str("component", "watchdog").Logger(),
		now:      time.Now,
	}
}

// Register schedules the staleness check with a seconds-enabled cron spec.
func (w *Watchdog) Register(spec string) error {
	if _, err := w.Cron.AddFunc(spec, func() { w.RunNow() }); err != nil {
		return fmt.Errorf("register watchdog: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watchdog) Start() {
	w.Cron.Start()
	w.log.Info().Dur("max_age", w.MaxAge).Msg("watchdog started")
}

// Stop stops the cron scheduler and waits for a running check.
func (w *Watchdog) Stop() {
	<-w.Cron.Stop().Done()
	w.log.Info().Msg("watchdog stopped")
}

// RunNow runs one check and returns the issues found.
func (w *Watchdog) RunNow() []string {
	issues := Inspect(w.Snapshot, w.now(), w.MaxAge)
	if len(issues) == 0 {
		w.log.Debug().Str("snapshot_id", w.Snapshot.ID).Msg("snapshot fresh")
		return nil
	}

	w.log.Warn().Strs("issues", issues).Str("snapshot_id", w.Snapshot.ID).Msg("snapshot stale")
	w.alert(issues)
	return issues
}

// alert sends the issues unless the same set was already sent.
func (w *Watchdog) alert(issues []string) {
	if w.Notifier == nil {
		return
	}
	key := strings.Join(issues, "\n")

	w.mu.Lock()
	defer w.mu.Unlock()
	if key == w.lastAlert {
		return
	}
	if err := w.Notifier.Send(notifier.FormatStaleAlert(w.Snapshot, issues)); err != nil {
		w.log.Error().Err(err).Msg("send stale alert")
		return
	}
	w.lastAlert = key
}

// Inspect lists the reasons snap is stale at now: it is older than maxAge, or
// its latest fiscal year lags the calendar year by more than one.
func Inspect(snap *model.Snapshot, now time.Time, maxAge time.Duration) []string {
	var issues []string
	if age := now.Sub(snap.BuiltAt); maxAge > 0 && age > maxAge {
		issues = append(issues, fmt.Sprintf("snapshot age %s exceeds %s",
			age.Truncate(time.Minute), maxAge))
	}
	if fy := snap.LatestFiscalYear(); fy > 0 && now.Year()-fy > 1 {
		issues = append(issues, fmt.Sprintf("latest fiscal year %d lags %d by %d years",
			fy, now.Year(), now.Year()-fy))
	}
	return issues
}
