package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TickerDash/internal/collector"
	"TickerDash/internal/config"
	"TickerDash/internal/dashboard"
	"TickerDash/internal/logger"
	"TickerDash/internal/model"
	"TickerDash/internal/notifier"
	"TickerDash/internal/pages"
	"TickerDash/internal/recorder"
	"TickerDash/internal/scheduler"
	"TickerDash/internal/server"
	"TickerDash/internal/snapshot"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfgPath); err != nil {
		stop()
		log.Fatal().Err(err).Msg("TickerDash failed")
	}
}

// run wires the service and blocks until ctx is cancelled or the HTTP server
// fails. Every resource it opens is released before it returns.
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(l)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	l.Info().Str("ticker", cfg.Ticker.Symbol).Str("config", cfgPath).Msg("TickerDash starting")

	// Static pages render before anything touches the network.
	projectPages, err := pages.Load()
	if err != nil {
		return fmt.Errorf("render project pages: %w", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, l)
		if err != nil {
			l.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	fetcher := newFetcher(cfg)
	l.Info().Str("source", fetcher.Name()).Msg("data source selected")

	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, l)
	}

	snap, page, buildErr := buildDashboard(ctx, cfg, collector.NewCollector(fetcher, rec, cfg.Ticker.Symbol, l), l)
	if buildErr != nil {
		if !cfg.Dashboard.ServeOnBuildError {
			return fmt.Errorf("build snapshot: %w", buildErr)
		}
		l.Error().Err(buildErr).Msg("build snapshot failed, dashboard disabled")
	}

	if snap != nil {
		var n notifier.Notifier
		if tn != nil {
			n = tn
			if err := tn.SendWithRetry(ctx, notifier.FormatStartupSummary(snap), 2); err != nil {
				l.Warn().Err(err).Msg("send startup summary")
			}
		}
		wd := scheduler.NewWatchdog(snap, n, cfg.Schedule.MaxAge, l)
		if err := wd.Register(cfg.Schedule.WatchdogCron); err != nil {
			return fmt.Errorf("register watchdog: %w", err)
		}
		wd.Start()
		defer wd.Stop()
	}

	srv := server.New(server.Config{
		Addr:      cfg.Server.Addr,
		Log:       l,
		DevMode:   cfg.Server.DevMode,
		Pages:     projectPages,
		Snapshot:  snap,
		Dashboard: page,
		BuildErr:  buildErr,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		l.Info().Msg("shutdown signal received, stopping...")
	case serveErr = <-errCh:
		l.Error().Err(serveErr).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server shutdown")
	}
	l.Info().Msg("TickerDash stopped")
	return serveErr
}

// newFetcher selects the data source named by data_source.provider.
func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderMock:
		return collector.NewDemoFetcher()
	case config.ProviderYahooChart:
		return collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
	default:
		return collector.NewYFinanceFetcher(cfg.DataSource.Timeout)
	}
}

// buildDashboard builds the snapshot and renders the dashboard page once.
func buildDashboard(ctx context.Context, cfg *config.Config, col *collector.Collector, l zerolog.Logger) (*model.Snapshot, *dashboard.Page, error) {
	start, end, err := cfg.HistoryWindow(time.Now())
	if err != nil {
		return nil, nil, err
	}

	buildCtx, cancel := context.WithTimeout(ctx, 3*cfg.DataSource.Timeout)
	defer cancel()

	snap, err := snapshot.Build(buildCtx, col, snapshot.Options{
		Start:       start,
		End:         end,
		GrowthYears: cfg.KPI.GrowthYears,
	}, l)
	if err != nil {
		return nil, nil, err
	}

	content, err := dashboard.LoadContent(cfg.Dashboard.ContentPath)
	if err != nil {
		return nil, nil, err
	}
	page, err := dashboard.New(snap, content, dashboard.Options{
		GrowthYears: cfg.KPI.GrowthYears,
		SMAPeriod:   cfg.KPI.SMAPeriod,
	})
	if err != nil {
		return nil, nil, err
	}
	return snap, page, nil
}
