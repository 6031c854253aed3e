package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of history window dates in the config file.
const DateLayout = "2006-01-02"

// Data source providers.
const (
	ProviderYahoo      = "yahoo"       // go-yfinance session client
	ProviderYahooChart = "yahoo_chart" // raw chart and time-series endpoints, honours proxy
	ProviderMock       = "mock"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr    string `yaml:"addr"`
		DevMode bool   `yaml:"dev_mode"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Ticker struct {
		Symbol       string `yaml:"symbol"`
		HistoryStart string `yaml:"history_start"`
		HistoryEnd   string `yaml:"history_end"`
		HistoryYears int    `yaml:"history_years"`
	} `yaml:"ticker"`
	KPI struct {
		GrowthYears int `yaml:"growth_years"`
		SMAPeriod   int `yaml:"sma_period"`
	} `yaml:"kpi"`
	DataSource struct {
		Provider string        `yaml:"provider"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Dashboard struct {
		ServeOnBuildError bool   `yaml:"serve_on_build_error"`
		ContentPath       string `yaml:"content_path"`
	} `yaml:"dashboard"`
	Schedule struct {
		WatchdogCron string        `yaml:"watchdog_cron"`
		MaxAge       time.Duration `yaml:"max_age"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env, then the YAML config file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKER"); v != "" {
		cfg.Ticker.Symbol = v
	}
	if v := os.Getenv("HISTORY_START"); v != "" {
		cfg.Ticker.HistoryStart = v
	}
	if v := os.Getenv("HISTORY_END"); v != "" {
		cfg.Ticker.HistoryEnd = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DEV_MODE"); v != "" {
		cfg.Server.DevMode = v == "true" || v == "1"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Ticker.Symbol = strings.ToUpper(strings.TrimSpace(c.Ticker.Symbol))
	if c.Ticker.Symbol == "" {
		c.Ticker.Symbol = "GOOGL"
	}
	if c.Ticker.HistoryYears == 0 {
		c.Ticker.HistoryYears = 10
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.KPI.GrowthYears == 0 {
		c.KPI.GrowthYears = 4
	}
	if c.KPI.SMAPeriod == 0 {
		c.KPI.SMAPeriod = 50
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.Schedule.WatchdogCron == "" {
		c.Schedule.WatchdogCron = "0 0 * * * *"
	}
	if c.Schedule.MaxAge == 0 {
		c.Schedule.MaxAge = 7 * 24 * time.Hour
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Ticker.Symbol == "" {
		return fmt.Errorf("ticker.symbol is required")
	}
	if c.KPI.GrowthYears < 1 {
		return fmt.Errorf("kpi.growth_years must be positive")
	}
	if c.KPI.SMAPeriod < 2 {
		return fmt.Errorf("kpi.sma_period must be at least 2")
	}
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderYahooChart, ProviderMock:
	default:
		return fmt.Errorf("data_source.provider must be yahoo, yahoo_chart or mock, got %q", c.DataSource.Provider)
	}
	if c.Ticker.HistoryYears < 1 {
		return fmt.Errorf("ticker.history_years must be positive")
	}
	if _, _, err := c.HistoryWindow(time.Now()); err != nil {
		return err
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// HistoryWindow resolves the daily price window [start, end). Unset bounds
// default to a trailing window of history_years ending today.
func (c *Config) HistoryWindow(now time.Time) (start, end time.Time, err error) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if c.Ticker.HistoryEnd != "" {
		end, err = time.Parse(DateLayout, c.Ticker.HistoryEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("ticker.history_end: %w", err)
		}
	}
	start = end.AddDate(-c.Ticker.HistoryYears, 0, 0)
	if c.Ticker.HistoryStart != "" {
		start, err = time.Parse(DateLayout, c.Ticker.HistoryStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("ticker.history_start: %w", err)
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("history window is empty: %s >= %s",
			start.Format(DateLayout), end.Format(DateLayout))
	}
	return start, end, nil
}

// TelegramEnabled reports whether Telegram alerts are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
