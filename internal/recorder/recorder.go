package recorder

import "time"

// Fetch kinds recorded for each provider call.
const (
	KindStatements = "statements"
	KindDailyBars  = "daily_bars"
	KindQuote      = "quote"
)

// FetchEvent describes one call to the market-data provider.
type FetchEvent struct {
	Symbol   string
	Kind     string
	Source   string
	Rows     int
	Duration time.Duration
	Err      error
}

// Recorder persists provider fetch events.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	Close() error
}
