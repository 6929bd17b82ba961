package model

import "time"

// Bar represents a single daily observation from the market-data provider.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// QuoteMeta holds static per-symbol metadata from the provider.
// Index symbols commonly lack the 52-week fields; zero means "not supplied".
type QuoteMeta struct {
	High52w float64
	Low52w  float64
}

// QuoteRecord is the canonical per-symbol output of one report run.
// Created fresh per symbol, immutable once returned, never persisted by the
// pipeline itself.
type QuoteRecord struct {
	Symbol          string
	Value           float64
	DailyChangePct  float64
	WeeklyChangePct float64
	Volume          int64   // equities only
	Low52w          float64 // equities only, 0 when provider omits it
	High52w         float64 // equities only, 0 when provider omits it
}

// RateQuote is a spot conversion rate for one currency pair.
// Supported is false when the provider legitimately has no rate for the
// target. HasChanges is true only for the time-series acquisition strategy.
type RateQuote struct {
	Base            string
	Target          string
	Rate            float64
	DailyChangePct  float64
	WeeklyChangePct float64
	HasChanges      bool
	Supported       bool
}
