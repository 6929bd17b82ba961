package collector

import (
	"context"
	"errors"
	"fmt"

	"MarketDigest/internal/calculator"
	"MarketDigest/internal/model"
	"MarketDigest/internal/series"
)

// Collector turns raw provider data into canonical quote records. It is the
// normalization boundary: every provider failure comes back as an error the
// report layer can render as a per-symbol failure line, never a panic and
// never a partial record.
type Collector struct {
	Fetcher        Fetcher
	WeeklyLookback int
}

// NewCollector creates a Collector with the given weekly lookback in
// trading days.
func NewCollector(fetcher Fetcher, weeklyLookback int) *Collector {
	if weeklyLookback <= 0 {
		weeklyLookback = calculator.DefaultWeeklyLookback
	}
	return &Collector{Fetcher: fetcher, WeeklyLookback: weeklyLookback}
}

// fetchWindow pulls lookback+2 days of history (weekend/holiday slack) and
// builds the trailing window.
func (c *Collector) fetchWindow(ctx context.Context, symbol string) (series.Window, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.WeeklyLookback+2)
	if err != nil {
		return series.Window{}, fmt.Errorf("%w: %v", model.ErrProviderUnavailable, err)
	}
	return series.Build(bars), nil
}

// Equity fetches and normalizes a full equity/index record: value, changes,
// volume and 52-week range. The 52-week fields default to 0 when the
// provider omits them (common for indices).
func (c *Collector) Equity(ctx context.Context, symbol string, precision int) (*model.QuoteRecord, error) {
	w, err := c.fetchWindow(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if w.Len() < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 trading-day observations", model.ErrInsufficientData)
	}

	daily, weekly, err := calculator.ComputeChanges(w, c.WeeklyLookback)
	if err != nil {
		return nil, err
	}

	meta, err := c.Fetcher.FetchMeta(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProviderUnavailable, err)
	}

	current, _ := w.Current()
	return &model.QuoteRecord{
		Symbol:          symbol,
		Value:           calculator.RoundTo(current, precision),
		DailyChangePct:  daily,
		WeeklyChangePct: weekly,
		Volume:          int64(w.LatestVolume()),
		Low52w:          calculator.RoundTo(meta.Low52w, precision),
		High52w:         calculator.RoundTo(meta.High52w, precision),
	}, nil
}

// FxPair fetches and normalizes a currency-pair record from the pair-coded
// time series: spot rate plus changes, no volume, no 52-week range.
func (c *Collector) FxPair(ctx context.Context, base, target string, precision int) (*model.QuoteRecord, error) {
	symbol := PairSymbol(base, target)
	w, err := c.fetchWindow(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if w.Len() < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 trading-day observations", model.ErrInsufficientData)
	}

	daily, weekly, err := calculator.ComputeChanges(w, c.WeeklyLookback)
	if err != nil {
		return nil, err
	}

	current, _ := w.Current()
	return &model.QuoteRecord{
		Symbol:          symbol,
		Value:           calculator.RoundTo(current, precision),
		DailyChangePct:  daily,
		WeeklyChangePct: weekly,
	}, nil
}

// PairSymbol builds the provider's pair-coded FX symbol.
func PairSymbol(base, target string) string {
	return base + target + "=X"
}

// IsRecoverable reports whether err is a per-symbol failure that should be
// rendered as a failure line rather than aborting the run.
func IsRecoverable(err error) bool {
	return errors.Is(err, model.ErrInsufficientData) ||
		errors.Is(err, model.ErrDivisionByZero) ||
		errors.Is(err, model.ErrProviderUnavailable)
}
