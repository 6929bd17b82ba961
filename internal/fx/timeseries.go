package fx

import (
	"context"
	"errors"

	"MarketDigest/internal/collector"
	"MarketDigest/internal/model"
)

// SeriesSource resolves rates from the market-data provider's pair-coded
// daily series. Because it sees history, its quotes carry daily and weekly
// change figures.
type SeriesSource struct {
	Collector *collector.Collector
	Precision int
}

// NewSeriesSource creates a time-series rate source on top of an existing
// collector.
func NewSeriesSource(c *collector.Collector, precision int) *SeriesSource {
	return &SeriesSource{Collector: c, Precision: precision}
}

func (s *SeriesSource) Name() string { return "series" }

func (s *SeriesSource) Spot(ctx context.Context, base, target string) (model.RateQuote, error) {
	q := model.RateQuote{Base: base, Target: target}

	rec, err := s.Collector.FxPair(ctx, base, target, s.Precision)
	if err != nil {
		// A pair the provider has no series for reads as unsupported, the
		// same "no rate" outcome as an absent rate-table entry.
		if errors.Is(err, model.ErrInsufficientData) {
			return q, nil
		}
		return q, err
	}

	q.Rate = rec.Value
	q.DailyChangePct = rec.DailyChangePct
	q.WeeklyChangePct = rec.WeeklyChangePct
	q.HasChanges = true
	q.Supported = true
	return q, nil
}
