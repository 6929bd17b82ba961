package collector

import (
	"context"

	"MarketDigest/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to days of daily bars for symbol,
	// chronological ascending. Short or empty results are not an error
	// here; the caller decides whether the history is sufficient.
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)

	// FetchMeta returns static metadata for symbol. Fields the provider
	// does not supply are zero.
	FetchMeta(ctx context.Context, symbol string) (model.QuoteMeta, error)

	Name() string
}
