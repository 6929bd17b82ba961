// Package fx resolves spot conversion rates. Two acquisition strategies
// exist behind one interface: a point-in-time rate table and the pair-coded
// time series of the market-data provider. Deployment configuration picks
// exactly one; there is no fallback or averaging between them.
package fx

import (
	"context"

	"MarketDigest/internal/model"
)

// RateSource resolves the spot rate for one currency pair.
type RateSource interface {
	// Spot returns the rate tying one unit of base to target. A pair the
	// provider legitimately does not carry comes back with Supported=false
	// and no error; transport and parse failures return an error wrapping
	// model.ErrProviderUnavailable.
	Spot(ctx context.Context, base, target string) (model.RateQuote, error)

	Name() string
}
