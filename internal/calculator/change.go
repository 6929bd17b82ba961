package calculator

import (
	"fmt"
	"math"

	"MarketDigest/internal/model"
	"MarketDigest/internal/series"
)

// DefaultWeeklyLookback is the trading-day offset used for the weekly change.
const DefaultWeeklyLookback = 5

// ComputeChanges derives the daily and weekly percentage change from a
// window of closes. Both values are rounded to 2 decimal places before
// return; downstream formatting never re-rounds.
//
// The weekly change is defined as 0.0 when the lookback observation is
// absent or exactly zero. That is policy, not a fallback: a symbol with a
// short history reports a flat week, it does not fail.
func ComputeChanges(w series.Window, weeklyLookback int) (daily, weekly float64, err error) {
	if w.Len() < 2 {
		return 0, 0, fmt.Errorf("%w: fewer than 2 trading-day observations", model.ErrInsufficientData)
	}

	current, _ := w.Current()
	previous, _ := w.Previous()
	if previous == 0 {
		return 0, 0, fmt.Errorf("%w: previous close is 0", model.ErrDivisionByZero)
	}
	daily = RoundTo((current-previous)/previous*100, 2)

	weekAgo, ok := w.AtOffset(weeklyLookback)
	if !ok || weekAgo == 0 {
		return daily, 0, nil
	}
	weekly = RoundTo((current-weekAgo)/weekAgo*100, 2)
	return daily, weekly, nil
}

// RoundTo rounds v to the given number of decimal places using
// round-half-to-even at the boundary.
func RoundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}
