package series

import (
	"math"
	"sort"
	"time"

	"MarketDigest/internal/model"
)

// Window is a trailing window of daily bars in chronological order,
// deduplicated by date. It makes no length guarantee; callers decide
// whether the surviving rows are enough for their computation.
type Window struct {
	bars []model.Bar
}

// Build filters out bars with NaN/Inf closes, sorts ascending by date and
// deduplicates by calendar date (last bar for a date wins). Zero closes are
// kept: degenerate prices must reach the divide-by-zero check downstream.
func Build(raw []model.Bar) Window {
	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			continue
		}
		bars = append(bars, b)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	deduped := bars[:0]
	for _, b := range bars {
		if n := len(deduped); n > 0 && sameDay(deduped[n-1].Date, b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return Window{bars: deduped}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Len returns the number of observations in the window.
func (w Window) Len() int { return len(w.bars) }

// Current returns the most recent close, if any.
func (w Window) Current() (float64, bool) {
	return w.AtOffset(0)
}

// Previous returns the second most recent close, if any.
func (w Window) Previous() (float64, bool) {
	return w.AtOffset(1)
}

// AtOffset returns the close daysBack trading days before the current
// observation. Absence is not an error: callers treat an out-of-range
// offset as "unavailable".
func (w Window) AtOffset(daysBack int) (float64, bool) {
	i := len(w.bars) - daysBack - 1
	if daysBack < 0 || i < 0 {
		return 0, false
	}
	return w.bars[i].Close, true
}

// LatestVolume returns the most recent positive volume in the window, or the
// current bar's volume when none is positive (indices and FX report 0).
func (w Window) LatestVolume() float64 {
	for i := len(w.bars) - 1; i >= 0; i-- {
		if w.bars[i].Volume > 0 {
			return w.bars[i].Volume
		}
	}
	if len(w.bars) == 0 {
		return 0
	}
	return w.bars[len(w.bars)-1].Volume
}
