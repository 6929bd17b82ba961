package series

import (
	"math"
	"testing"
	"time"

	"MarketDigest/internal/model"
)

func day(n int) time.Time {
	return time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func bars(closes ...float64) []model.Bar {
	out := make([]model.Bar, len(closes))
	for i, c := range closes {
		out[i] = model.Bar{Date: day(i), Close: c}
	}
	return out
}

func TestBuild_FiltersInvalidCloses(t *testing.T) {
	raw := []model.Bar{
		{Date: day(0), Close: 100},
		{Date: day(1), Close: math.NaN()},
		{Date: day(2), Close: math.Inf(1)},
		{Date: day(3), Close: 101},
		{Date: day(4), Close: 0}, // zero closes stay in
	}
	w := Build(raw)
	if w.Len() != 3 {
		t.Fatalf("expected 3 bars after filtering, got %d", w.Len())
	}
	if v, ok := w.Current(); !ok || v != 0 {
		t.Errorf("expected current 0, got %v (ok=%v)", v, ok)
	}
}

func TestBuild_SortsAndDedupes(t *testing.T) {
	raw := []model.Bar{
		{Date: day(2), Close: 102},
		{Date: day(0), Close: 100},
		{Date: day(1), Close: 101},
		{Date: day(1), Close: 111}, // duplicate date, last wins
	}
	w := Build(raw)
	if w.Len() != 3 {
		t.Fatalf("expected 3 bars after dedupe, got %d", w.Len())
	}
	if v, _ := w.AtOffset(1); v != 111 {
		t.Errorf("expected duplicate date to keep last close 111, got %v", v)
	}
	if v, _ := w.AtOffset(2); v != 100 {
		t.Errorf("expected oldest close 100, got %v", v)
	}
}

func TestAtOffset_Bounds(t *testing.T) {
	w := Build(bars(100, 98, 102))

	tests := []struct {
		offset int
		want   float64
		wantOK bool
	}{
		{0, 102, true},
		{1, 98, true},
		{2, 100, true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := w.AtOffset(tt.offset)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("AtOffset(%d) = (%v, %v), want (%v, %v)", tt.offset, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAtOffset_EmptyWindow(t *testing.T) {
	w := Build(nil)
	if w.Len() != 0 {
		t.Fatalf("expected empty window, got %d", w.Len())
	}
	if _, ok := w.Current(); ok {
		t.Error("expected no current on empty window")
	}
	if _, ok := w.Previous(); ok {
		t.Error("expected no previous on empty window")
	}
}

func TestLatestVolume(t *testing.T) {
	raw := []model.Bar{
		{Date: day(0), Close: 100, Volume: 500},
		{Date: day(1), Close: 101, Volume: 700},
		{Date: day(2), Close: 102, Volume: 0}, // null volume on last bar
	}
	w := Build(raw)
	if got := w.LatestVolume(); got != 700 {
		t.Errorf("expected latest positive volume 700, got %v", got)
	}

	// Index-style series: no volume anywhere
	w2 := Build(bars(100, 101, 102))
	if got := w2.LatestVolume(); got != 0 {
		t.Errorf("expected 0 volume for index series, got %v", got)
	}
}
