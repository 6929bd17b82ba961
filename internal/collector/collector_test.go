package collector

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"MarketDigest/internal/model"
)

func testBars(closes ...float64) []model.Bar {
	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Close: c, Volume: 1000000}
	}
	return bars
}

func TestEquity_FullRecord(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: testBars(100.0, 98.0, 102.0, 101.0, 99.0, 103.0),
		Meta: model.QuoteMeta{High52w: 120.555, Low52w: 80.111},
	}
	c := NewCollector(fetcher, 5)

	rec, err := c.Equity(context.Background(), "005930.KS", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Symbol != "005930.KS" {
		t.Errorf("symbol = %q", rec.Symbol)
	}
	if rec.Value != 103.00 {
		t.Errorf("value = %v, want 103.00", rec.Value)
	}
	if rec.DailyChangePct != 4.04 {
		t.Errorf("daily = %v, want 4.04", rec.DailyChangePct)
	}
	if rec.WeeklyChangePct != 3.00 {
		t.Errorf("weekly = %v, want 3.00", rec.WeeklyChangePct)
	}
	if rec.Volume != 1000000 {
		t.Errorf("volume = %v, want 1000000", rec.Volume)
	}
	if rec.Low52w != 80.11 || rec.High52w != 120.56 {
		t.Errorf("52w range = %v ~ %v, want 80.11 ~ 120.56", rec.Low52w, rec.High52w)
	}
}

func TestEquity_MissingMetaDefaultsToZero(t *testing.T) {
	fetcher := &MockFetcher{Bars: testBars(100, 101)}
	c := NewCollector(fetcher, 5)

	rec, err := c.Equity(context.Background(), "^KS11", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Low52w != 0 || rec.High52w != 0 {
		t.Errorf("index without 52w metadata should default to 0, got %v ~ %v", rec.Low52w, rec.High52w)
	}
}

func TestEquity_InsufficientData(t *testing.T) {
	for _, bars := range [][]model.Bar{nil, testBars(100)} {
		c := NewCollector(&MockFetcher{Bars: bars}, 5)
		_, err := c.Equity(context.Background(), "AAPL", 2)
		if !errors.Is(err, model.ErrInsufficientData) {
			t.Errorf("bars len %d: expected ErrInsufficientData, got %v", len(bars), err)
		}
	}
}

func TestEquity_ProviderFailure(t *testing.T) {
	c := NewCollector(&MockFetcher{BarsErr: fmt.Errorf("connection refused")}, 5)
	_, err := c.Equity(context.Background(), "AAPL", 2)
	if !errors.Is(err, model.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	c2 := NewCollector(&MockFetcher{Bars: testBars(100, 101), MetaErr: fmt.Errorf("bad payload")}, 5)
	_, err = c2.Equity(context.Background(), "AAPL", 2)
	if !errors.Is(err, model.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable from meta failure, got %v", err)
	}
}

func TestEquity_Idempotent(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: testBars(100.0, 98.0, 102.0, 101.0, 99.0, 103.0),
		Meta: model.QuoteMeta{High52w: 120, Low52w: 80},
	}
	c := NewCollector(fetcher, 5)

	a, err := c.Equity(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Equity(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalizing the same input twice diverged: %+v vs %+v", a, b)
	}
}

func TestFxPair(t *testing.T) {
	fetcher := &MockFetcher{Bars: testBars(0.00070, 0.00070, 0.00071, 0.00071, 0.00072, 0.000724999)}
	c := NewCollector(fetcher, 5)

	rec, err := c.FxPair(context.Background(), "KRW", "USD", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Symbol != "KRWUSD=X" {
		t.Errorf("symbol = %q, want KRWUSD=X", rec.Symbol)
	}
	if rec.Value != 0.00072 {
		t.Errorf("value = %v, want 0.00072 at precision 5", rec.Value)
	}
	if rec.Volume != 0 || rec.Low52w != 0 || rec.High52w != 0 {
		t.Errorf("fx record must not carry volume or 52w range: %+v", rec)
	}
}

func TestIsRecoverable(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: x", model.ErrInsufficientData),
		fmt.Errorf("%w: x", model.ErrDivisionByZero),
		fmt.Errorf("%w: x", model.ErrProviderUnavailable),
	} {
		if !IsRecoverable(err) {
			t.Errorf("expected recoverable: %v", err)
		}
	}
	if IsRecoverable(fmt.Errorf("%w: x", model.ErrDelivery)) {
		t.Error("delivery failure is not a per-symbol failure")
	}
}
