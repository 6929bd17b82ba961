package collector

import (
	"context"

	"MarketDigest/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars         []model.Bar
	BarsBySymbol map[string][]model.Bar
	Meta         model.QuoteMeta
	BarsErr      error
	MetaErr      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, _ int) ([]model.Bar, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.BarsBySymbol != nil {
		return m.BarsBySymbol[symbol], nil
	}
	return m.Bars, nil
}

func (m *MockFetcher) FetchMeta(_ context.Context, _ string) (model.QuoteMeta, error) {
	if m.MetaErr != nil {
		return model.QuoteMeta{}, m.MetaErr
	}
	return m.Meta, nil
}
