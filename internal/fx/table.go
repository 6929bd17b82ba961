package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketDigest/internal/calculator"
	"MarketDigest/internal/model"
)

// DefaultTableURL is the public rate-table endpoint.
const DefaultTableURL = "https://api.frankfurter.app"

// TableSource resolves rates from a one-shot rate table keyed by target
// currency. It carries no history, so quotes have no change figures.
type TableSource struct {
	BaseURL   string
	Precision int
	Client    *http.Client
}

// NewTableSource creates a rate-table source with optional proxy support.
func NewTableSource(baseURL string, precision int, proxyURL string) *TableSource {
	if baseURL == "" {
		baseURL = DefaultTableURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TableSource{
		BaseURL:   baseURL,
		Precision: precision,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (s *TableSource) Name() string { return "table" }

type rateTable struct {
	Rates map[string]float64 `json:"rates"`
}

func (s *TableSource) Spot(ctx context.Context, base, target string) (model.RateQuote, error) {
	q := model.RateQuote{Base: base, Target: target}

	u := fmt.Sprintf("%s/latest?from=%s&to=%s", s.BaseURL, url.QueryEscape(base), url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return q, fmt.Errorf("%w: %v", model.ErrProviderUnavailable, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return q, fmt.Errorf("%w: %s->%s: %v", model.ErrProviderUnavailable, base, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return q, fmt.Errorf("%w: read body: %v", model.ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return q, fmt.Errorf("%w: %s->%s: status %d", model.ErrProviderUnavailable, base, target, resp.StatusCode)
	}

	var table rateTable
	if err := json.Unmarshal(body, &table); err != nil {
		return q, fmt.Errorf("%w: decode rate table: %v", model.ErrProviderUnavailable, err)
	}

	rate, ok := table.Rates[target]
	if !ok {
		// Some pairs are legitimately unsupported by the provider.
		return q, nil
	}

	q.Rate = calculator.RoundTo(rate, s.Precision)
	q.Supported = true
	return q, nil
}
