package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"MarketDigest/internal/collector"
	"MarketDigest/internal/fx"
	"MarketDigest/internal/model"
)

// Result is the structured outcome for one symbol in one run.
type Result struct {
	Group  string
	Name   string
	Symbol string
	Record *model.QuoteRecord // nil on failure
	Rate   *model.RateQuote   // nil unless from the FX section
	Err    string             // failure reason, empty on success
}

// Report is one assembled run: the rendered text plus the structured
// per-symbol results behind it.
type Report struct {
	GeneratedAt time.Time
	Text        string
	Results     []Result
}

// Failures counts the per-symbol failure lines in the report.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != "" {
			n++
		}
	}
	return n
}

// Assembler renders the full multi-section report. One bad symbol never
// prevents the rest of the report: every per-symbol failure becomes a
// failure line and the run continues.
type Assembler struct {
	Collector      *collector.Collector
	Rates          fx.RateSource
	Groups         []model.Group
	FX             model.FxGroup
	Title          string
	MaxConcurrency int              // 1 = strictly sequential
	Now            func() time.Time // nil = time.Now
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Assembler) limit() int {
	if a.MaxConcurrency > 1 {
		return a.MaxConcurrency
	}
	return 1
}

// Assemble runs every configured group in declared order and returns the
// finished report.
func (a *Assembler) Assemble(ctx context.Context) *Report {
	rep := &Report{GeneratedAt: a.now()}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚀 *%s* (%s) 🚀\n", a.Title, rep.GeneratedAt.Format("2006-01-02 15:04:05")))

	for _, g := range a.Groups {
		results := a.equityGroup(ctx, g)
		rep.Results = append(rep.Results, results...)

		b.WriteString("\n*" + g.Title + "*\n")
		for i, r := range results {
			if i > 0 {
				b.WriteString("\n")
			}
			if r.Err != "" {
				b.WriteString(FormatFailureLine(r.Name, r.Symbol, r.Err))
			} else {
				b.WriteString(FormatEquityLine(r.Name, r.Symbol, r.Record, g.Currency, g.Precision))
			}
		}
		b.WriteString("\n")
	}

	if len(a.FX.Targets) > 0 {
		results := a.fxGroup(ctx)
		rep.Results = append(rep.Results, results...)

		b.WriteString("\n*" + a.FX.Title + "*\n")
		for i, r := range results {
			if i > 0 {
				b.WriteString("\n")
			}
			if r.Err != "" {
				b.WriteString(FormatFailureLine(r.Name, r.Symbol, r.Err))
			} else {
				b.WriteString(FormatRateLine(*r.Rate, a.FX.Precision))
			}
		}
		b.WriteString("\n")
	}

	rep.Text = b.String()
	return rep
}

// equityGroup fetches one group, fanning out up to MaxConcurrency fetches
// while keeping results in the group's declared order.
func (a *Assembler) equityGroup(ctx context.Context, g model.Group) []Result {
	results := make([]Result, len(g.Tickers))
	eg := &errgroup.Group{}
	eg.SetLimit(a.limit())

	for i, t := range g.Tickers {
		i, t := i, t
		eg.Go(func() error {
			r := Result{Group: g.Title, Name: t.Name, Symbol: t.Symbol}
			rec, err := a.Collector.Equity(ctx, t.Symbol, g.Precision)
			if err != nil {
				r.Err = err.Error()
			} else {
				r.Record = rec
			}
			results[i] = r
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func (a *Assembler) fxGroup(ctx context.Context) []Result {
	results := make([]Result, len(a.FX.Targets))
	eg := &errgroup.Group{}
	eg.SetLimit(a.limit())

	for i, target := range a.FX.Targets {
		i, target := i, target
		eg.Go(func() error {
			pair := a.FX.Base + "/" + target
			r := Result{Group: a.FX.Title, Name: pair, Symbol: collector.PairSymbol(a.FX.Base, target)}
			q, err := a.Rates.Spot(ctx, a.FX.Base, target)
			if err != nil {
				// ProviderUnavailable propagates out of the rate source;
				// the group boundary is where it turns into a line.
				r.Err = err.Error()
			} else {
				r.Rate = &q
			}
			results[i] = r
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
