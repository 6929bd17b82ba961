package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"MarketDigest/internal/model"
)

// FormatValue renders a grouped number with a fixed number of decimals,
// e.g. 71342.5 at precision 2 -> "71,342.50".
func FormatValue(v float64, precision int) string {
	pattern := "#,###." + strings.Repeat("#", precision)
	return humanize.FormatFloat(pattern, v)
}

// FormatChange renders a pre-rounded percentage change with a directional
// marker. Zero is flat: it never prints as +0.00% or -0.00%.
func FormatChange(v float64) string {
	switch {
	case v > 0:
		return fmt.Sprintf("🔺+%.2f%%", v)
	case v < 0:
		return fmt.Sprintf("🔻%.2f%%", v)
	default:
		return "➖0.00%"
	}
}

// FormatEquityLine renders one equity/index success line.
func FormatEquityLine(name, symbol string, rec *model.QuoteRecord, currency string, precision int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("• *%s* (%s): %s%s\n", name, symbol, currency, FormatValue(rec.Value, precision)))
	b.WriteString(fmt.Sprintf("  > *변동률:* 일:%s, 주:%s\n", FormatChange(rec.DailyChangePct), FormatChange(rec.WeeklyChangePct)))
	b.WriteString(fmt.Sprintf("  > *거래량:* %s주 | *52주 범위:* %s%s ~ %s%s",
		humanize.Comma(rec.Volume),
		currency, FormatValue(rec.Low52w, precision),
		currency, FormatValue(rec.High52w, precision)))
	return b.String()
}

// FormatFailureLine renders a per-symbol failure line.
func FormatFailureLine(name, symbol, reason string) string {
	return fmt.Sprintf("• %s (%s): [조회 실패] - %s", name, symbol, reason)
}

// FormatRateLine renders one currency-pair line.
func FormatRateLine(q model.RateQuote, precision int) string {
	pair := q.Base + "/" + q.Target
	if !q.Supported {
		return fmt.Sprintf("%s: 조회 불가", pair)
	}
	if q.HasChanges {
		return fmt.Sprintf("%s: %s (일:%s, 주:%s)",
			pair, FormatValue(q.Rate, precision), FormatChange(q.DailyChangePct), FormatChange(q.WeeklyChangePct))
	}
	return fmt.Sprintf("%s: %s", pair, FormatValue(q.Rate, precision))
}
