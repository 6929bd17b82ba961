package model

import "errors"

// Failure taxonomy shared across the pipeline. Per-symbol failures wrap one
// of these and are rendered as failure lines by the report assembler; only
// delivery failures escalate past a single run.
var (
	// ErrInsufficientData means fewer than 2 valid observations survived
	// filtering for a symbol.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDivisionByZero means the prior value was exactly zero when
	// computing a period-over-period ratio.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrProviderUnavailable means a transport or parse failure talking to
	// an upstream market-data or rate provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDelivery means the webhook transport failed or returned non-2xx.
	ErrDelivery = errors.New("delivery failed")
)
