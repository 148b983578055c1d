package invtrack

import (
	"fmt"
)

// The engines never mask a failure: a valuation with no usable price, a
// rebase against an undefined baseline, or a conversion without a rate all
// surface as one of the typed errors below, so the calling layer can decide
// how to present them. No error here is retried: every computation is
// deterministic over static data.

// ValidationError reports malformed input data rejected at write time.
// The write is never partially applied.
type ValidationError struct {
	Entity string // "account", "share", "transaction" or "price"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

// validationf builds a ValidationError for entity with a formatted reason.
func validationf(entity, format string, args ...any) error {
	return &ValidationError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// NoPriceDataError reports a valuation requested for a date with no price
// observation on or before it. Stale or missing data must be visible, never
// silently treated as a zero value.
type NoPriceDataError struct {
	Share string
	On    Date
}

func (e *NoPriceDataError) Error() string {
	return fmt.Sprintf("no price data for %s on or before %s", e.Share, e.On)
}

// FxRateUnavailableError reports a currency conversion requested with no
// known rate.
type FxRateUnavailableError struct {
	From, To string
	On       Date
}

func (e *FxRateUnavailableError) Error() string {
	return fmt.Sprintf("no %s to %s exchange rate on or before %s", e.From, e.To, e.On)
}

// InvalidBaselineError reports a rebased series requested against a
// baseline date whose value is zero or undefined.
type InvalidBaselineError struct {
	Baseline Date
	Cause    error // nil when the baseline value is zero
}

func (e *InvalidBaselineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid baseline %s: %v", e.Baseline, e.Cause)
	}
	return fmt.Sprintf("invalid baseline %s: value is zero", e.Baseline)
}

func (e *InvalidBaselineError) Unwrap() error { return e.Cause }
