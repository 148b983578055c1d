package invtrack

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Point is one dated sample of a time series.
type Point struct {
	On    Date
	Value Money
}

// Performance derives time series from valuations: absolute value curves,
// rebased curves for comparing lines of different magnitudes, and
// holding-period returns between samples.
type Performance struct {
	valuation *Valuation
}

// NewPerformance creates a performance engine over a valuation engine.
func NewPerformance(v *Valuation) *Performance {
	return &Performance{valuation: v}
}

// Absolute returns the value of an account sampled over the range at the
// given granularity. The series is lazy: values are computed as the caller
// ranges over it, and an error on any sample stops the iteration.
func (p *Performance) Absolute(account string, r Range, period Period) iter.Seq2[Point, error] {
	return func(yield func(Point, error) bool) {
		currency := p.currencyOf(account)
		for on := range r.Samples(period) {
			value, err := p.valuation.AccountValue(account, on, currency)
			if !yield(Point{On: on, Value: value}, err) || err != nil {
				return
			}
		}
	}
}

// Rebased returns the account value series rebased to 100 on the baseline
// date: each sample is 100 * value(on) / value(baseline). The baseline is
// validated before any sample is yielded; a missing or zero baseline value
// fails with InvalidBaselineError.
func (p *Performance) Rebased(account string, r Range, period Period, baseline Date) iter.Seq2[Point, error] {
	return func(yield func(Point, error) bool) {
		currency := p.currencyOf(account)
		base, err := p.valuation.AccountValue(account, baseline, currency)
		if err != nil {
			yield(Point{}, &InvalidBaselineError{Baseline: baseline, Cause: err})
			return
		}
		if base.IsZero() {
			yield(Point{}, &InvalidBaselineError{Baseline: baseline})
			return
		}
		hundred := decimal.NewFromInt(100)
		for on := range r.Samples(period) {
			value, err := p.valuation.AccountValue(account, on, currency)
			if err != nil {
				yield(Point{}, err)
				return
			}
			rebased := M(value.Amount().Mul(hundred).Div(base.Amount()), currency)
			if !yield(Point{On: on, Value: rebased}, nil) {
				return
			}
		}
	}
}

// Return is the holding-period return of one sampling interval, dated at
// the interval's end.
type Return struct {
	On    Date
	Value Percent
}

// Returns yields the holding-period return between each pair of
// consecutive samples of the account value series. A sample starting from
// a zero value yields a zero return. An error on any sample is yielded
// and stops the iteration, never swallowed.
func (p *Performance) Returns(account string, r Range, period Period) iter.Seq2[Return, error] {
	return func(yield func(Return, error) bool) {
		currency := p.currencyOf(account)
		var prev Money
		first := true
		for on := range r.Samples(period) {
			value, err := p.valuation.AccountValue(account, on, currency)
			if err != nil {
				yield(Return{}, err)
				return
			}
			if !first {
				var ret Percent
				if !prev.IsZero() {
					ret = Percent(value.Sub(prev).AsFloat() / prev.AsFloat() * 100)
				}
				if !yield(Return{On: on, Value: ret}, nil) {
					return
				}
			}
			first, prev = false, value
		}
	}
}

// currencyOf returns the account's reporting currency, or the empty string
// for an unknown account so the error surfaces in valuation instead.
func (p *Performance) currencyOf(account string) string {
	if a, ok := p.valuation.ledger.Account(account); ok {
		return a.Currency
	}
	return ""
}
