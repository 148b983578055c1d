package invtrack

import (
	"iter"
	"sort"
)

// Slice is one constituent of an account's composition: a share position
// or a cash balance, with its value and its fraction of the total.
type Slice struct {
	Label    string // share ticker, or "cash" plus the currency
	Value    Money
	Fraction float64 // in [0,1], all slices of a composition sum to 1
}

// Composition is the breakdown of an account's value on a date. An account
// worth zero has no slices.
type Composition struct {
	Account  string
	On       Date
	Currency string
	Total    Money
	Slices   []Slice
}

// CompositionOf computes the composition of an account on a date, in the
// account's own currency. Slices are ordered by decreasing value, cash
// after shares on ties, so the dominant positions come first.
func CompositionOf(v *Valuation, account string, on Date) (Composition, error) {
	a, ok := v.ledger.Account(account)
	if !ok {
		return Composition{}, validationf("account", "%q does not exist", account)
	}
	c := Composition{Account: account, On: on, Currency: a.Currency, Total: M(0, a.Currency)}
	for share := range v.ledger.SharesTraded(account) {
		value, err := v.ShareValue(account, share, on, a.Currency)
		if err != nil {
			return Composition{}, err
		}
		if value.IsZero() {
			continue
		}
		c.Slices = append(c.Slices, Slice{Label: share, Value: value})
		c.Total = c.Total.Add(value)
	}
	for cur := range v.ledger.Currencies(account) {
		balance := v.ledger.CashBalance(account, cur, on)
		if balance.IsZero() {
			continue
		}
		converted, err := v.Convert(balance, a.Currency, on)
		if err != nil {
			return Composition{}, err
		}
		c.Slices = append(c.Slices, Slice{Label: "cash " + cur, Value: converted})
		c.Total = c.Total.Add(converted)
	}
	if c.Total.IsZero() {
		c.Slices = nil
		return c, nil
	}
	total := c.Total.AsFloat()
	for i := range c.Slices {
		c.Slices[i].Fraction = c.Slices[i].Value.AsFloat() / total
	}
	sort.SliceStable(c.Slices, func(i, j int) bool {
		if c.Slices[i].Value.Equal(c.Slices[j].Value) {
			return c.Slices[i].Label < c.Slices[j].Label
		}
		return c.Slices[j].Value.LessThan(c.Slices[i].Value)
	})
	return c, nil
}

// CompositionSeries yields the composition of an account at each sampling
// date of the range. The series is lazy and stops on the first error.
func CompositionSeries(v *Valuation, account string, r Range, period Period) iter.Seq2[Composition, error] {
	return func(yield func(Composition, error) bool) {
		for on := range r.Samples(period) {
			c, err := CompositionOf(v, account, on)
			if !yield(c, err) || err != nil {
				return
			}
		}
	}
}
