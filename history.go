package invtrack

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// history stores a chronological series of decimal values, each associated
// with a specific date. It ensures that dates are unique and the series is
// always sorted, so carry-forward lookups can binary search.
type history struct {
	days   []Date
	values []decimal.Decimal
}

// Len returns the number of points in the history.
func (h *history) Len() int { return len(h.days) }

// Append adds a point to the history. An existing value at that date is
// overwritten: the last write wins.
func (h *history) Append(on Date, v decimal.Decimal) {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
}

// Get returns the value exactly at 'day', if any.
func (h *history) Get(day Date) (decimal.Decimal, bool) {
	i, found := h.search(day)
	if !found {
		return decimal.Decimal{}, false
	}
	return h.values[i], true
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it (carry-forward, never interpolation). It returns false when no
// point exists on or before the day.
func (h *history) ValueAsOf(day Date) (decimal.Decimal, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	// 'i' is the insertion index; the last entry before the target is at i-1.
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return h.values[i-1], true
}

// Latest returns the most recent point in the history.
func (h *history) Latest() (Date, decimal.Decimal, bool) {
	if len(h.days) == 0 {
		return Date{}, decimal.Decimal{}, false
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last], true
}

// Values returns an iterator over all date/value pairs within the range,
// in chronological order.
func (h *history) Values(r Range) iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if on.Before(r.From) {
				continue
			}
			if on.After(r.To) {
				return
			}
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

func (h *history) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})
}
