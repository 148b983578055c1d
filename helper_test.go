package invtrack

import (
	"testing"
	"time"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a shorthand for dates in tests.
func day(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

// setupLedger creates a ledger with one EUR account, two shares and a
// currency pair, ready for transactions and prices.
func setupLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	if err := l.AddAccount(Account{Name: "broker", Currency: "EUR", Created: day(2020, 1, 1)}); err != nil {
		t.Fatalf("AddAccount() failed: %v", err)
	}
	if err := l.AddShare(Share{Ticker: "ACME", Name: "Acme Corp", Currency: "EUR"}); err != nil {
		t.Fatalf("AddShare(ACME) failed: %v", err)
	}
	if err := l.AddShare(Share{Ticker: "WIDG", Name: "Widget Inc", Currency: "USD"}); err != nil {
		t.Fatalf("AddShare(WIDG) failed: %v", err)
	}
	if err := l.AddShare(Share{Ticker: "USDEUR", Currency: "EUR"}); err != nil {
		t.Fatalf("AddShare(USDEUR) failed: %v", err)
	}
	return l
}

// record is a helper that fails the test on a rejected transaction.
func record(t *testing.T, l *Ledger, tx Transaction) {
	t.Helper()
	if _, err := l.RecordTransaction(tx); err != nil {
		t.Fatalf("RecordTransaction(%s %s) failed: %v", tx.Type, tx.Date, err)
	}
}

// observe is a helper that fails the test on a rejected price.
func observe(t *testing.T, l *Ledger, share string, on Date, price Money) {
	t.Helper()
	if err := l.RecordPrice(Price{Share: share, Date: on, Value: price}); err != nil {
		t.Fatalf("RecordPrice(%s %s) failed: %v", share, on, err)
	}
}
