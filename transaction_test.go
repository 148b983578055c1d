package invtrack

import (
	"testing"
	"time"
)

func TestTransaction_CashAmount(t *testing.T) {
	on := day(2024, time.January, 10)
	testCases := []struct {
		name string
		tx   Transaction
		want Money
	}{
		{"buy debits gross plus fees", NewBuy("a", "S", on, Q(10), EUR(50), EUR(5), ""), EUR(-505)},
		{"sell credits gross minus fees", NewSell("a", "S", on, Q(10), EUR(50), EUR(5), ""), EUR(495)},
		{"deposit credits", NewDeposit("a", on, EUR(100), ""), EUR(100)},
		{"withdraw debits", NewWithdraw("a", on, EUR(100), ""), EUR(-100)},
		{"dividend credits", NewDividend("a", "S", on, EUR(12.5), ""), EUR(12.5)},
		{"fee debits", NewFee("a", on, EUR(3), ""), EUR(-3)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.CashAmount(); !got.Equal(tc.want) {
				t.Errorf("CashAmount() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTransaction_AssetDelta(t *testing.T) {
	on := day(2024, time.January, 10)
	testCases := []struct {
		name string
		tx   Transaction
		want Quantity
	}{
		{"buy adds", NewBuy("a", "S", on, Q(10), EUR(50), NO(0), ""), Q(10)},
		{"sell removes", NewSell("a", "S", on, Q(10), EUR(50), NO(0), ""), Q(-10)},
		{"deposit is cash only", NewDeposit("a", on, EUR(100), ""), Q(0)},
		{"dividend is cash only", NewDividend("a", "S", on, EUR(10), ""), Q(0)},
		{"fee is cash only", NewFee("a", on, EUR(3), ""), Q(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.AssetDelta(); !got.Equal(tc.want) {
				t.Errorf("AssetDelta() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewSell_NormalizesSign(t *testing.T) {
	on := day(2024, time.January, 10)
	// a positive quantity passed to NewSell is stored negative
	tx := NewSell("a", "S", on, Q(10), EUR(50), NO(0), "")
	if !tx.Quantity.Equal(Q(-10)) {
		t.Errorf("sell quantity = %v, want -10", tx.Quantity)
	}
	// already negative stays negative
	tx = NewSell("a", "S", on, Q(-10), EUR(50), NO(0), "")
	if !tx.Quantity.Equal(Q(-10)) {
		t.Errorf("sell quantity = %v, want -10", tx.Quantity)
	}
}

func TestParseTxType(t *testing.T) {
	for _, s := range []string{"buy", "sell", "deposit", "withdraw", "dividend", "fee"} {
		if _, err := ParseTxType(s); err != nil {
			t.Errorf("ParseTxType(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseTxType("short"); err == nil {
		t.Error("ParseTxType(short) succeeded, want error")
	}
}
