package invtrack

import (
	"errors"
	"testing"
	"time"
)

// fakeRates is a RateProvider with a fixed table, for tests.
type fakeRates map[string]float64

func (r fakeRates) Rate(from, to string, on Date) (Quantity, error) {
	if from == to {
		return Q(1), nil
	}
	if rate, ok := r[from+to]; ok {
		return Q(rate), nil
	}
	return Q(0), &FxRateUnavailableError{From: from, To: to, On: on}
}

func setupValuation(t *testing.T) (*Ledger, *Valuation) {
	t.Helper()
	l := setupLedger(t)
	record(t, l, NewDeposit("broker", day(2020, time.January, 10), EUR(5000), ""))
	record(t, l, NewBuy("broker", "ACME", day(2020, time.January, 15), Q(10), EUR(90), NO(0), ""))
	observe(t, l, "ACME", day(2020, time.March, 31), EUR(100))
	observe(t, l, "ACME", day(2020, time.June, 30), EUR(120))
	return l, NewValuation(l, nil)
}

func TestValuation_Holding(t *testing.T) {
	l, v := setupValuation(t)
	record(t, l, NewBuy("broker", "ACME", day(2020, time.April, 1), Q(5), EUR(110), NO(0), ""))
	record(t, l, NewSell("broker", "ACME", day(2020, time.May, 1), Q(3), EUR(115), NO(0), ""))

	testCases := []struct {
		name string
		on   Date
		want Quantity
	}{
		{"before first buy", day(2020, time.January, 14), Q(0)},
		{"on first buy", day(2020, time.January, 15), Q(10)},
		{"after second buy", day(2020, time.April, 2), Q(15)},
		{"after sell", day(2020, time.May, 2), Q(12)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.Holding("broker", "ACME", tc.on); !got.Equal(tc.want) {
				t.Errorf("Holding(%v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestValuation_ShareValue_CarryForward(t *testing.T) {
	_, v := setupValuation(t)

	// Between the two observations the March price carries forward.
	got, err := v.ShareValue("broker", "ACME", day(2020, time.May, 1), "EUR")
	if err != nil {
		t.Fatalf("ShareValue() failed: %v", err)
	}
	if !got.Equal(EUR(1000)) { // 10 x 100, never interpolated
		t.Errorf("ShareValue(May 1) = %v, want %v", got, EUR(1000))
	}

	// On and after the June observation the new price applies.
	got, err = v.ShareValue("broker", "ACME", day(2020, time.July, 1), "EUR")
	if err != nil {
		t.Fatalf("ShareValue() failed: %v", err)
	}
	if !got.Equal(EUR(1200)) { // 10 x 120
		t.Errorf("ShareValue(Jul 1) = %v, want %v", got, EUR(1200))
	}
}

func TestValuation_LaterPricesDoNotLeakBack(t *testing.T) {
	l, v := setupValuation(t)

	before, err := v.ShareValue("broker", "ACME", day(2020, time.May, 1), "EUR")
	if err != nil {
		t.Fatal(err)
	}
	// Insert an observation dated after the valuation date.
	observe(t, l, "ACME", day(2020, time.May, 15), EUR(999))
	after, err := v.ShareValue("broker", "ACME", day(2020, time.May, 1), "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !before.Equal(after) {
		t.Errorf("valuation changed from %v to %v after inserting a later-dated price", before, after)
	}
}

func TestValuation_NoPriceData(t *testing.T) {
	_, v := setupValuation(t)

	// Holding is 10 since Jan 15 but the first observation is Mar 31.
	_, err := v.ShareValue("broker", "ACME", day(2020, time.February, 1), "EUR")
	var npd *NoPriceDataError
	if !errors.As(err, &npd) {
		t.Fatalf("ShareValue() = %v, want NoPriceDataError", err)
	}
	if npd.Share != "ACME" || npd.On != day(2020, time.February, 1) {
		t.Errorf("NoPriceDataError = %+v, want share ACME on 2020-02-01", npd)
	}
}

func TestValuation_ZeroHoldingIsZeroNotError(t *testing.T) {
	_, v := setupValuation(t)

	// WIDG was never traded: zero holding, no price data, still exactly zero.
	got, err := v.ShareValue("broker", "WIDG", day(2020, time.February, 1), "EUR")
	if err != nil {
		t.Fatalf("ShareValue() = %v, want no error for a zero holding", err)
	}
	if !got.Equal(EUR(0)) {
		t.Errorf("ShareValue() = %v, want exactly zero", got)
	}
}

func TestValuation_SellAllThenValue(t *testing.T) {
	l, v := setupValuation(t)
	record(t, l, NewSell("broker", "ACME", day(2020, time.July, 1), Q(10), EUR(120), NO(0), ""))
	observe(t, l, "ACME", day(2020, time.July, 15), EUR(500))

	got, err := v.ShareValue("broker", "ACME", day(2020, time.August, 1), "EUR")
	if err != nil {
		t.Fatalf("ShareValue() failed: %v", err)
	}
	if !got.Equal(EUR(0)) {
		t.Errorf("value after selling all = %v, want 0 regardless of later prices", got)
	}
}

func TestValuation_Convert(t *testing.T) {
	l := setupLedger(t)
	v := NewValuation(l, fakeRates{"USDEUR": 0.9})

	got, err := v.Convert(USD(100), "EUR", day(2020, time.January, 1))
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if !got.Equal(EUR(90)) {
		t.Errorf("Convert(100 USD) = %v, want %v", got, EUR(90))
	}

	_, err = v.Convert(M(100, "GBP"), "EUR", day(2020, time.January, 1))
	var fx *FxRateUnavailableError
	if !errors.As(err, &fx) {
		t.Errorf("Convert(GBP) = %v, want FxRateUnavailableError", err)
	}
}

func TestLedgerRates(t *testing.T) {
	l := setupLedger(t)
	observe(t, l, "USDEUR", day(2020, time.January, 10), EUR(0.9))
	rates := LedgerRates{Ledger: l}

	t.Run("direct pair", func(t *testing.T) {
		got, err := rates.Rate("USD", "EUR", day(2020, time.January, 15))
		if err != nil {
			t.Fatalf("Rate() failed: %v", err)
		}
		if !got.Equal(Q(0.9)) {
			t.Errorf("Rate(USD,EUR) = %v, want 0.9", got)
		}
	})

	t.Run("inverse pair", func(t *testing.T) {
		got, err := rates.Rate("EUR", "USD", day(2020, time.January, 15))
		if err != nil {
			t.Fatalf("Rate() failed: %v", err)
		}
		// 1 / 0.9
		want := Q(1).Div(Q(0.9))
		if !got.Equal(want) {
			t.Errorf("Rate(EUR,USD) = %v, want %v", got, want)
		}
	})

	t.Run("same currency", func(t *testing.T) {
		got, err := rates.Rate("EUR", "EUR", day(2020, time.January, 15))
		if err != nil || !got.Equal(Q(1)) {
			t.Errorf("Rate(EUR,EUR) = %v %v, want 1", got, err)
		}
	})

	t.Run("unknown pair", func(t *testing.T) {
		_, err := rates.Rate("GBP", "EUR", day(2020, time.January, 15))
		var fx *FxRateUnavailableError
		if !errors.As(err, &fx) {
			t.Errorf("Rate(GBP,EUR) = %v, want FxRateUnavailableError", err)
		}
	})
}

func TestValuation_AccountValue_MultiCurrency(t *testing.T) {
	l := setupLedger(t)
	record(t, l, NewDeposit("broker", day(2020, time.January, 10), EUR(1000), ""))
	record(t, l, NewDeposit("broker", day(2020, time.January, 10), USD(500), ""))
	record(t, l, NewBuy("broker", "WIDG", day(2020, time.January, 15), Q(10), USD(30), NO(0), ""))
	observe(t, l, "WIDG", day(2020, time.January, 31), USD(40))
	observe(t, l, "USDEUR", day(2020, time.January, 31), EUR(0.9))

	v := NewValuation(l, nil)
	got, err := v.AccountValue("broker", day(2020, time.February, 1), "EUR")
	if err != nil {
		t.Fatalf("AccountValue() failed: %v", err)
	}
	// shares: 10 x 40 USD x 0.9 = 360 EUR
	// cash: 1000 EUR + (500 - 300) USD x 0.9 = 1180 EUR
	if !got.Equal(EUR(1540)) {
		t.Errorf("AccountValue() = %v, want %v", got, EUR(1540))
	}
}

func TestValuation_UnknownAccount(t *testing.T) {
	_, v := setupValuation(t)
	_, err := v.AccountValue("nope", day(2020, time.May, 1), "EUR")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("AccountValue(unknown) = %v, want ValidationError", err)
	}
}
