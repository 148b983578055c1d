package invtrack

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestImportPrices(t *testing.T) {
	l := setupLedger(t)
	csv := `share,date,price,currency
ACME,2024-01-10,50.5,EUR
ACME,2024-01-11,51,EUR
WIDG,2024-01-10,30,USD
`
	n, err := ImportPrices(strings.NewReader(csv), l)
	if err != nil {
		t.Fatalf("ImportPrices() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d observations, want 3", n)
	}
	got, ok := l.PriceAsOf("ACME", day(2024, time.January, 11))
	if !ok || !got.Equal(EUR(51)) {
		t.Errorf("PriceAsOf(ACME) = %v %v, want 51 EUR", got, ok)
	}
}

func TestImportPrices_RejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		csv  string
	}{
		{"wrong header", "ticker,day,value,cur\nACME,2024-01-10,50,EUR\n"},
		{"missing header", "ACME,2024-01-10,50,EUR\n"},
		{"bad date", "share,date,price,currency\nACME,January,50,EUR\n"},
		{"bad price", "share,date,price,currency\nACME,2024-01-10,abc,EUR\n"},
		{"unknown share", "share,date,price,currency\nNOPE,2024-01-10,50,EUR\n"},
		{"currency mismatch", "share,date,price,currency\nACME,2024-01-10,50,USD\n"},
		{"negative price", "share,date,price,currency\nACME,2024-01-10,-50,EUR\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := setupLedger(t)
			if _, err := ImportPrices(strings.NewReader(tc.csv), l); err == nil {
				t.Error("ImportPrices() succeeded, want error")
			}
		})
	}
}

func TestImportPrices_StopsAtFirstError(t *testing.T) {
	l := setupLedger(t)
	csv := `share,date,price,currency
ACME,2024-01-10,50,EUR
NOPE,2024-01-11,10,EUR
ACME,2024-01-12,52,EUR
`
	n, err := ImportPrices(strings.NewReader(csv), l)
	if err == nil {
		t.Fatal("ImportPrices() succeeded, want error on unknown share")
	}
	if n != 1 {
		t.Errorf("applied %d rows before the error, want 1", n)
	}
	// the row before the error stays applied, like a sequence of live writes
	if _, ok := l.PriceAsOf("ACME", day(2024, time.January, 10)); !ok {
		t.Error("valid row before the error was not applied")
	}
	// PriceAsOf carries forward, so count the exact observations instead.
	var dates []Date
	for on := range l.PricesFor("ACME", Forever()) {
		dates = append(dates, on)
	}
	if len(dates) != 1 || dates[0] != day(2024, time.January, 10) {
		t.Errorf("observations = %v, want only the row before the error", dates)
	}
}

func TestExportFields(t *testing.T) {
	l := setupLedger(t)
	observe(t, l, "ACME", day(2024, time.January, 10), EUR(50))

	var buf bytes.Buffer
	if err := ExportFields(&buf, l); err != nil {
		t.Fatalf("ExportFields() failed: %v", err)
	}
	out := buf.String()
	wants := []string{
		"entity,field,value",
		"account:broker,name,broker",
		"account:broker,currency,EUR",
		"share:ACME,ticker,ACME",
		"share:ACME,currency,EUR",
		"price:ACME:2024-01-10,price,50",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("export missing line %q in:\n%s", want, out)
		}
	}
}

func TestImportProviderJSON(t *testing.T) {
	l := setupLedger(t)
	// shape of a typical provider chart export
	payload := `{
	  "symbol": "ACME",
	  "chart": {
	    "dates": ["2024-01-10", "2024-01-11", "2024-01-12"],
	    "closes": [50.5, 51, "51.8"]
	  }
	}`
	n, err := ImportProviderJSON(strings.NewReader(payload), l, ProviderImport{
		Share:     "ACME",
		DatePath:  "$.chart.dates",
		PricePath: "$.chart.closes",
	})
	if err != nil {
		t.Fatalf("ImportProviderJSON() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d observations, want 3", n)
	}
	got, ok := l.PriceAsOf("ACME", day(2024, time.January, 12))
	if !ok || !got.Equal(EUR(51.8)) {
		t.Errorf("PriceAsOf(ACME) = %v %v, want 51.8 EUR", got, ok)
	}
}

func TestImportProviderJSON_LengthMismatch(t *testing.T) {
	l := setupLedger(t)
	payload := `{"dates": ["2024-01-10", "2024-01-11"], "closes": [50]}`
	_, err := ImportProviderJSON(strings.NewReader(payload), l, ProviderImport{
		Share:     "ACME",
		DatePath:  "$.dates",
		PricePath: "$.closes",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("ImportProviderJSON() = %v, want ValidationError", err)
	}
}
