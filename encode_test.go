package invtrack

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func setupEncoded(t *testing.T) *Ledger {
	t.Helper()
	l := setupLedger(t)
	record(t, l, NewDeposit("broker", day(2024, time.January, 5), EUR(1000), "seed"))
	record(t, l, NewBuy("broker", "ACME", day(2024, time.January, 10), Q(10.5), EUR(50), EUR(2), ""))
	record(t, l, NewSell("broker", "ACME", day(2024, time.February, 10), Q(3), EUR(55), NO(0), "trim"))
	observe(t, l, "ACME", day(2024, time.January, 31), EUR(52.40))
	observe(t, l, "USDEUR", day(2024, time.January, 31), EUR(0.91))
	return l
}

func TestEncodeDecodeLedger(t *testing.T) {
	l := setupEncoded(t)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}

	// same accounts and shares
	if _, ok := decoded.Account("broker"); !ok {
		t.Error("account lost in round trip")
	}
	for _, ticker := range []string{"ACME", "WIDG", "USDEUR"} {
		if _, ok := decoded.Share(ticker); !ok {
			t.Errorf("share %s lost in round trip", ticker)
		}
	}

	// same transactions
	var want, got []Transaction
	for tx := range l.TransactionsFor("broker", Forever()) {
		want = append(want, tx)
	}
	for tx := range decoded.TransactionsFor("broker", Forever()) {
		got = append(got, tx)
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// same prices
	price, ok := decoded.PriceAsOf("ACME", day(2024, time.February, 1))
	if !ok || !price.Equal(EUR(52.40)) {
		t.Errorf("PriceAsOf(ACME) = %v %v, want 52.40 EUR", price, ok)
	}
}

func TestEncodeLedger_IsCanonical(t *testing.T) {
	l := setupEncoded(t)

	var first, second bytes.Buffer
	if err := EncodeLedger(&first, l); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if err := EncodeLedger(&second, decoded); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("encode-decode-encode is not stable:\n%s\nvs\n%s", first.String(), second.String())
	}
}

func TestEncodeLedger_DeclarationsFirst(t *testing.T) {
	l := setupEncoded(t)
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	sawData := false
	for _, line := range lines {
		isDecl := strings.Contains(line, `"record":"account"`) || strings.Contains(line, `"record":"share"`)
		if isDecl && sawData {
			t.Fatalf("declaration after data record: %s", line)
		}
		if !isDecl {
			sawData = true
		}
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"garbage line", "not json\n"},
		{"unknown record", `{"record":"wormhole"}` + "\n"},
		{"tx before account", `{"record":"tx","type":"deposit","date":"2024-01-05","account":"ghost","quantity":100,"price":1,"currency":"EUR"}` + "\n"},
		{"price before share", `{"record":"price","share":"GHOST","date":"2024-01-05","price":10}` + "\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.in)); err == nil {
				t.Error("DecodeLedger() succeeded, want error")
			}
		})
	}
}

func TestDecodeLedger_SkipsEmptyLines(t *testing.T) {
	in := `{"record":"account","name":"broker","currency":"EUR","created":"2024-01-01"}` + "\n\n"
	l, err := DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if _, ok := l.Account("broker"); !ok {
		t.Error("account not decoded")
	}
}
