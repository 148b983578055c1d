package invtrack

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains the bulk import/export formats. They should remain
// human readable, single file and easy to produce from a spreadsheet.

// priceHeader is the CSV price import header. It doubles as the format
// version marker: a future incompatible revision renames a column.
var priceHeader = []string{"share", "date", "price", "currency"}

// ImportPrices reads price observations from a CSV stream with columns
// "share,date,price,currency" and records them into the ledger. The header
// row is mandatory. The import stops at the first invalid row, and rows
// already applied stay applied, as with a sequence of live writes.
func ImportPrices(r io.Reader, l *Ledger) (n int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("cannot read price import header: %w", err)
	}
	if len(header) != len(priceHeader) {
		return 0, validationf("price", "unknown import format %v, want %v", header, priceHeader)
	}
	for i := range priceHeader {
		if header[i] != priceHeader[i] {
			return 0, validationf("price", "unknown import format %v, want %v", header, priceHeader)
		}
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("price import row %d: %w", n+1, err)
		}
		on, err := ParseDate(row[1])
		if err != nil {
			return n, validationf("price", "row %d: invalid date %q: %v", n+1, row[1], err)
		}
		value, err := decimal.NewFromString(row[2])
		if err != nil {
			return n, validationf("price", "row %d: invalid price %q: %v", n+1, row[2], err)
		}
		if err := l.RecordPrice(Price{Share: row[0], Date: on, Value: M(value, row[3])}); err != nil {
			return n, fmt.Errorf("price import row %d: %w", n+1, err)
		}
		n++
	}
}

// ExportFields writes the ledger's entities to w as CSV "entity,field,value"
// tuples, one field per row, with entities in the encoder's canonical
// order. The flat shape merges easily into any external database.
func ExportFields(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	write := func(entity, field, value string) {
		cw.Write([]string{entity, field, value})
	}
	if err := cw.Write([]string{"entity", "field", "value"}); err != nil {
		return fmt.Errorf("cannot write export header: %w", err)
	}
	for a := range l.Accounts() {
		entity := "account:" + a.Name
		write(entity, "name", a.Name)
		if a.Code != "" {
			write(entity, "code", a.Code)
		}
		write(entity, "currency", a.Currency)
		write(entity, "created", a.Created.String())
	}
	for s := range l.Shares() {
		entity := "share:" + s.Ticker
		write(entity, "ticker", s.Ticker)
		if s.Name != "" {
			write(entity, "name", s.Name)
		}
		write(entity, "currency", s.Currency)
	}
	for s := range l.Shares() {
		for on, value := range l.PricesFor(s.Ticker, Forever()) {
			write("price:"+s.Ticker+":"+on.String(), "price", value.Amount().String())
		}
	}
	cw.Flush()
	return cw.Error()
}

// ProviderImport describes how to pull price observations out of one
// provider's JSON export: two jsonpath expressions locating the dates and
// the prices of a share's series. Both must select lists of equal length.
type ProviderImport struct {
	Share     string // ticker the observations belong to
	DatePath  string // jsonpath selecting the observation dates
	PricePath string // jsonpath selecting the observation prices
}

// ImportProviderJSON reads a provider JSON export and records the selected
// price observations into the ledger. Providers disagree on every detail
// of their exports, so the caller supplies the paths.
func ImportProviderJSON(r io.Reader, l *Ledger, p ProviderImport) (n int, err error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return 0, fmt.Errorf("cannot parse provider JSON: %w", err)
	}
	dates, err := jsonpathList(p.DatePath, jobj)
	if err != nil {
		return 0, fmt.Errorf("cannot select dates: %w", err)
	}
	prices, err := jsonpathList(p.PricePath, jobj)
	if err != nil {
		return 0, fmt.Errorf("cannot select prices: %w", err)
	}
	if len(dates) != len(prices) {
		return 0, validationf("price", "provider JSON has %d dates but %d prices", len(dates), len(prices))
	}
	cur := ""
	if s, ok := l.Share(p.Share); ok {
		cur = s.Currency
	}
	for i := range dates {
		day, ok := dates[i].(string)
		if !ok {
			return n, validationf("price", "provider date %v is not a string", dates[i])
		}
		on, err := ParseDate(day)
		if err != nil {
			return n, validationf("price", "invalid provider date %q: %v", day, err)
		}
		value, err := asDecimal(prices[i])
		if err != nil {
			return n, validationf("price", "invalid provider price for %s: %v", day, err)
		}
		if err := l.RecordPrice(Price{Share: p.Share, Date: on, Value: M(value, cur)}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// jsonpathList evaluates a jsonpath expression and normalizes the result
// to a list. jsonpath is never clear about whether it returns a list or a
// single answer.
func jsonpathList(path string, jobj any) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok {
		return jlist, nil
	}
	return []any{jval}, nil
}

// asDecimal converts the numeric shapes providers emit, float64 or quoted
// string, into a decimal.
func asDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	}
	return decimal.Decimal{}, fmt.Errorf("not a number: %v (%T)", jval, jval)
}
