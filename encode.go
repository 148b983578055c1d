package invtrack

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL: one record per line, identified by its
// "record" field. Records are written in declaration order (accounts,
// shares, then transactions and prices chronologically) and with a fixed
// key order, so two encodings of the same ledger are byte-identical and
// the file diffs cleanly under version control.

// record kinds, the first field of every line.
const (
	recAccount = "account"
	recShare   = "share"
	recTx      = "tx"
	recPrice   = "price"
)

// EncodeLedger writes the full ledger to w in canonical JSONL form.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for a := range l.Accounts() {
		var o jsonObjectWriter
		o.Append("record", recAccount)
		o.Append("name", a.Name)
		o.Optional("code", a.Code)
		o.Append("currency", a.Currency)
		o.Append("created", a.Created)
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	for s := range l.Shares() {
		var o jsonObjectWriter
		o.Append("record", recShare)
		o.Append("ticker", s.Ticker)
		o.Optional("name", s.Name)
		o.Append("currency", s.Currency)
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	l.mu.RLock()
	txs := slices.Clone(l.transactions)
	l.mu.RUnlock()
	for _, tx := range txs {
		var o jsonObjectWriter
		o.Append("record", recTx)
		o.Append("type", string(tx.Type))
		o.Append("date", tx.Date)
		o.Append("account", tx.Account)
		o.Optional("share", tx.Share)
		o.Append("quantity", tx.Quantity)
		o.Append("price", tx.UnitPrice.Amount())
		o.Append("currency", tx.Currency())
		if !tx.Fees.IsZero() {
			o.Append("fees", tx.Fees.Amount())
		}
		o.Optional("memo", tx.Memo)
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	for s := range l.Shares() {
		for on, value := range l.PricesFor(s.Ticker, Forever()) {
			var o jsonObjectWriter
			o.Append("record", recPrice)
			o.Append("share", s.Ticker)
			o.Append("date", on)
			o.Append("price", value.Amount())
			if err := writeLine(w, &o); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// DecodeLedger reads a JSONL stream and rebuilds the ledger, running every
// record through the same validation as a live write. Lines are processed
// in order, so declarations must precede the records that reference them,
// which EncodeLedger guarantees.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: cannot identify record: %w", line, err)
		}
		var err error
		switch identifier.Record {
		case recAccount:
			var rec struct {
				Name     string `json:"name"`
				Code     string `json:"code"`
				Currency string `json:"currency"`
				Created  Date   `json:"created"`
			}
			if err = json.Unmarshal(raw, &rec); err == nil {
				err = ledger.AddAccount(Account{Name: rec.Name, Code: rec.Code, Currency: rec.Currency, Created: rec.Created})
			}
		case recShare:
			var rec struct {
				Ticker   string `json:"ticker"`
				Name     string `json:"name"`
				Currency string `json:"currency"`
			}
			if err = json.Unmarshal(raw, &rec); err == nil {
				err = ledger.AddShare(Share{Ticker: rec.Ticker, Name: rec.Name, Currency: rec.Currency})
			}
		case recTx:
			var rec struct {
				Type     string          `json:"type"`
				Date     Date            `json:"date"`
				Account  string          `json:"account"`
				Share    string          `json:"share"`
				Quantity Quantity        `json:"quantity"`
				Price    decimal.Decimal `json:"price"`
				Currency string          `json:"currency"`
				Fees     decimal.Decimal `json:"fees"`
				Memo     string          `json:"memo"`
			}
			if err = json.Unmarshal(raw, &rec); err == nil {
				var typ TxType
				typ, err = ParseTxType(rec.Type)
				if err == nil {
					// absent fees stay currency-less, like a fresh transaction
					feeCur := ""
					if !rec.Fees.IsZero() {
						feeCur = rec.Currency
					}
					tx := Transaction{
						Account:   rec.Account,
						Share:     rec.Share,
						Date:      rec.Date,
						Type:      typ,
						Quantity:  rec.Quantity,
						UnitPrice: M(rec.Price, rec.Currency),
						Fees:      M(rec.Fees, feeCur),
						Memo:      rec.Memo,
					}
					_, err = ledger.RecordTransaction(tx)
				}
			}
		case recPrice:
			var rec struct {
				Share string          `json:"share"`
				Date  Date            `json:"date"`
				Price decimal.Decimal `json:"price"`
			}
			if err = json.Unmarshal(raw, &rec); err == nil {
				cur := ""
				if s, ok := ledger.Share(rec.Share); ok {
					cur = s.Currency
				}
				err = ledger.RecordPrice(Price{Share: rec.Share, Date: rec.Date, Value: M(rec.Price, cur)})
			}
		default:
			err = fmt.Errorf("unknown record kind %q", identifier.Record)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return ledger, nil
}
