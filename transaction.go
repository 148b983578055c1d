package invtrack

import (
	"fmt"
)

// TxType identifies the kind of a transaction. The type defines the cash
// and asset impact of the transaction on its account.
type TxType string

const (
	TxBuy      TxType = "buy"      // cash out, asset in
	TxSell     TxType = "sell"     // cash in, asset out
	TxDeposit  TxType = "deposit"  // external cash in
	TxWithdraw TxType = "withdraw" // external cash out
	TxDividend TxType = "dividend" // cash in, tied to a share
	TxFee      TxType = "fee"      // cash out, expensed
)

// ParseTxType parses a transaction type name.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxBuy, TxSell, TxDeposit, TxWithdraw, TxDividend, TxFee:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// cashSign returns the sign of the cash impact of a transaction type.
func (t TxType) cashSign() int {
	switch t {
	case TxBuy, TxWithdraw, TxFee:
		return -1
	case TxSell, TxDeposit, TxDividend:
		return +1
	default:
		return 0
	}
}

// hasAsset reports whether the type moves shares in or out of the account.
func (t TxType) hasAsset() bool { return t == TxBuy || t == TxSell }

// needsShare reports whether the type must reference a share.
func (t TxType) needsShare() bool { return t == TxBuy || t == TxSell || t == TxDividend }

// Transaction records a single operation on an account. The transaction
// log is the source of truth: holdings and balances are always derived
// from it, never stored.
type Transaction struct {
	Account   string   // account name
	Share     string   // share ticker; empty for cash-only types
	Date      Date     // day the operation took place
	Type      TxType   // kind of operation
	Quantity  Quantity // signed: positive buys in, negative sells out; cash amount for cash-only types
	UnitPrice Money    // price per unit; M(1, currency) for cash-only types
	Fees      Money    // expensed, never capitalized into basis
	Memo      string   // optional free-text note
}

// NewBuy records the purchase of quantity units of a share at unitPrice.
func NewBuy(account, share string, on Date, quantity Quantity, unitPrice, fees Money, memo string) Transaction {
	return Transaction{Account: account, Share: share, Date: on, Type: TxBuy,
		Quantity: quantity, UnitPrice: unitPrice, Fees: fees, Memo: memo}
}

// NewSell records the sale of quantity units of a share at unitPrice.
// The quantity is given positive and stored signed (negative).
func NewSell(account, share string, on Date, quantity Quantity, unitPrice, fees Money, memo string) Transaction {
	return Transaction{Account: account, Share: share, Date: on, Type: TxSell,
		Quantity: quantity.Abs().Neg(), UnitPrice: unitPrice, Fees: fees, Memo: memo}
}

// NewDeposit records an external cash entry into the account.
func NewDeposit(account string, on Date, amount Money, memo string) Transaction {
	return Transaction{Account: account, Date: on, Type: TxDeposit,
		Quantity: Q(amount.Amount()), UnitPrice: M(1, amount.Currency()), Memo: memo}
}

// NewWithdraw records an external cash exit out of the account.
func NewWithdraw(account string, on Date, amount Money, memo string) Transaction {
	return Transaction{Account: account, Date: on, Type: TxWithdraw,
		Quantity: Q(amount.Amount()), UnitPrice: M(1, amount.Currency()), Memo: memo}
}

// NewDividend records a dividend payment received for a share.
func NewDividend(account, share string, on Date, amount Money, memo string) Transaction {
	return Transaction{Account: account, Share: share, Date: on, Type: TxDividend,
		Quantity: Q(amount.Amount()), UnitPrice: M(1, amount.Currency()), Memo: memo}
}

// NewFee records a management or movement fee charged to the account.
func NewFee(account string, on Date, amount Money, memo string) Transaction {
	return Transaction{Account: account, Date: on, Type: TxFee,
		Quantity: Q(amount.Amount()), UnitPrice: M(1, amount.Currency()), Memo: memo}
}

// Currency returns the currency the transaction is denominated in.
func (t Transaction) Currency() string { return t.UnitPrice.Currency() }

// CashAmount returns the signed cash impact of the transaction, fees
// included. Buys and sells move gross amount minus or plus fees; cash-only
// types move their amount directly.
func (t Transaction) CashAmount() Money {
	gross := t.UnitPrice.Mul(t.Quantity.Abs())
	switch t.Type.cashSign() {
	case +1:
		return gross.Sub(t.Fees)
	case -1:
		return gross.Add(t.Fees).Neg()
	default:
		return M(0, t.Currency())
	}
}

// AssetDelta returns the signed change in share quantity caused by the
// transaction, zero for cash-only types.
func (t Transaction) AssetDelta() Quantity {
	if !t.Type.hasAsset() {
		return Q(0)
	}
	return t.Quantity
}

// Equal reports whether two transactions are identical.
func (t Transaction) Equal(o Transaction) bool {
	return t.Account == o.Account && t.Share == o.Share && t.Date == o.Date &&
		t.Type == o.Type && t.Quantity.Equal(o.Quantity) &&
		t.UnitPrice.Equal(o.UnitPrice) && t.Fees.Equal(o.Fees) && t.Memo == o.Memo
}

// validate checks the transaction against the ledger state. It returns the
// validated (and potentially fixed) transaction or a ValidationError.
func (t Transaction) validate(l *Ledger) (Transaction, error) {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return t, validationf("transaction", "%v", err)
	}
	account, ok := l.accounts[t.Account]
	if !ok {
		return t, validationf("transaction", "account %q does not exist", t.Account)
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if t.Date.Before(account.Created) {
		return t, validationf("transaction", "date %s is before account %q creation %s", t.Date, t.Account, account.Created)
	}
	if t.Quantity.IsZero() {
		return t, validationf("transaction", "quantity must not be zero")
	}

	if t.Type.needsShare() {
		share, ok := l.shares[t.Share]
		if !ok {
			return t, validationf("transaction", "share %q does not exist", t.Share)
		}
		// quick fix: default the currency to the share's quoted currency.
		if t.Currency() == "" {
			t.UnitPrice = M(t.UnitPrice.Amount(), share.Currency)
		} else if t.Currency() != share.Currency {
			return t, validationf("transaction", "currency %s does not match share %q currency %s", t.Currency(), t.Share, share.Currency)
		}
	} else if t.Share != "" {
		return t, validationf("transaction", "%s transaction must not reference a share", t.Type)
	}

	switch t.Type {
	case TxBuy:
		if !t.Quantity.IsPositive() {
			return t, validationf("transaction", "buy quantity must be positive, got %s", t.Quantity)
		}
	case TxSell:
		if !t.Quantity.IsNegative() {
			return t, validationf("transaction", "sell quantity must be negative, got %s", t.Quantity)
		}
	default:
		if !t.Quantity.IsPositive() {
			return t, validationf("transaction", "%s amount must be positive, got %s", t.Type, t.Quantity)
		}
	}

	if t.UnitPrice.IsNegative() {
		return t, validationf("transaction", "unit price must not be negative, got %v", t.UnitPrice)
	}
	if t.Fees.IsNegative() {
		return t, validationf("transaction", "fees must not be negative, got %v", t.Fees)
	}
	if !t.Fees.IsZero() && t.Fees.Currency() != "" && t.Fees.Currency() != t.Currency() {
		return t, validationf("transaction", "fees currency %s does not match transaction currency %s", t.Fees.Currency(), t.Currency())
	}
	return t, nil
}
