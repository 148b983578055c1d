package invtrack

import (
	"iter"
	"log"
	"maps"
	"slices"
	"sort"
	"sync"
)

// Account holds cash and shares. Its name is its identifier.
type Account struct {
	Name     string // unique identifier
	Code     string // optional short code for display
	Currency string // base currency for reporting
	Created  Date   // no transaction may predate this
}

// Share represents a tradeable asset, such as a stock, fund, or a currency
// pair whose prices are exchange rates. Its ticker is its identifier, and
// its identity is immutable once referenced by a transaction or price.
type Share struct {
	Ticker   string // unique identifier
	Name     string // display name
	Currency string // currency the share is quoted in
}

// Price is a single price observation for a share on a date.
// Observations are unique per (share, date); recording twice replaces.
type Price struct {
	Share string
	Date  Date
	Value Money
}

// Ledger is the store for accounts, shares, price observations and
// transactions. It holds pure data and performs no computation beyond
// write-time validation; the engines only read from it.
//
// Writes are serialized and reads may run concurrently, so chart rendering
// can query while the UI records.
type Ledger struct {
	mu           sync.RWMutex
	accounts     map[string]Account
	shares       map[string]Share
	prices       map[string]*history // price history per share ticker
	transactions []Transaction       // in chronological order
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[string]Account),
		shares:   make(map[string]Share),
		prices:   make(map[string]*history),
	}
}

// AddAccount declares a new account. The creation date defaults to today.
func (l *Ledger) AddAccount(a Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a.Name == "" {
		return validationf("account", "name is missing")
	}
	if a.Currency == "" {
		return validationf("account", "base currency is missing")
	}
	if _, exists := l.accounts[a.Name]; exists {
		return validationf("account", "account %q already exists", a.Name)
	}
	if a.Created.IsZero() {
		a.Created = Today()
	}
	l.accounts[a.Name] = a
	return nil
}

// DeleteAccount removes an account. It fails when the account still has
// transactions: the log may never hold orphaned entries.
func (l *Ledger) DeleteAccount(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.accounts[name]; !exists {
		return validationf("account", "account %q does not exist", name)
	}
	for _, tx := range l.transactions {
		if tx.Account == name {
			return validationf("account", "account %q still has transactions", name)
		}
	}
	delete(l.accounts, name)
	return nil
}

// AddShare declares a new share.
func (l *Ledger) AddShare(s Share) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s.Ticker == "" {
		return validationf("share", "ticker is missing")
	}
	if s.Currency == "" {
		return validationf("share", "quoted currency is missing")
	}
	if _, exists := l.shares[s.Ticker]; exists {
		return validationf("share", "share %q already exists", s.Ticker)
	}
	l.shares[s.Ticker] = s
	return nil
}

// RecordTransaction validates and appends a transaction, maintaining the
// chronological order of the log. It returns the recorded (and potentially
// fixed) transaction. On error nothing is applied.
func (l *Ledger) RecordTransaction(tx Transaction) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx, err := tx.validate(l)
	if err != nil {
		return tx, err
	}
	l.transactions = append(l.transactions, tx)
	l.stableSort()
	return tx, nil
}

// RecordPrice validates and stores a price observation. An observation for
// the same (share, date) is replaced, keeping the series unique per day.
func (l *Ledger) RecordPrice(p Price) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	share, ok := l.shares[p.Share]
	if !ok {
		return validationf("price", "share %q does not exist", p.Share)
	}
	if !p.Value.IsPositive() {
		return validationf("price", "price must be positive, got %v", p.Value)
	}
	if p.Date.IsZero() {
		return validationf("price", "date is missing")
	}
	if p.Value.Currency() != "" && p.Value.Currency() != share.Currency {
		return validationf("price", "currency %s does not match share %q currency %s", p.Value.Currency(), p.Share, share.Currency)
	}
	h, ok := l.prices[p.Share]
	if !ok {
		h = &history{}
		l.prices[p.Share] = h
	}
	if old, exists := h.Get(p.Date); exists && !old.Equal(p.Value.Amount()) {
		log.Printf("%s: replace %s price %s with %s", p.Date, p.Share, old, p.Value.Amount())
	}
	h.Append(p.Date, p.Value.Amount())
	return nil
}

// stableSort sorts the log by transaction date. The sort is stable, so
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Account returns the account with this name.
func (l *Ledger) Account(name string) (Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[name]
	return a, ok
}

// Share returns the share with this ticker.
func (l *Ledger) Share(ticker string) (Share, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.shares[ticker]
	return s, ok
}

// Accounts iterates over all accounts, sorted by name.
func (l *Ledger) Accounts() iter.Seq[Account] {
	l.mu.RLock()
	names := slices.Sorted(maps.Keys(l.accounts))
	accounts := make([]Account, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, l.accounts[name])
	}
	l.mu.RUnlock()
	return slices.Values(accounts)
}

// Shares iterates over all shares, sorted by ticker.
func (l *Ledger) Shares() iter.Seq[Share] {
	l.mu.RLock()
	tickers := slices.Sorted(maps.Keys(l.shares))
	shares := make([]Share, 0, len(tickers))
	for _, ticker := range tickers {
		shares = append(shares, l.shares[ticker])
	}
	l.mu.RUnlock()
	return slices.Values(shares)
}

// TransactionsFor returns an iterator over an account's transactions
// within the range, in chronological order.
func (l *Ledger) TransactionsFor(account string, r Range) iter.Seq[Transaction] {
	l.mu.RLock()
	txs := make([]Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if tx.Account == account && r.Contains(tx.Date) {
			txs = append(txs, tx)
		}
	}
	l.mu.RUnlock()
	return slices.Values(txs)
}

// PricesFor returns an iterator over a share's price observations within
// the range, in chronological order.
func (l *Ledger) PricesFor(share string, r Range) iter.Seq2[Date, Money] {
	l.mu.RLock()
	cur := ""
	if s, ok := l.shares[share]; ok {
		cur = s.Currency
	}
	type point struct {
		on    Date
		value Money
	}
	var points []point
	if h, ok := l.prices[share]; ok {
		for on, v := range h.Values(r) {
			points = append(points, point{on, M(v, cur)})
		}
	}
	l.mu.RUnlock()
	return func(yield func(Date, Money) bool) {
		for _, p := range points {
			if !yield(p.on, p.value) {
				return
			}
		}
	}
}

// PriceAsOf returns the latest price observation for a share on or before
// a date (carry-forward). It returns false when none exists.
func (l *Ledger) PriceAsOf(share string, on Date) (Money, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.priceAsOf(share, on)
}

// priceAsOf is the lock-free variant for internal use.
func (l *Ledger) priceAsOf(share string, on Date) (Money, bool) {
	h, ok := l.prices[share]
	if !ok {
		return Money{}, false
	}
	v, ok := h.ValueAsOf(on)
	if !ok {
		return Money{}, false
	}
	return M(v, l.shares[share].Currency), true
}

// SharesTraded iterates over the tickers of all shares ever transacted in
// an account, sorted, regardless of the current position.
func (l *Ledger) SharesTraded(account string) iter.Seq[string] {
	l.mu.RLock()
	seen := make(map[string]struct{})
	for _, tx := range l.transactions {
		if tx.Account == account && tx.Share != "" && tx.Type.hasAsset() {
			seen[tx.Share] = struct{}{}
		}
	}
	l.mu.RUnlock()
	return slices.Values(slices.Sorted(maps.Keys(seen)))
}

// Currencies iterates over all currencies appearing in an account's
// transactions, sorted. The account base currency is always included.
func (l *Ledger) Currencies(account string) iter.Seq[string] {
	l.mu.RLock()
	seen := make(map[string]struct{})
	if a, ok := l.accounts[account]; ok {
		seen[a.Currency] = struct{}{}
	}
	for _, tx := range l.transactions {
		if tx.Account == account && tx.Currency() != "" {
			seen[tx.Currency()] = struct{}{}
		}
	}
	l.mu.RUnlock()
	return slices.Values(slices.Sorted(maps.Keys(seen)))
}

// CashBalance computes the cash held by an account in a specific currency
// on a specific date, from the transaction log.
func (l *Ledger) CashBalance(account, currency string, on Date) Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	balance := M(0, currency)
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			// The log is sorted by date, so it is safe to break.
			break
		}
		if tx.Account != account || tx.Currency() != currency {
			continue
		}
		balance = balance.Add(tx.CashAmount())
	}
	return balance
}

// OldestTransactionDate returns the date of the earliest transaction of an
// account, or the zero date when it has none.
func (l *Ledger) OldestTransactionDate(account string) Date {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tx := range l.transactions {
		if tx.Account == account {
			return tx.Date
		}
	}
	return Date{}
}
