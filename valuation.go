package invtrack

// RateProvider supplies currency exchange rates. It is an injected
// capability so valuations can be computed against a faked rate source in
// tests. The rate is the value of 1 unit of 'from' expressed in 'to'.
type RateProvider interface {
	Rate(from, to string, on Date) (Quantity, error)
}

// LedgerRates reads exchange rates from currency-pair shares declared in
// the ledger: a share with ticker "USDEUR" quoted in EUR holds the price
// of 1 USD in EUR. When the direct pair is unknown the inverse pair is
// tried.
type LedgerRates struct {
	Ledger *Ledger
}

// Rate implements RateProvider.
func (lr LedgerRates) Rate(from, to string, on Date) (Quantity, error) {
	if from == to {
		return Q(1), nil
	}
	if rate, ok := lr.Ledger.PriceAsOf(from+to, on); ok {
		return Q(rate.Amount()), nil
	}
	if inverse, ok := lr.Ledger.PriceAsOf(to+from, on); ok && !inverse.IsZero() {
		return Q(1).Div(Q(inverse.Amount())), nil
	}
	return Q(0), &FxRateUnavailableError{From: from, To: to, On: on}
}

// Valuation computes, for any account or share and date, the quantity held
// and its value in a chosen currency. It only reads from the ledger; all
// lookups are pure in-memory calls.
type Valuation struct {
	ledger *Ledger
	rates  RateProvider
}

// NewValuation creates a valuation engine over a ledger. A nil rates
// provider defaults to the ledger's own currency-pair observations.
func NewValuation(ledger *Ledger, rates RateProvider) *Valuation {
	if rates == nil {
		rates = LedgerRates{Ledger: ledger}
	}
	return &Valuation{ledger: ledger, rates: rates}
}

// Holding computes the quantity of a share held by an account on a date:
// the sum of signed transaction quantities dated on or before it.
func (v *Valuation) Holding(account, share string, on Date) Quantity {
	position := Q(0)
	for tx := range v.ledger.TransactionsFor(account, Range{To: on}) {
		if tx.Share == share {
			position = position.Add(tx.AssetDelta())
		}
	}
	return position
}

// Convert converts a monetary amount into the target currency using the
// rate as of the given date.
func (v *Valuation) Convert(amount Money, currency string, on Date) (Money, error) {
	if amount.Currency() == currency || amount.Currency() == "" {
		return M(amount.Amount(), currency), nil
	}
	rate, err := v.rates.Rate(amount.Currency(), currency, on)
	if err != nil {
		return Money{}, err
	}
	return M(amount.Amount().Mul(rate.Decimal()), currency), nil
}

// SharePrice returns the carry-forward price of one unit of a share on a
// date, converted into the target currency. It fails with NoPriceDataError
// when no observation exists on or before the date.
func (v *Valuation) SharePrice(share string, on Date, currency string) (Money, error) {
	price, ok := v.ledger.PriceAsOf(share, on)
	if !ok {
		return Money{}, &NoPriceDataError{Share: share, On: on}
	}
	return v.Convert(price, currency, on)
}

// ShareValue computes the value of an account's position in a single share
// on a date, in the target currency.
//
// A zero holding is worth exactly zero and needs no price data; a non-zero
// holding with no qualifying price fails with NoPriceDataError.
func (v *Valuation) ShareValue(account, share string, on Date, currency string) (Money, error) {
	position := v.Holding(account, share, on)
	if position.IsZero() {
		return M(0, currency), nil
	}
	price, err := v.SharePrice(share, on, currency)
	if err != nil {
		return Money{}, err
	}
	return price.Mul(position), nil
}

// AccountValue computes the total value of an account on a date, in the
// target currency: every share position valued at its carry-forward price,
// plus the cash balances in every currency the account has seen.
func (v *Valuation) AccountValue(account string, on Date, currency string) (Money, error) {
	if _, ok := v.ledger.Account(account); !ok {
		return Money{}, validationf("account", "%q does not exist", account)
	}
	total := M(0, currency)
	for share := range v.ledger.SharesTraded(account) {
		value, err := v.ShareValue(account, share, on, currency)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(value)
	}
	for cur := range v.ledger.Currencies(account) {
		balance := v.ledger.CashBalance(account, cur, on)
		if balance.IsZero() {
			continue
		}
		converted, err := v.Convert(balance, currency, on)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(converted)
	}
	return total, nil
}
