package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

// recordTransaction validates and records a transaction, then saves the
// ledger. The shared tail of every transaction command.
func recordTransaction(tx invtrack.Transaction) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	recorded, err := ledger.RecordTransaction(tx)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s on %s.\n", recorded.Type, recorded.Date)
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct {
	account  string
	share    string
	date     string
	quantity float64
	price    float64
	currency string
	fees     float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `ivt buy -a <account> -s <share> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <memo>]

  Purchases shares. The total cost, fees included, is debited from the
  account's cash in the share's quoted currency.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.share, "s", "", "Share ticker")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares (fractional allowed)")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", "", "Currency of the price (defaults to the share's quoted currency)")
	f.Float64Var(&c.fees, "fees", 0, "Transaction fees")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.share == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewBuy(c.account, c.share, day,
		invtrack.Q(c.quantity), invtrack.M(c.price, c.currency), invtrack.M(c.fees, c.currency), c.memo))
}

// --- Sell Command ---

type sellCmd struct {
	account  string
	share    string
	date     string
	quantity float64
	price    float64
	currency string
	fees     float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `ivt sell -a <account> -s <share> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <memo>]

  Sells shares. The proceeds, minus fees, are credited to the account's
  cash in the share's quoted currency.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.share, "s", "", "Share ticker")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares to sell")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", "", "Currency of the price (defaults to the share's quoted currency)")
	f.Float64Var(&c.fees, "fees", 0, "Transaction fees")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.share == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewSell(c.account, c.share, day,
		invtrack.Q(c.quantity), invtrack.M(c.price, c.currency), invtrack.M(c.fees, c.currency), c.memo))
}

// --- Deposit Command ---

type depositCmd struct {
	account  string
	date     string
	amount   float64
	currency string
	memo     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit into an account" }
func (*depositCmd) Usage() string {
	return `ivt deposit -a <account> -amount <amount> -c <currency> [-d <date>] [-m <memo>]

  Records a cash deposit. Cash is kept in the deposit currency.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.amount, "amount", 0, "Amount of cash to deposit")
	f.StringVar(&c.currency, "c", "EUR", "Currency of the deposit (e.g. USD, EUR)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewDeposit(c.account, day, invtrack.M(c.amount, c.currency), c.memo))
}

// --- Withdraw Command ---

type withdrawCmd struct {
	account  string
	date     string
	amount   float64
	currency string
	memo     string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from an account" }
func (*withdrawCmd) Usage() string {
	return `ivt withdraw -a <account> -amount <amount> -c <currency> [-d <date>] [-m <memo>]

  Records a cash withdrawal from an account.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.amount, "amount", 0, "Amount of cash to withdraw")
	f.StringVar(&c.currency, "c", "EUR", "Currency of the withdrawal")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewWithdraw(c.account, day, invtrack.M(c.amount, c.currency), c.memo))
}

// --- Dividend Command ---

type dividendCmd struct {
	account  string
	share    string
	date     string
	amount   float64
	currency string
	memo     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment for a share" }
func (*dividendCmd) Usage() string {
	return `ivt dividend -a <account> -s <share> -amount <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a dividend payment. The amount is credited to the account's cash.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.share, "s", "", "Share ticker paying the dividend")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.amount, "amount", 0, "Total dividend amount received")
	f.StringVar(&c.currency, "c", "", "Currency of the dividend (defaults to the share's quoted currency)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.share == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewDividend(c.account, c.share, day, invtrack.M(c.amount, c.currency), c.memo))
}

// --- Fee Command ---

type feeCmd struct {
	account  string
	date     string
	amount   float64
	currency string
	memo     string
}

func (*feeCmd) Name() string     { return "fee" }
func (*feeCmd) Synopsis() string { return "record a standalone fee charged to an account" }
func (*feeCmd) Usage() string {
	return `ivt fee -a <account> -amount <amount> -c <currency> [-d <date>] [-m <memo>]

  Records a custody or management fee. The amount is debited from the
  account's cash and expensed, never capitalized into any position.
`
}

func (c *feeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.amount, "amount", 0, "Fee amount")
	f.StringVar(&c.currency, "c", "EUR", "Currency of the fee")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *feeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	return recordTransaction(invtrack.NewFee(c.account, day, invtrack.M(c.amount, c.currency), c.memo))
}
