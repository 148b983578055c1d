package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
	"github.com/invtrack/invtrack/renderer"
)

// --- Value Command ---

type valueCmd struct {
	account  string
	date     string
	currency string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "compute the total value of an account on a date" }
func (*valueCmd) Usage() string {
	return `ivt value -a <account> [-d <date>] [-c <currency>]

  Values every position at its latest known price on or before the date,
  plus cash. Fails when a held share has no usable price, rather than
  silently valuing it at zero.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Valuation date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.currency, "c", "", "Target currency (defaults to the account's reporting currency)")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	currency := c.currency
	if currency == "" {
		a, ok := ledger.Account(c.account)
		if !ok {
			return fail(fmt.Errorf("account %q does not exist", c.account))
		}
		currency = a.Currency
	}
	valuation := invtrack.NewValuation(ledger, nil)
	value, err := valuation.AccountValue(c.account, day, currency)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s on %s: %s\n", c.account, day, value)
	return subcommands.ExitSuccess
}

// --- Holding Command ---

type holdingCmd struct {
	account string
	date    string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the positions and cash of an account" }
func (*holdingCmd) Usage() string {
	return `ivt holding -a <account> [-d <date>]

  Displays what the account holds on a date: each position with its
  quantity, price and market value, and the cash balances per currency.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Report date (YYYY-MM-DD, defaults to today)")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	valuation := invtrack.NewValuation(ledger, nil)
	report, err := renderer.NewHolding(valuation, ledger, c.account, day)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderHolding(report))
	return subcommands.ExitSuccess
}
