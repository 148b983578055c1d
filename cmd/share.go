package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
	"github.com/shopspring/decimal"
)

// --- Add Share Command ---

type addShareCmd struct {
	ticker   string
	name     string
	currency string
}

func (*addShareCmd) Name() string     { return "add-share" }
func (*addShareCmd) Synopsis() string { return "declare a new share in the ledger" }
func (*addShareCmd) Usage() string {
	return `ivt add-share -t <ticker> -c <currency> [-n <name>]

  Declares a new share. A currency pair like "USDEUR" quoted in EUR
  declares an exchange rate series usable for conversions.
`
}

func (c *addShareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Share ticker (unique identifier)")
	f.StringVar(&c.name, "n", "", "Display name")
	f.StringVar(&c.currency, "c", "EUR", "Currency the share is quoted in")
}

func (c *addShareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	err = ledger.AddShare(invtrack.Share{Ticker: c.ticker, Name: c.name, Currency: c.currency})
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Share %q created.\n", c.ticker)
	return subcommands.ExitSuccess
}

// --- Price Command ---

type priceCmd struct {
	ticker string
	date   string
	price  string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record a price observation for a share" }
func (*priceCmd) Usage() string {
	return `ivt price -t <ticker> -p <price> [-d <date>]

  Records a price observation in the share's quoted currency. Recording a
  second observation for the same day replaces the first.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Share ticker")
	f.StringVar(&c.date, "d", "", "Observation date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.price, "p", "", "Price of one unit, in the share's quoted currency")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	value, err := decimal.NewFromString(c.price)
	if err != nil {
		return fail(fmt.Errorf("invalid price %q: %w", c.price, err))
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	cur := ""
	if s, ok := ledger.Share(c.ticker); ok {
		cur = s.Currency
	}
	err = ledger.RecordPrice(invtrack.Price{Share: c.ticker, Date: day, Value: invtrack.M(value, cur)})
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Price recorded for %s on %s.\n", c.ticker, day)
	return subcommands.ExitSuccess
}
