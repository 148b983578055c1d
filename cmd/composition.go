package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
	"github.com/invtrack/invtrack/renderer"
)

type compositionCmd struct {
	account string
	date    string
}

func (*compositionCmd) Name() string { return "composition" }
func (*compositionCmd) Synopsis() string {
	return "break down an account's value across its positions"
}
func (*compositionCmd) Usage() string {
	return `ivt composition -a <account> [-d <date>]

  Partitions the account value across its positions and cash balances.
  Weights sum to 100%. An account worth zero has no composition.
`
}

func (c *compositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.date, "d", "", "Date of the breakdown (YYYY-MM-DD, defaults to today)")
}

func (c *compositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	composition, err := invtrack.CompositionOf(valuation, c.account, day)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderComposition(composition))
	return subcommands.ExitSuccess
}
