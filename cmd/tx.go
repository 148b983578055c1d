package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

type txCmd struct {
	account string
	start   string
	end     string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list an account's transactions" }
func (*txCmd) Usage() string {
	return `ivt tx -a <account> [-s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists transactions of an account in chronological order, with options
  for filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.start, "s", "", "The start date for a custom range")
	f.StringVar(&c.end, "d", "", "The end date for the range (defaults to today)")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	r := invtrack.Forever()
	if c.start != "" || c.end != "" {
		end, err := parseDay(c.end)
		if err != nil {
			return fail(err)
		}
		start := invtrack.Date{}
		if c.start != "" {
			if start, err = invtrack.ParseDate(c.start); err != nil {
				return fail(err)
			}
		}
		r = invtrack.NewRange(start, end)
	}

	var transactions []invtrack.Transaction
	for tx := range ledger.TransactionsFor(c.account, r) {
		transactions = append(transactions, tx)
	}
	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	fmt.Println("| Date | Type | Share | Quantity | Price | Fees | Memo |")
	fmt.Println("|:---|:---|:---|---:|---:|---:|:---|")
	for _, tx := range transactions {
		fmt.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type, tx.Share, tx.Quantity, tx.UnitPrice, tx.Fees, tx.Memo)
	}
	return subcommands.ExitSuccess
}
