package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

// --- Add Account Command ---

type addAccountCmd struct {
	name     string
	code     string
	currency string
	created  string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "declare a new account in the ledger" }
func (*addAccountCmd) Usage() string {
	return `ivt add-account -n <name> -c <currency> [-code <code>] [-d <date>]

  Declares a new account. The currency is the account's reporting currency.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Account name (unique identifier)")
	f.StringVar(&c.code, "code", "", "Optional short code for display")
	f.StringVar(&c.currency, "c", "EUR", "Reporting currency (e.g. USD, EUR)")
	f.StringVar(&c.created, "d", "", "Creation date (YYYY-MM-DD, defaults to today)")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.created)
	if err != nil {
		return fail(err)
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	err = ledger.AddAccount(invtrack.Account{Name: c.name, Code: c.code, Currency: c.currency, Created: day})
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Account %q created.\n", c.name)
	return subcommands.ExitSuccess
}

// --- Delete Account Command ---

type deleteAccountCmd struct {
	name string
}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete an account with no transactions" }
func (*deleteAccountCmd) Usage() string {
	return `ivt delete-account -n <name>

  Deletes an account. Fails if the account still has transactions, so the
  log never holds orphaned entries.
`
}

func (c *deleteAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Account name")
}

func (c *deleteAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteAccount(c.name); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Account %q deleted.\n", c.name)
	return subcommands.ExitSuccess
}
