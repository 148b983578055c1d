package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validate and rewrite the ledger file into canonical form"
}
func (*fmtCmd) Usage() string {
	return `ivt fmt

  Reads the ledger, validates every record, applies available quick-fixes,
  and writes the file back sorted with a fixed key order, so it diffs
  cleanly under version control.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Println("Ledger formatted.")
	return subcommands.ExitSuccess
}
