// Package cmd implements the CLI application to manage an investment ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

// Register registers all the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addAccountCmd{}, "ledger")
	c.Register(&deleteAccountCmd{}, "ledger")
	c.Register(&addShareCmd{}, "ledger")
	c.Register(&priceCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&feeCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&valueCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&seriesCmd{}, "reports")
	c.Register(&compositionCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")

	c.Register(&importPricesCmd{}, "import/export")
	c.Register(&importJSONCmd{}, "import/export")
	c.Register(&exportCmd{}, "import/export")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file (JSONL format)")

// loadLedger reads the app ledger file. A missing file is an empty ledger.
func loadLedger() (*invtrack.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return invtrack.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return invtrack.DecodeLedger(f)
}

// saveLedger writes the ledger back to the app ledger file in canonical
// form, via a temp file so a crash never leaves a half-written log.
func saveLedger(l *invtrack.Ledger) error {
	tmp := *ledgerFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cannot create ledger file %q: %w", tmp, err)
	}
	if err := invtrack.EncodeLedger(f, l); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot write ledger file %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot close ledger file %q: %w", tmp, err)
	}
	return os.Rename(tmp, *ledgerFile)
}

// fail prints the error to stderr and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown writes a rendered markdown report to stdout.
func printMarkdown(md string) { fmt.Println(md) }

// parseDay parses a date flag, defaulting the empty string to today.
func parseDay(s string) (invtrack.Date, error) {
	if s == "" {
		return invtrack.Today(), nil
	}
	return invtrack.ParseDate(s)
}
