package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

// --- Import Prices Command ---

type importPricesCmd struct {
	file string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "bulk import price observations from a CSV file" }
func (*importPricesCmd) Usage() string {
	return `ivt import-prices -f <file.csv>

  Imports price observations from a CSV file with the header
  "share,date,price,currency". All referenced shares must already be
  declared in the ledger.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer in.Close()
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	n, err := invtrack.ImportPrices(in, ledger)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d price observations from %s.\n", n, c.file)
	return subcommands.ExitSuccess
}

// --- Import Provider JSON Command ---

type importJSONCmd struct {
	file      string
	share     string
	datePath  string
	pricePath string
}

func (*importJSONCmd) Name() string     { return "import-json" }
func (*importJSONCmd) Synopsis() string { return "import price observations from a provider JSON export" }
func (*importJSONCmd) Usage() string {
	return `ivt import-json -f <file.json> -t <ticker> -dates <jsonpath> -prices <jsonpath>

  Imports a share's price series from a JSON file downloaded from a data
  provider. The two jsonpath expressions locate the dates and the prices;
  both must select lists of the same length.
`
}

func (c *importJSONCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "JSON file to import")
	f.StringVar(&c.share, "t", "", "Ticker the observations belong to")
	f.StringVar(&c.datePath, "dates", "", "jsonpath selecting the observation dates")
	f.StringVar(&c.pricePath, "prices", "", "jsonpath selecting the observation prices")
}

func (c *importJSONCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || c.share == "" || c.datePath == "" || c.pricePath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer in.Close()
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	n, err := invtrack.ImportProviderJSON(in, ledger, invtrack.ProviderImport{
		Share:     c.share,
		DatePath:  c.datePath,
		PricePath: c.pricePath,
	})
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d price observations for %s.\n", n, c.share)
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct {
	file string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger entities as CSV field tuples" }
func (*exportCmd) Usage() string {
	return `ivt export [-o <file.csv>]

  Exports every entity field as a CSV "entity,field,value" tuple, a flat
  shape that merges easily into any external database. Defaults to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "o", "", "Output CSV file (defaults to stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	out := os.Stdout
	if c.file != "" {
		if out, err = os.Create(c.file); err != nil {
			return fail(err)
		}
		defer out.Close()
	}
	if err := invtrack.ExportFields(out, ledger); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
