package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
)

type chartCmd struct {
	account  string
	kind     string
	start    string
	end      string
	period   string
	baseline string
	output   string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render an account chart as a PNG file" }
func (*chartCmd) Usage() string {
	return `ivt chart -a <account> -kind value|rebased|composition -s <start_date> [-d <end_date>] [-g <granularity>] [-b <baseline>] [-o <file.png>]

  Renders an account view as a PNG image: the value line over a range, the
  same line rebased to 100 at the baseline, or the composition pie on the
  end date.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.kind, "kind", "value", "Chart kind (value, rebased, composition)")
	f.StringVar(&c.start, "s", "", "Start date of the range (YYYY-MM-DD)")
	f.StringVar(&c.end, "d", "", "End date of the range (defaults to today)")
	f.StringVar(&c.period, "g", "monthly", "Sampling granularity (daily, weekly, monthly, quarterly, yearly)")
	f.StringVar(&c.baseline, "b", "", "Baseline date for rebased mode (defaults to the start date)")
	f.StringVar(&c.output, "o", "chart.png", "Output PNG file")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	end, err := parseDay(c.end)
	if err != nil {
		return fail(err)
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	valuation := invtrack.NewValuation(ledger, nil)

	var png []byte
	switch c.kind {
	case "composition":
		composition, err := invtrack.CompositionOf(valuation, c.account, end)
		if err != nil {
			return fail(err)
		}
		if png, err = invtrack.RenderCompositionChart(composition); err != nil {
			return fail(err)
		}
	case "value", "rebased":
		if c.start == "" {
			f.Usage()
			return subcommands.ExitUsageError
		}
		start, err := invtrack.ParseDate(c.start)
		if err != nil {
			return fail(err)
		}
		period, err := invtrack.ParsePeriod(c.period)
		if err != nil {
			return fail(err)
		}
		a, ok := ledger.Account(c.account)
		if !ok {
			return fail(fmt.Errorf("account %q does not exist", c.account))
		}
		performance := invtrack.NewPerformance(valuation)
		r := invtrack.NewRange(start, end)

		seq := performance.Absolute(c.account, r, period)
		currency := a.Currency
		if c.kind == "rebased" {
			baseline := start
			if c.baseline != "" {
				if baseline, err = invtrack.ParseDate(c.baseline); err != nil {
					return fail(err)
				}
			}
			seq = performance.Rebased(c.account, r, period, baseline)
			currency = "" // rebased values are unitless index points
		}
		line := invtrack.ChartLine{Name: c.account}
		for p, err := range seq {
			if err != nil {
				return fail(err)
			}
			line.Points = append(line.Points, p)
		}
		title := fmt.Sprintf("%s (%s)", c.account, c.kind)
		if png, err = invtrack.RenderValueChart(title, currency, line); err != nil {
			return fail(err)
		}
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := os.WriteFile(c.output, png, 0644); err != nil {
		return fail(fmt.Errorf("cannot write chart to %q: %w", c.output, err))
	}
	fmt.Printf("Chart written to %s.\n", c.output)
	return subcommands.ExitSuccess
}
