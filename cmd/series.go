package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/invtrack/invtrack"
	"github.com/invtrack/invtrack/renderer"
)

// --- Series Command ---

type seriesCmd struct {
	account  string
	start    string
	end      string
	period   string
	mode     string
	baseline string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display an account value series over time" }
func (*seriesCmd) Usage() string {
	return `ivt series -a <account> -s <start_date> [-d <end_date>] [-g <granularity>] [-mode absolute|rebased] [-b <baseline_date>]

  Samples the account value over the range. In rebased mode each sample is
  scaled so the baseline date (default: range start) reads exactly 100,
  which makes accounts of different sizes comparable.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name")
	f.StringVar(&c.start, "s", "", "Start date of the range (YYYY-MM-DD)")
	f.StringVar(&c.end, "d", "", "End date of the range (defaults to today)")
	f.StringVar(&c.period, "g", "monthly", "Sampling granularity (daily, weekly, monthly, quarterly, yearly)")
	f.StringVar(&c.mode, "mode", "absolute", "Series mode (absolute, rebased)")
	f.StringVar(&c.baseline, "b", "", "Baseline date for rebased mode (defaults to the start date)")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.start == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	start, err := invtrack.ParseDate(c.start)
	if err != nil {
		return fail(err)
	}
	end, err := parseDay(c.end)
	if err != nil {
		return fail(err)
	}
	period, err := invtrack.ParsePeriod(c.period)
	if err != nil {
		return fail(err)
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	performance := invtrack.NewPerformance(invtrack.NewValuation(ledger, nil))
	r := invtrack.NewRange(start, end)

	var seq func(yield func(invtrack.Point, error) bool)
	switch c.mode {
	case "absolute":
		seq = performance.Absolute(c.account, r, period)
	case "rebased":
		baseline := start
		if c.baseline != "" {
			if baseline, err = invtrack.ParseDate(c.baseline); err != nil {
				return fail(err)
			}
		}
		seq = performance.Rebased(c.account, r, period, baseline)
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

	view := &renderer.Series{Account: c.account, Mode: c.mode}
	for p, err := range seq {
		if err != nil {
			return fail(err)
		}
		view.Points = append(view.Points, p)
	}
	printMarkdown(renderer.RenderSeries(view))
	return subcommands.ExitSuccess
}
