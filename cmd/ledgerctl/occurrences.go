package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/govalues/money"
	"github.com/spf13/cobra"

	"ledgerline/internal/ledger"
	"ledgerline/internal/schedule"
)

type occurrenceFlags struct {
	frequency string
	interval  int
	anchor    int
	start     string
	count     int
	until     string
	from      string
	to        string
	amount    int64
}

// rule builds the recurrence described by the flags. A negative anchor means
// "derive it from the start date".
func (f occurrenceFlags) rule() (schedule.Rule, error) {
	start, err := ledger.ParseDate(f.start)
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("--start: %w", err)
	}

	rule := schedule.Rule{
		Interval:  f.interval,
		Frequency: schedule.Frequency(f.frequency),
		StartDate: start,
		End:       schedule.Never(),
	}
	if f.anchor >= 0 {
		rule.Anchor = f.anchor
	} else {
		rule.Anchor = schedule.AnchorFor(rule.Frequency, start)
	}

	switch {
	case f.count > 0 && f.until != "":
		return schedule.Rule{}, fmt.Errorf("--count and --until are mutually exclusive")
	case f.count > 0:
		rule.End = schedule.After(f.count)
	case f.until != "":
		until, err := ledger.ParseDate(f.until)
		if err != nil {
			return schedule.Rule{}, fmt.Errorf("--until: %w", err)
		}
		rule.End = schedule.On(until)
	}

	rule = rule.Normalize()
	if err := rule.Validate(); err != nil {
		return schedule.Rule{}, err
	}
	return rule, nil
}

// window resolves --from and --to. --from defaults to the start date.
func (f occurrenceFlags) window(rule schedule.Rule) (ledger.Date, ledger.Date, error) {
	from := rule.StartDate
	if f.from != "" {
		d, err := ledger.ParseDate(f.from)
		if err != nil {
			return ledger.Date{}, ledger.Date{}, fmt.Errorf("--from: %w", err)
		}
		from = d
	}
	to, err := ledger.ParseDate(f.to)
	if err != nil {
		return ledger.Date{}, ledger.Date{}, fmt.Errorf("--to: %w", err)
	}
	if to.Before(from) {
		return ledger.Date{}, ledger.Date{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return from, to, nil
}

func newOccurrencesCmd(load configLoader) *cobra.Command {
	var f occurrenceFlags
	cmd := &cobra.Command{
		Use:   "occurrences",
		Short: "List the dates a recurrence rule produces",
		Long: `occurrences expands a recurrence rule locally, without contacting the server.

With --amount (in cents) each line also shows the cumulative total in the
configured currency.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			rule, err := f.rule()
			if err != nil {
				return err
			}
			from, to, err := f.window(rule)
			if err != nil {
				return err
			}

			dates := schedule.NewEngine().Occurrences(rule, from, to)
			return printOccurrences(cmd, dates, f.amount, cfg.Currency)
		},
	}

	cmd.Flags().StringVar(&f.frequency, "frequency", "monthly", "daily, weekly, monthly, or yearly")
	cmd.Flags().IntVar(&f.interval, "interval", 1, "number of frequency units between occurrences")
	cmd.Flags().IntVar(&f.anchor, "anchor", -1, "weekday (0-6), day of month (1-31) or day of year (1-365); default from --start")
	cmd.Flags().StringVar(&f.start, "start", "", "first possible date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.count, "count", 0, "stop after this many occurrences")
	cmd.Flags().StringVar(&f.until, "until", "", "stop after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "window start (YYYY-MM-DD, default: --start)")
	cmd.Flags().StringVar(&f.to, "to", "", "window end (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&f.amount, "amount", 0, "amount per occurrence in cents")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printOccurrences(cmd *cobra.Command, dates []ledger.Date, amount int64, currency string) error {
	out := cmd.OutOrStdout()
	if len(dates) == 0 {
		fmt.Fprintln(out, "No occurrences in window")
		return nil
	}
	if amount == 0 {
		for _, d := range dates {
			fmt.Fprintln(out, d)
		}
		return nil
	}

	each, err := money.NewAmountFromMinorUnits(currency, amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	total, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return fmt.Errorf("invalid currency: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tAMOUNT\tTOTAL")
	for _, d := range dates {
		total, err = total.Add(each)
		if err != nil {
			return fmt.Errorf("summing amounts: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d, each, total)
	}
	return w.Flush()
}
