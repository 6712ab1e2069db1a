// Package schedule expands recurrence rules into calendar dates.
package schedule

import (
	"fmt"
	"time"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
)

// Frequency is the unit a rule's interval counts in.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Valid reports whether f is a supported frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// EndKind selects how a rule stops producing occurrences.
type EndKind string

const (
	EndNever EndKind = "never"
	EndAfter EndKind = "after"
	EndOn    EndKind = "on"
)

// Valid reports whether k is a supported end kind.
func (k EndKind) Valid() bool {
	switch k {
	case EndNever, EndAfter, EndOn:
		return true
	}
	return false
}

// End is the stop condition of a rule. Count is used by EndAfter, Date by EndOn.
type End struct {
	Kind  EndKind
	Count int
	Date  ledger.Date
}

// Never returns an end condition that never stops.
func Never() End { return End{Kind: EndNever} }

// After stops once n occurrences have been produced since the start date.
func After(n int) End { return End{Kind: EndAfter, Count: n} }

// On stops after the given date.
func On(d ledger.Date) End { return End{Kind: EndOn, Date: d} }

// LeapCutoff is the non-leap day-of-year of March 1. Yearly anchors on or
// after it are shifted one day in leap years.
const LeapCutoff = 60

// Rule describes a recurrence. Anchor depends on Frequency:
// ignored for Daily, a time.Weekday (0 = Sunday) for Weekly, a day of the
// month (1-31) for Monthly and a non-leap day of the year (1-365) for Yearly.
// Rule is comparable and is used directly as a cache key.
type Rule struct {
	Interval  int
	Frequency Frequency
	Anchor    int
	StartDate ledger.Date
	End       End
}

// Validate reports the first problem that would make the rule unusable.
func (r Rule) Validate() error {
	if r.Interval < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "interval must be at least 1")
	}
	if !r.Frequency.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidRecurrence,
			fmt.Sprintf("invalid frequency %q, must be daily, weekly, monthly, or yearly", r.Frequency))
	}
	switch r.Frequency {
	case Weekly:
		if r.Anchor < int(time.Sunday) || r.Anchor > int(time.Saturday) {
			return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "weekly anchor must be a weekday between 0 (Sunday) and 6 (Saturday)")
		}
	case Monthly:
		if r.Anchor < 1 || r.Anchor > 31 {
			return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "monthly anchor must be a day between 1 and 31")
		}
	case Yearly:
		if r.Anchor < 1 || r.Anchor > 365 {
			return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "yearly anchor must be a day of the year between 1 and 365")
		}
	}
	if r.StartDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "start date is required")
	}
	switch r.End.Kind {
	case EndNever:
	case EndAfter:
		if r.End.Count < 1 {
			return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "occurrence count must be at least 1")
		}
	case EndOn:
		if r.End.Date.IsZero() {
			return apperrors.WithMessage(apperrors.ErrInvalidRecurrence, "end date is required")
		}
		if r.End.Date.Before(r.StartDate) {
			return apperrors.ErrEndBeforeStart
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidRecurrence,
			fmt.Sprintf("invalid end condition %q, must be never, after, or on", r.End.Kind))
	}
	return nil
}

// Normalize clears fields that don't apply to the rule's frequency and end
// kind so equivalent rules share a cache entry and a stored representation.
func (r Rule) Normalize() Rule {
	if r.Frequency == Daily {
		r.Anchor = 0
	}
	switch r.End.Kind {
	case EndNever, "":
		r.End = Never()
	case EndAfter:
		r.End.Date = ledger.Date{}
	case EndOn:
		r.End.Count = 0
	}
	return r
}

// AnchorFor returns the anchor that makes a rule of frequency f fall on d.
func AnchorFor(f Frequency, d ledger.Date) int {
	switch f {
	case Weekly:
		return int(d.Weekday())
	case Monthly:
		return d.Day()
	case Yearly:
		// Express the date as a non-leap day of the year.
		doy := d.YearDay()
		if isLeap(d.Year()) && doy >= LeapCutoff {
			if doy == LeapCutoff {
				// February 29 has no non-leap equivalent; pin it to February 28.
				return LeapCutoff - 1
			}
			doy--
		}
		return doy
	}
	return 0
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
