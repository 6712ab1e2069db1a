// Package realize turns recurring templates into concrete ledger transactions.
//
// Everything here is pure: callers load templates and the index of already
// realized dates, call RealizeMany, and persist the returned transactions and
// checkpoints in one atomic write.
package realize

import (
	"ledgerline/internal/ledger"
	"ledgerline/internal/schedule"
)

// Template is a recurring transaction definition.
type Template struct {
	ID              string
	Description     string
	Amount          ledger.Cents
	Type            ledger.TransactionType
	CreditAccountID string
	DebitAccountID  string
	Rule            schedule.Rule
	// LastRealizedDate is the checkpoint up to which occurrences have been
	// realized. Empty when the template has never been realized.
	LastRealizedDate ledger.Date
}

// Validate checks the template's entry fields against accounts and its rule.
func (t Template) Validate(accounts map[string]ledger.Account) error {
	if err := ledger.ValidateEntry(t.Type, t.Amount, t.CreditAccountID, t.DebitAccountID, accounts); err != nil {
		return err
	}
	return t.Rule.Validate()
}

// Options controls a realization run.
type Options struct {
	// IncludePast starts every window at the template's start date. It is used
	// right after a template is created to backfill its history.
	IncludePast bool
}

// Result is the output of a realization run. Checkpoints holds the proposed
// LastRealizedDate per template id; templates whose schedule hasn't started
// yet are absent.
type Result struct {
	Transactions []ledger.Transaction
	Checkpoints  map[string]ledger.Date
}

// Realize maps a template onto a new transaction dated date. The id is left
// empty for the store to assign.
func Realize(t Template, date ledger.Date) ledger.Transaction {
	return ledger.Transaction{
		CreditAccountID:     t.CreditAccountID,
		DebitAccountID:      t.DebitAccountID,
		Amount:              t.Amount,
		Date:                date,
		Type:                t.Type,
		Description:         t.Description,
		RecurringTemplateID: t.ID,
	}
}

// Service realizes templates using a schedule engine.
type Service struct {
	engine *schedule.Engine
}

// NewService creates a Service backed by engine.
func NewService(engine *schedule.Engine) *Service {
	return &Service{engine: engine}
}

// Engine exposes the schedule engine the service expands rules with.
func (s *Service) Engine() *schedule.Engine {
	return s.engine
}

// WindowStart returns the first date a run for t should consider.
func WindowStart(t Template, existing ledger.RecurringIndex, opts Options) ledger.Date {
	if opts.IncludePast {
		return t.Rule.StartDate
	}
	if !t.LastRealizedDate.IsZero() {
		return t.LastRealizedDate
	}
	if latest, ok := existing.Latest(t.ID); ok {
		return latest
	}
	return t.Rule.StartDate
}

// RealizeMany computes the transactions due for templates up to and including
// today. A date is skipped when existing already has a transaction for it, or
// when it equals the template's checkpoint: a realized transaction the user
// deleted on that date must stay deleted.
//
// Running it again with the returned transactions added to existing yields
// no transactions.
func (s *Service) RealizeMany(templates []Template, existing ledger.RecurringIndex, today ledger.Date, opts Options) Result {
	if existing == nil {
		existing = ledger.RecurringIndex{}
	}
	res := Result{Checkpoints: make(map[string]ledger.Date)}

	for _, t := range templates {
		start := WindowStart(t, existing, opts)
		if start.IsZero() || today.Before(start) {
			continue
		}

		for _, date := range s.engine.Occurrences(t.Rule, start, today) {
			if existing.Has(t.ID, date) {
				continue
			}
			if !t.LastRealizedDate.IsZero() && date == t.LastRealizedDate {
				continue
			}
			res.Transactions = append(res.Transactions, Realize(t, date))
		}

		// The checkpoint moves to the end of the scanned window even when no
		// occurrence fell on it; it never moves backwards.
		checkpoint := today
		if t.LastRealizedDate.After(checkpoint) {
			checkpoint = t.LastRealizedDate
		}
		res.Checkpoints[t.ID] = checkpoint
	}
	return res
}

// Project returns the virtual transactions t would produce in
// [windowStart, windowEnd] after today. Nothing is persisted.
func (s *Service) Project(t Template, windowStart, windowEnd ledger.Date) []ledger.Transaction {
	dates := s.engine.FutureOccurrences(t.Rule, windowStart, windowEnd)
	out := make([]ledger.Transaction, 0, len(dates))
	for _, date := range dates {
		out = append(out, Realize(t, date))
	}
	return out
}
