package ledger

// IndexByDate groups transactions by calendar date, preserving input order
// within each date.
func IndexByDate(txs []Transaction) map[Date][]Transaction {
	out := make(map[Date][]Transaction)
	for _, tx := range txs {
		out[tx.Date] = append(out[tx.Date], tx)
	}
	return out
}

// RecurringIndex records which dates have already been realized for each
// recurring template.
type RecurringIndex map[string]map[Date]struct{}

// IndexByRecurringTemplate builds a RecurringIndex from stored transactions.
// User-entered transactions are ignored.
func IndexByRecurringTemplate(txs []Transaction) RecurringIndex {
	idx := make(RecurringIndex)
	for _, tx := range txs {
		if !tx.Recurring() || tx.Date.IsZero() {
			continue
		}
		idx.Add(tx.RecurringTemplateID, tx.Date)
	}
	return idx
}

// Add marks date as realized for templateID.
func (idx RecurringIndex) Add(templateID string, date Date) {
	dates, ok := idx[templateID]
	if !ok {
		dates = make(map[Date]struct{})
		idx[templateID] = dates
	}
	dates[date] = struct{}{}
}

// Has reports whether templateID already has a transaction on date.
func (idx RecurringIndex) Has(templateID string, date Date) bool {
	_, ok := idx[templateID][date]
	return ok
}

// Latest returns the most recent realized date for templateID.
func (idx RecurringIndex) Latest(templateID string) (Date, bool) {
	var latest Date
	for d := range idx[templateID] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, !latest.IsZero()
}

// Len returns the number of realized dates recorded for templateID.
func (idx RecurringIndex) Len(templateID string) int {
	return len(idx[templateID])
}
