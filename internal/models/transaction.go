package models

import "ledgerline/internal/ledger"

// Transaction is a persisted double-entry movement from CreditAccountID to
// DebitAccountID. RecurringTemplateID is set when the row was realized from a
// recurring template; it is left dangling if the template is deleted.
// A template can be realized at most once per date.
type Transaction struct {
	Base
	UserID              string                 `gorm:"type:uuid;not null;index" json:"user_id"`
	CreditAccountID     string                 `gorm:"type:uuid;not null;index" json:"credit_account_id"`
	DebitAccountID      string                 `gorm:"type:uuid;not null;index" json:"debit_account_id"`
	Type                ledger.TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount              ledger.Cents           `gorm:"type:bigint;not null" json:"amount"`
	Description         string                 `json:"description"`
	Date                ledger.Date            `gorm:"not null;index;uniqueIndex:idx_transactions_template_date,priority:2" json:"date"`
	RecurringTemplateID *string                `gorm:"type:uuid;uniqueIndex:idx_transactions_template_date,priority:1" json:"recurring_template_id,omitempty"`
}

// ToLedger returns the balance-relevant view of the transaction.
func (t *Transaction) ToLedger() ledger.Transaction {
	out := ledger.Transaction{
		ID:              t.ID,
		CreditAccountID: t.CreditAccountID,
		DebitAccountID:  t.DebitAccountID,
		Amount:          t.Amount,
		Date:            t.Date,
		Type:            t.Type,
		Description:     t.Description,
	}
	if t.RecurringTemplateID != nil {
		out.RecurringTemplateID = *t.RecurringTemplateID
	}
	return out
}

// TransactionFromLedger builds a row for userID from a ledger transaction.
func TransactionFromLedger(userID string, tx ledger.Transaction) Transaction {
	row := Transaction{
		Base:            Base{ID: tx.ID},
		UserID:          userID,
		CreditAccountID: tx.CreditAccountID,
		DebitAccountID:  tx.DebitAccountID,
		Type:            tx.Type,
		Amount:          tx.Amount,
		Description:     tx.Description,
		Date:            tx.Date,
	}
	if tx.RecurringTemplateID != "" {
		id := tx.RecurringTemplateID
		row.RecurringTemplateID = &id
	}
	return row
}

// LedgerTransactions converts a slice of rows for the balance engine.
func LedgerTransactions(txs []Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))
	for i := range txs {
		out = append(out, txs[i].ToLedger())
	}
	return out
}
