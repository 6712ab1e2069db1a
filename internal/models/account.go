package models

import "ledgerline/internal/ledger"

// Account represents a ledger account owned by a user. The current balance
// is not a column: it is always derived from OpeningBalance and the
// transactions that reference the account.
type Account struct {
	Base
	UserID         string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string             `gorm:"not null" json:"name"`
	Type           ledger.AccountType `gorm:"type:varchar(20);not null" json:"type"`
	Description    string             `json:"description"`
	OpeningBalance ledger.Cents       `gorm:"type:bigint;not null;default:0" json:"opening_balance"`
	Currency       string             `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	IsActive       bool               `gorm:"default:true" json:"is_active"`
}

// ToLedger returns the balance-relevant view of the account.
func (a *Account) ToLedger() ledger.Account {
	return ledger.Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		OpeningBalance: a.OpeningBalance,
	}
}

// LedgerAccounts converts a slice of accounts for the balance engine.
func LedgerAccounts(accounts []Account) []ledger.Account {
	out := make([]ledger.Account, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].ToLedger())
	}
	return out
}
