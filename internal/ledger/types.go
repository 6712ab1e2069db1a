// Package ledger holds the double-entry core: account and transaction types,
// the legality rules that tie them together, and the pure balance engine.
// Nothing in this package touches storage.
package ledger

import (
	"fmt"

	apperrors "ledgerline/internal/errors"
)

// Cents is an amount in minor currency units.
type Cents int64

// MaxAmount is the largest amount accepted on a single record (2^53-1), the
// largest integer every JSON client can round-trip exactly.
const MaxAmount Cents = 1<<53 - 1

// AccountType classifies an account and decides how transactions move its balance.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense}

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// ParseAccountType converts raw input into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidAccountType,
			fmt.Sprintf("invalid account type %q, must be asset, liability, income, or expense", s))
	}
	return t, nil
}

// TransactionType classifies a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeDebt     TransactionType = "debt"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeDebt, TransactionTypeTransfer:
		return true
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidTransactionType,
			fmt.Sprintf("invalid transaction type %q, must be income, expense, debt, or transfer", s))
	}
	return t, nil
}

// pairing lists the account types allowed on each side of a transaction type.
type pairing struct {
	credit []AccountType
	debit  []AccountType
}

var legalPairs = map[TransactionType]pairing{
	TransactionTypeIncome: {
		credit: []AccountType{AccountTypeIncome},
		debit:  []AccountType{AccountTypeAsset},
	},
	TransactionTypeExpense: {
		credit: []AccountType{AccountTypeAsset},
		debit:  []AccountType{AccountTypeExpense},
	},
	TransactionTypeDebt: {
		credit: []AccountType{AccountTypeLiability},
		debit:  []AccountType{AccountTypeExpense},
	},
	TransactionTypeTransfer: {
		credit: []AccountType{AccountTypeAsset, AccountTypeLiability},
		debit:  []AccountType{AccountTypeAsset, AccountTypeLiability},
	},
}

// LegalPair reports whether a transaction of type txType may credit an
// account of type credit and debit an account of type debit.
func LegalPair(txType TransactionType, credit, debit AccountType) bool {
	p, ok := legalPairs[txType]
	if !ok {
		return false
	}
	return contains(p.credit, credit) && contains(p.debit, debit)
}

func contains(types []AccountType, t AccountType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Account is the balance-relevant view of an account. The current balance is
// never stored: it is derived from OpeningBalance and the transaction log.
type Account struct {
	ID             string
	Name           string
	Type           AccountType
	OpeningBalance Cents
}

// Transaction is one double-entry movement of Amount from the credit account
// to the debit account. RecurringTemplateID is empty for user-entered records.
type Transaction struct {
	ID                  string          `json:"id,omitempty"`
	CreditAccountID     string          `json:"credit_account_id"`
	DebitAccountID      string          `json:"debit_account_id"`
	Amount              Cents           `json:"amount"`
	Date                Date            `json:"date"`
	Type                TransactionType `json:"type"`
	Description         string          `json:"description"`
	RecurringTemplateID string          `json:"recurring_template_id,omitempty"`
}

// Involves reports whether the transaction touches accountID on either side.
func (t Transaction) Involves(accountID string) bool {
	return accountID != "" && (t.CreditAccountID == accountID || t.DebitAccountID == accountID)
}

// Recurring reports whether the transaction was realized from a template.
func (t Transaction) Recurring() bool {
	return t.RecurringTemplateID != ""
}
