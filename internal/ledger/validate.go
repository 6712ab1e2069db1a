package ledger

import (
	"fmt"
	"strings"

	apperrors "ledgerline/internal/errors"
)

// ValidateAmount checks the amount rules shared by transactions and templates.
func ValidateAmount(amount Cents) error {
	switch {
	case amount < 0:
		return apperrors.ErrAmountNegative
	case amount == 0:
		return apperrors.ErrInvalidAmount
	case amount > MaxAmount:
		return apperrors.ErrAmountOverflow
	}
	return nil
}

// ValidateAccount checks an account before it is persisted.
func ValidateAccount(a Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !a.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidAccountType,
			fmt.Sprintf("invalid account type %q, must be asset, liability, income, or expense", a.Type))
	}
	if a.OpeningBalance < 0 {
		return apperrors.ErrNegativeOpening
	}
	if a.OpeningBalance > MaxAmount {
		return apperrors.ErrAmountOverflow
	}
	return nil
}

// ValidateEntry checks the fields of a transaction or template against the
// accounts it references. accounts must contain every account the caller is
// allowed to use; an id missing from the map is reported as not found.
func ValidateEntry(txType TransactionType, amount Cents, creditID, debitID string, accounts map[string]Account) error {
	if !txType.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidTransactionType,
			fmt.Sprintf("invalid transaction type %q, must be income, expense, debt, or transfer", txType))
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if creditID == "" || debitID == "" {
		return apperrors.ErrMissingAccount
	}
	if creditID == debitID {
		return apperrors.ErrSameAccount
	}

	credit, ok := accounts[creditID]
	if !ok {
		return apperrors.WithMessage(apperrors.ErrAccountNotFound, "Credit account not found")
	}
	debit, ok := accounts[debitID]
	if !ok {
		return apperrors.WithMessage(apperrors.ErrAccountNotFound, "Debit account not found")
	}

	if !LegalPair(txType, credit.Type, debit.Type) {
		return apperrors.WithMessage(apperrors.ErrAccountTypeMismatch,
			fmt.Sprintf("a %s transaction can't credit a %s account and debit a %s account", txType, credit.Type, debit.Type))
	}
	return nil
}

// ValidateTransaction checks a transaction before it is persisted.
func ValidateTransaction(t Transaction, accounts map[string]Account) error {
	if err := ValidateEntry(t.Type, t.Amount, t.CreditAccountID, t.DebitAccountID, accounts); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, "transaction date is required")
	}
	return nil
}

// AccountsByID indexes accounts for validation lookups.
func AccountsByID(accounts []Account) map[string]Account {
	out := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		out[a.ID] = a
	}
	return out
}
