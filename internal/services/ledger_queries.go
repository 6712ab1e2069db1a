package services

import (
	"gorm.io/gorm"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
)

// userAccounts loads every account of a user. When activeOnly is set,
// deactivated accounts are left out.
func userAccounts(db *gorm.DB, userID string, activeOnly bool) ([]models.Account, error) {
	q := db.Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var accounts []models.Account
	if err := q.Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// userTransactions loads a user's transactions in ledger order: by date,
// then by id, which is time ordered and so follows insertion.
func userTransactions(db *gorm.DB, userID string) ([]ledger.Transaction, error) {
	var rows []models.Transaction
	if err := db.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return models.LedgerTransactions(rows), nil
}

// accountTransactions loads the transactions touching one account, in ledger order.
func accountTransactions(db *gorm.DB, userID, accountID string) ([]ledger.Transaction, error) {
	var rows []models.Transaction
	if err := db.Where("user_id = ? AND (credit_account_id = ? OR debit_account_id = ?)", userID, accountID, accountID).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return models.LedgerTransactions(rows), nil
}

// validationAccounts returns the accounts a new entry may reference.
func validationAccounts(db *gorm.DB, userID string) (map[string]ledger.Account, error) {
	accounts, err := userAccounts(db, userID, true)
	if err != nil {
		return nil, err
	}
	return ledger.AccountsByID(models.LedgerAccounts(accounts)), nil
}
