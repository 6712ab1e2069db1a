package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateTransaction validates a user-entered transaction and stores it.
// Nothing is written when validation fails.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	accounts, err := validationAccounts(s.db, userID)
	if err != nil {
		return nil, err
	}

	entry := ledger.Transaction{
		CreditAccountID: input.CreditAccountID,
		DebitAccountID:  input.DebitAccountID,
		Amount:          input.Amount,
		Date:            input.Date,
		Type:            input.Type,
		Description:     input.Description,
	}
	if err := ledger.ValidateTransaction(entry, accounts); err != nil {
		return nil, err
	}

	transaction := models.TransactionFromLedger(userID, entry)
	if err := s.db.Create(&transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of a user's transactions.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	return s.list(applyTransactionFilters(base, filter), page)
}

// GetAccountTransactions retrieves a paginated, filtered list of transactions
// on either side of an account.
func (s *transactionService) GetAccountTransactions(userID, accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	// First verify the account belongs to the user
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	filter.AccountID = &accountID
	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	return s.list(applyTransactionFilters(base, filter), page)
}

func (s *transactionService) list(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	result, err := pagination.Find[models.Transaction](base, "date DESC, id DESC", page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.AccountID != nil {
		q = q.Where("(credit_account_id = ? OR debit_account_id = ?)", *f.AccountID, *f.AccountID)
	}
	if f.RecurringTemplateID != nil {
		q = q.Where("recurring_template_id = ?", *f.RecurringTemplateID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the given fields and revalidates the result as a
// whole before saving it. A realized transaction keeps its template link.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	entry := transaction.ToLedger()
	if fields.Type != nil {
		entry.Type = *fields.Type
	}
	if fields.CreditAccountID != nil {
		entry.CreditAccountID = *fields.CreditAccountID
	}
	if fields.DebitAccountID != nil {
		entry.DebitAccountID = *fields.DebitAccountID
	}
	if fields.Amount != nil {
		entry.Amount = *fields.Amount
	}
	if fields.Description != nil {
		entry.Description = *fields.Description
	}
	if fields.Date != nil {
		entry.Date = *fields.Date
	}

	accounts, err := validationAccounts(s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateTransaction(entry, accounts); err != nil {
		return nil, err
	}

	if transaction.RecurringTemplateID != nil && entry.Date != transaction.Date {
		var clash int64
		if err := s.db.Unscoped().Model(&models.Transaction{}).
			Where("recurring_template_id = ? AND date = ? AND id <> ?", *transaction.RecurringTemplateID, entry.Date, transaction.ID).
			Count(&clash).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if clash > 0 {
			return nil, apperrors.ErrDuplicateOccurrence
		}
	}

	updates := map[string]interface{}{
		"type":              entry.Type,
		"credit_account_id": entry.CreditAccountID,
		"debit_account_id":  entry.DebitAccountID,
		"amount":            entry.Amount,
		"description":       entry.Description,
		"date":              entry.Date,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction soft-deletes a transaction. Deleting a realized
// transaction does not touch its template, and the realizer won't recreate it.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
