package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
)

// accountService handles account-related business logic. Balances are never
// stored: every read folds the account's transactions with the ledger engine.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount validates and stores a new account.
func (s *accountService) CreateAccount(userID, name string, accountType ledger.AccountType, description, currency string, openingBalance ledger.Cents) (*AccountWithBalance, error) {
	name = strings.TrimSpace(name)
	if err := ledger.ValidateAccount(ledger.Account{Name: name, Type: accountType, OpeningBalance: openingBalance}); err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "USD" // Default currency
	}

	account := &models.Account{
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		Description:    description,
		OpeningBalance: openingBalance,
		Currency:       currency,
		IsActive:       true,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &AccountWithBalance{Account: *account, Balance: openingBalance}, nil
}

// GetUserAccounts retrieves a paginated list of active accounts with balances.
func (s *accountService) GetUserAccounts(userID string, accountType *ledger.AccountType, page pagination.PageRequest) (*pagination.PageResponse[AccountWithBalance], error) {
	base := s.db.Model(&models.Account{}).Where("user_id = ? AND is_active = ?", userID, true)
	if accountType != nil {
		base = base.Where("type = ?", *accountType)
	}

	accounts, err := pagination.Find[models.Account](base, "name ASC", page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	txs, err := userTransactions(s.db, userID)
	if err != nil {
		return nil, err
	}
	balances := ledger.Balances(models.LedgerAccounts(accounts.Data), txs)

	result := pagination.MapPage(accounts, func(a models.Account) AccountWithBalance {
		return AccountWithBalance{Account: a, Balance: balances[a.ID]}
	})
	return &result, nil
}

// GetAccountByID retrieves an account and its balance for a specific user.
func (s *accountService) GetAccountByID(userID, accountID string) (*AccountWithBalance, error) {
	account, err := s.findAccount(userID, accountID)
	if err != nil {
		return nil, err
	}
	return s.withBalance(account)
}

// UpdateAccount updates the mutable fields of an account.
func (s *accountService) UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*AccountWithBalance, error) {
	account, err := s.findAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		updates["name"] = name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.OpeningBalance != nil {
		probe := account.ToLedger()
		probe.OpeningBalance = *fields.OpeningBalance
		if err := ledger.ValidateAccount(probe); err != nil {
			return nil, err
		}
		updates["opening_balance"] = *fields.OpeningBalance
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.withBalance(account)
}

// GetRunningBalances returns the balance of an account after each of its
// transactions, in date order.
func (s *accountService) GetRunningBalances(userID, accountID string) ([]ledger.RunningBalance, error) {
	account, err := s.findAccount(userID, accountID)
	if err != nil {
		return nil, err
	}
	txs, err := accountTransactions(s.db, userID, account.ID)
	if err != nil {
		return nil, err
	}
	return ledger.RunningSeries(txs, account.ToLedger(), account.OpeningBalance), nil
}

// GetSummary computes balances by type and net worth across all of a user's
// accounts, deactivated ones included.
func (s *accountService) GetSummary(userID string) (*ledger.Summary, error) {
	accounts, err := userAccounts(s.db, userID, false)
	if err != nil {
		return nil, err
	}
	txs, err := userTransactions(s.db, userID)
	if err != nil {
		return nil, err
	}
	summary := ledger.Summarize(models.LedgerAccounts(accounts), txs)
	return &summary, nil
}

func (s *accountService) findAccount(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

func (s *accountService) withBalance(account *models.Account) (*AccountWithBalance, error) {
	txs, err := accountTransactions(s.db, account.UserID, account.ID)
	if err != nil {
		return nil, err
	}
	return &AccountWithBalance{
		Account: *account,
		Balance: ledger.CalculateBalance(account.ToLedger(), txs),
	}, nil
}
