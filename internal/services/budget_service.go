package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget on one of the user's expense accounts.
func (s *budgetService) CreateBudget(
	userID, accountID string,
	name string,
	amount ledger.Cents,
	period models.BudgetPeriod,
	startDate, endDate ledger.Date,
) (*models.Budget, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}
	if err := ledger.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, "start date is required")
	}
	if !endDate.IsZero() && endDate.Before(startDate) {
		return nil, apperrors.ErrEndBeforeStart
	}
	if err := s.checkExpenseAccount(userID, accountID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:    userID,
		AccountID: accountID,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		Period:    period,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user with optional filters.
func (s *budgetService) GetUserBudgets(
	userID string,
	page pagination.PageRequest,
	isActive *bool,
	period *models.BudgetPeriod,
) (*pagination.PageResponse[models.Budget], error) {
	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}
	if period != nil {
		base = base.Where("period = ?", *period)
	}

	result, err := pagination.Find[models.Budget](base, "name ASC", page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(userID, budgetID string, fields BudgetUpdateFields) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && strings.TrimSpace(*fields.Name) != "" {
		updates["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.Amount != nil {
		if err := ledger.ValidateAmount(*fields.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Period != nil {
		updates["period"] = *fields.Period
	}
	if fields.EndDate != nil {
		if !fields.EndDate.IsZero() && fields.EndDate.Before(budget.StartDate) {
			return nil, apperrors.ErrEndBeforeStart
		}
		updates["end_date"] = *fields.EndDate
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress folds the budget account's transactions in the period
// containing today to find how much has been spent.
func (s *budgetService) GetBudgetProgress(userID, budgetID string, today ledger.Date) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", budget.AccountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	periodStart, periodEnd := budgetPeriod(budget.Period, today)

	var rows []models.Transaction
	if err := s.db.Where("user_id = ? AND (credit_account_id = ? OR debit_account_id = ?) AND date >= ? AND date <= ?",
		userID, account.ID, account.ID, periodStart, periodEnd).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Only the movement inside the period counts, so fold from zero.
	period := account.ToLedger()
	period.OpeningBalance = 0
	spent := ledger.CalculateBalance(period, models.LedgerTransactions(rows))

	remaining := budget.Amount - spent
	var percentage float64
	if budget.Amount > 0 {
		percentage = float64(spent) / float64(budget.Amount) * 100
	}

	return &BudgetProgress{
		BudgetID:    budget.ID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Budgeted:    budget.Amount,
		Spent:       spent,
		Remaining:   remaining,
		Percentage:  percentage,
	}, nil
}

func (s *budgetService) checkExpenseAccount(userID, accountID string) error {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if account.Type != ledger.AccountTypeExpense {
		return apperrors.WithMessage(apperrors.ErrAccountTypeMismatch, "budgets can only track expense accounts")
	}
	return nil
}

// budgetPeriod returns the calendar month or year containing today.
func budgetPeriod(period models.BudgetPeriod, today ledger.Date) (ledger.Date, ledger.Date) {
	if period == models.BudgetPeriodYearly {
		return ledger.NewDate(today.Year(), time.January, 1), ledger.NewDate(today.Year(), time.December, 31)
	}
	start := ledger.NewDate(today.Year(), today.Month(), 1)
	end := ledger.NewDate(today.Year(), today.Month()+1, 0)
	return start, end
}
