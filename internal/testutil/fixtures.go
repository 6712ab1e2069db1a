package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/schedule"
	"ledgerline/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user id. Users live in the external identity
// provider, so there is no users table to insert into.
func NewUserID() string {
	return uuid.New()
}

// CreateTestAccount creates an active account of the given type with a zero
// opening balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, accountType ledger.AccountType) *models.Account {
	t.Helper()
	return CreateTestAccountWithOpening(t, db, userID, accountType, 0)
}

// CreateTestAccountWithOpening creates an account with the given opening balance (in cents).
func CreateTestAccountWithOpening(t *testing.T, db *gorm.DB, userID string, accountType ledger.AccountType, opening ledger.Cents) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:         userID,
		Name:           fmt.Sprintf("Test %s %d", accountType, nextID()),
		Type:           accountType,
		OpeningBalance: opening,
		Currency:       "USD",
		IsActive:       true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction moving amount (in cents) from
// credit to debit on date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType ledger.TransactionType, credit, debit *models.Account, amount ledger.Cents, date ledger.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:          userID,
		CreditAccountID: credit.ID,
		DebitAccountID:  debit.ID,
		Type:            txType,
		Amount:          amount,
		Description:     fmt.Sprintf("Test transaction %d", nextID()),
		Date:            date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTemplate creates a recurring expense template with the given rule.
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID string, credit, debit *models.Account, rule schedule.Rule) *models.RecurringTemplate {
	t.Helper()

	tpl := &models.RecurringTemplate{
		UserID:          userID,
		Description:     fmt.Sprintf("Test template %d", nextID()),
		Type:            ledger.TransactionTypeExpense,
		Amount:          2500,
		CreditAccountID: credit.ID,
		DebitAccountID:  debit.ID,
		IsActive:        true,
	}
	tpl.SetRule(rule)
	if err := db.Create(tpl).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return tpl
}

// CreateTestBudget creates a monthly budget on the given expense account.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string, account *models.Account) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:    userID,
		AccountID: account.ID,
		Name:      fmt.Sprintf("Test Budget %d", nextID()),
		Amount:    10000, // $100.00
		Period:    models.BudgetPeriodMonthly,
		StartDate: ledger.DateOf(time.Now()),
		IsActive:  true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
