package services

import (
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/schedule"
)

// AccountWithBalance is an account together with its computed balance.
type AccountWithBalance struct {
	models.Account
	Balance ledger.Cents `json:"balance"`
}

// AccountUpdateFields holds the optional fields for updating an account.
// The account type is immutable: changing it would reinterpret every
// transaction already booked against the account.
type AccountUpdateFields struct {
	Name           *string
	Description    *string
	OpeningBalance *ledger.Cents
	IsActive       *bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType ledger.AccountType, description, currency string, openingBalance ledger.Cents) (*AccountWithBalance, error)
	GetUserAccounts(userID string, accountType *ledger.AccountType, page pagination.PageRequest) (*pagination.PageResponse[AccountWithBalance], error)
	GetAccountByID(userID, accountID string) (*AccountWithBalance, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*AccountWithBalance, error)
	GetRunningBalances(userID, accountID string) ([]ledger.RunningBalance, error)
	GetSummary(userID string) (*ledger.Summary, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate            *ledger.Date
	ToDate              *ledger.Date
	Type                *ledger.TransactionType
	MinAmount           *ledger.Cents
	MaxAmount           *ledger.Cents
	AccountID           *string
	RecurringTemplateID *string
}

// TransactionInput carries the user-supplied fields of a transaction.
type TransactionInput struct {
	Type            ledger.TransactionType
	CreditAccountID string
	DebitAccountID  string
	Amount          ledger.Cents
	Description     string
	Date            ledger.Date
}

// TransactionUpdateFields holds the optional fields for updating a transaction.
type TransactionUpdateFields struct {
	Type            *ledger.TransactionType
	CreditAccountID *string
	DebitAccountID  *string
	Amount          *ledger.Cents
	Description     *string
	Date            *ledger.Date
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAccountTransactions(userID, accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// TemplateInput carries the user-supplied fields of a recurring template.
type TemplateInput struct {
	Description     string
	Type            ledger.TransactionType
	Amount          ledger.Cents
	CreditAccountID string
	DebitAccountID  string
	Rule            schedule.Rule
	// Backfill realizes every occurrence from the start date up to today
	// as part of creating the template.
	Backfill bool
}

// TemplateUpdateFields holds the optional fields for updating a template.
type TemplateUpdateFields struct {
	Description     *string
	Type            *ledger.TransactionType
	Amount          *ledger.Cents
	CreditAccountID *string
	DebitAccountID  *string
	Rule            *schedule.Rule
	IsActive        *bool
}

// TemplateWithNext is a template together with its next upcoming occurrence.
type TemplateWithNext struct {
	models.RecurringTemplate
	NextOccurrence *ledger.Date `json:"next_occurrence,omitempty"`
}

// RealizeResult summarizes a realization run.
type RealizeResult struct {
	Templates int `json:"templates"`
	Created   int `json:"created"`
}

// RecurringServicer defines the contract for recurring templates and their
// realization into transactions.
type RecurringServicer interface {
	CreateTemplate(userID string, input TemplateInput, today ledger.Date) (*TemplateWithNext, error)
	GetUserTemplates(userID string, isActive *bool, page pagination.PageRequest) (*pagination.PageResponse[TemplateWithNext], error)
	GetTemplateByID(userID, templateID string) (*TemplateWithNext, error)
	UpdateTemplate(userID, templateID string, fields TemplateUpdateFields) (*TemplateWithNext, error)
	DeleteTemplate(userID, templateID string) error
	GetUpcoming(userID, templateID string, windowStart, windowEnd ledger.Date) ([]ledger.Transaction, error)
	RealizeDue(userID string, today ledger.Date) (*RealizeResult, error)
	RealizeAll(today ledger.Date) (*RealizeResult, error)
}

// BudgetProgress contains spending vs budget data for a budget's current period.
type BudgetProgress struct {
	BudgetID    string       `json:"budget_id"`
	PeriodStart ledger.Date  `json:"period_start"`
	PeriodEnd   ledger.Date  `json:"period_end"`
	Budgeted    ledger.Cents `json:"budgeted"`
	Spent       ledger.Cents `json:"spent"`
	Remaining   ledger.Cents `json:"remaining"`
	Percentage  float64      `json:"percentage"`
}

// BudgetUpdateFields holds the optional fields for updating a budget.
type BudgetUpdateFields struct {
	Name     *string
	Amount   *ledger.Cents
	Period   *models.BudgetPeriod
	EndDate  *ledger.Date
	IsActive *bool
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, accountID, name string, amount ledger.Cents, period models.BudgetPeriod, startDate, endDate ledger.Date) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, fields BudgetUpdateFields) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string, today ledger.Date) (*BudgetProgress, error)
}

// SnapshotServicer defines the contract for net worth snapshots.
type SnapshotServicer interface {
	ComputeAndRecordSnapshots(recordedAt ledger.Date) (int, error)
	GetSnapshots(userID string, from, to ledger.Date, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
