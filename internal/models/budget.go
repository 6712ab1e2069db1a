package models

import "ledgerline/internal/ledger"

// BudgetPeriod is the window a budget's amount applies to.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a supported period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// Budget caps spending on an expense account per period.
type Budget struct {
	Base
	UserID    string       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID string       `gorm:"type:uuid;not null" json:"account_id"`
	Name      string       `gorm:"not null" json:"name"`
	Amount    ledger.Cents `gorm:"type:bigint;not null" json:"amount"`
	Period    BudgetPeriod `gorm:"type:varchar(10);not null" json:"period"`
	StartDate ledger.Date  `gorm:"not null" json:"start_date"`
	EndDate   ledger.Date  `json:"end_date"`
	IsActive  bool         `gorm:"default:true" json:"is_active"`
}
