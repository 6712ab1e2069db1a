package models

import (
	"ledgerline/internal/ledger"
	"ledgerline/internal/realize"
	"ledgerline/internal/schedule"
)

// RecurringTemplate stores a recurring transaction and its schedule.
// LastRealizedDate is the realization checkpoint.
type RecurringTemplate struct {
	Base
	UserID           string                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Description      string                 `json:"description"`
	Type             ledger.TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount           ledger.Cents           `gorm:"type:bigint;not null" json:"amount"`
	CreditAccountID  string                 `gorm:"type:uuid;not null" json:"credit_account_id"`
	DebitAccountID   string                 `gorm:"type:uuid;not null" json:"debit_account_id"`
	Frequency        schedule.Frequency     `gorm:"type:varchar(10);not null" json:"frequency"`
	Interval         int                    `gorm:"column:interval_count;not null;default:1" json:"interval"`
	Anchor           int                    `gorm:"not null;default:0" json:"anchor"`
	StartDate        ledger.Date            `gorm:"not null" json:"start_date"`
	EndKind          schedule.EndKind       `gorm:"type:varchar(10);not null;default:'never'" json:"end_kind"`
	EndCount         int                    `gorm:"not null;default:0" json:"end_count,omitempty"`
	EndDate          ledger.Date            `json:"end_date"`
	LastRealizedDate ledger.Date            `json:"last_realized_date"`
	IsActive         bool                   `gorm:"default:true" json:"is_active"`
}

// Rule returns the template's recurrence rule.
func (t *RecurringTemplate) Rule() schedule.Rule {
	return schedule.Rule{
		Interval:  t.Interval,
		Frequency: t.Frequency,
		Anchor:    t.Anchor,
		StartDate: t.StartDate,
		End: schedule.End{
			Kind:  t.EndKind,
			Count: t.EndCount,
			Date:  t.EndDate,
		},
	}.Normalize()
}

// SetRule copies rule into the template's columns.
func (t *RecurringTemplate) SetRule(rule schedule.Rule) {
	rule = rule.Normalize()
	t.Interval = rule.Interval
	t.Frequency = rule.Frequency
	t.Anchor = rule.Anchor
	t.StartDate = rule.StartDate
	t.EndKind = rule.End.Kind
	t.EndCount = rule.End.Count
	t.EndDate = rule.End.Date
}

// ToRealize returns the template in the form the realization service uses.
func (t *RecurringTemplate) ToRealize() realize.Template {
	return realize.Template{
		ID:               t.ID,
		Description:      t.Description,
		Amount:           t.Amount,
		Type:             t.Type,
		CreditAccountID:  t.CreditAccountID,
		DebitAccountID:   t.DebitAccountID,
		Rule:             t.Rule(),
		LastRealizedDate: t.LastRealizedDate,
	}
}
