// Package validator registers the ledger's binding tags with Gin.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/govalues/money"

	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/schedule"
)

// Register installs the custom tags on Gin's default validator.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("end_kind", validateEndKind)
		_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
		_ = v.RegisterValidation("ledger_date", validateLedgerDate)
	}
}

// validateISO4217 accepts upper-case alphabetic ISO 4217 codes known to the
// money package. Numeric codes are rejected.
func validateISO4217(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 || strings.ToUpper(code) != code {
		return false
	}
	curr, err := money.ParseCurr(code)
	return err == nil && curr.Code() == code
}

func validateAccountType(fl validator.FieldLevel) bool {
	return ledger.AccountType(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return ledger.TransactionType(fl.Field().String()).Valid()
}

func validateFrequency(fl validator.FieldLevel) bool {
	return schedule.Frequency(fl.Field().String()).Valid()
}

func validateEndKind(fl validator.FieldLevel) bool {
	return schedule.EndKind(fl.Field().String()).Valid()
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	return models.BudgetPeriod(fl.Field().String()).Valid()
}

// validateLedgerDate accepts calendar dates only ("2024-02-29"), never
// timestamps.
func validateLedgerDate(fl validator.FieldLevel) bool {
	_, err := ledger.ParseDate(fl.Field().String())
	return err == nil
}
