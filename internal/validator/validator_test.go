package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type probe struct {
	Currency  string `validate:"omitempty,iso4217"`
	Account   string `validate:"omitempty,account_type"`
	Tx        string `validate:"omitempty,transaction_type"`
	Frequency string `validate:"omitempty,frequency"`
	EndKind   string `validate:"omitempty,end_kind"`
	Period    string `validate:"omitempty,budget_period"`
	Date      string `validate:"omitempty,ledger_date"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"iso4217":          validateISO4217,
		"account_type":     validateAccountType,
		"transaction_type": validateTransactionType,
		"frequency":        validateFrequency,
		"end_kind":         validateEndKind,
		"budget_period":    validateBudgetPeriod,
		"ledger_date":      validateLedgerDate,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("failed to register %s: %v", tag, err)
		}
	}
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name  string
		input probe
		valid bool
	}{
		{"valid_currency", probe{Currency: "EUR"}, true},
		{"invalid_currency", probe{Currency: "XYZ"}, false},
		{"lower_case_currency_rejected", probe{Currency: "eur"}, false},
		{"numeric_currency_rejected", probe{Currency: "978"}, false},
		{"valid_account_type", probe{Account: "liability"}, true},
		{"invalid_account_type", probe{Account: "cash"}, false},
		{"valid_transaction_type", probe{Tx: "debt"}, true},
		{"invalid_transaction_type", probe{Tx: "investment"}, false},
		{"valid_frequency", probe{Frequency: "monthly"}, true},
		{"invalid_frequency", probe{Frequency: "hourly"}, false},
		{"valid_end_kind", probe{EndKind: "after"}, true},
		{"invalid_end_kind", probe{EndKind: "until"}, false},
		{"valid_budget_period", probe{Period: "yearly"}, true},
		{"invalid_budget_period", probe{Period: "weekly"}, false},
		{"valid_date", probe{Date: "2024-02-29"}, true},
		{"timestamp_rejected", probe{Date: "2024-02-29T10:00:00Z"}, false},
		{"impossible_date_rejected", probe{Date: "2023-02-29"}, false},
		{"empty_is_allowed", probe{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
