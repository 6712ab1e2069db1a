package testutil

import (
	"errors"
	"testing"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
)

// AssertAppError checks that err is an *AppError carrying expectedCode.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	case !errors.As(err, &appErr):
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	case appErr.Code != expectedCode:
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertCents compares two amounts, naming what was measured on failure.
func AssertCents(t *testing.T, what string, got, want ledger.Cents) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", what, want, got)
	}
}

// AssertDates checks that got holds exactly the YYYY-MM-DD dates in want, in order.
func AssertDates(t *testing.T, got []ledger.Date, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dates %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("date %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
