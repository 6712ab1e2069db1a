package services

import (
	"testing"

	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		userID := testutil.NewUserID()
		groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)

		budget, err := svc.CreateBudget(userID, groceries.ID, "Groceries", 50000, models.BudgetPeriodMonthly, d("2024-01-01"), ledger.Date{})
		testutil.AssertNoError(t, err)

		if budget.ID == "" {
			t.Fatal("expected budget ID to be set")
		}
		if budget.Amount != 50000 {
			t.Errorf("expected amount 50000, got %d", budget.Amount)
		}
		if !budget.EndDate.IsZero() {
			t.Errorf("expected open-ended budget, got end %s", budget.EndDate)
		}
	})

	t.Run("non_expense_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		userID := testutil.NewUserID()
		checking := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeAsset)

		_, err := svc.CreateBudget(userID, checking.ID, "Checking", 50000, models.BudgetPeriodMonthly, d("2024-01-01"), ledger.Date{})
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_MISMATCH")
	})

	t.Run("invalid_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.CreateBudget(testutil.NewUserID(), testutil.NewUserID(), "Ghost", 50000, models.BudgetPeriodMonthly, d("2024-01-01"), ledger.Date{})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		userID := testutil.NewUserID()
		groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)

		_, err := svc.CreateBudget(userID, groceries.ID, "Groceries", 50000, models.BudgetPeriodYearly, d("2024-06-01"), d("2024-01-01"))
		testutil.AssertAppError(t, err, "END_BEFORE_START")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		userID := testutil.NewUserID()
		groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)

		_, err := svc.CreateBudget(userID, groceries.ID, "Groceries", 0, models.BudgetPeriodMonthly, d("2024-01-01"), ledger.Date{})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestGetUserBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	userID := testutil.NewUserID()
	groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)

	testutil.CreateTestBudget(t, db, userID, groceries)
	inactive := testutil.CreateTestBudget(t, db, userID, groceries)
	db.Model(inactive).Update("is_active", false)

	active := true
	result, err := svc.GetUserBudgets(userID, pagination.PageRequest{}, &active, nil)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 active budget, got %d", result.TotalItems)
	}

	result, err = svc.GetUserBudgets(userID, pagination.PageRequest{}, nil, nil)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 budgets, got %d", result.TotalItems)
	}
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	userID := testutil.NewUserID()
	groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)
	budget := testutil.CreateTestBudget(t, db, userID, groceries)

	amount := ledger.Cents(75000)
	period := models.BudgetPeriodYearly
	updated, err := svc.UpdateBudget(userID, budget.ID, BudgetUpdateFields{Amount: &amount, Period: &period})
	testutil.AssertNoError(t, err)
	if updated.Amount != 75000 || updated.Period != models.BudgetPeriodYearly {
		t.Errorf("unexpected update result: %+v", updated)
	}

	negative := ledger.Cents(-1)
	_, err = svc.UpdateBudget(userID, budget.ID, BudgetUpdateFields{Amount: &negative})
	testutil.AssertAppError(t, err, "AMOUNT_NEGATIVE")

	testutil.AssertNoError(t, svc.DeleteBudget(userID, budget.ID))
	_, err = svc.GetBudgetByID(userID, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestGetBudgetProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	userID := testutil.NewUserID()

	checking := testutil.CreateTestAccountWithOpening(t, db, userID, ledger.AccountTypeAsset, 100000)
	card := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeLiability)
	groceries := testutil.CreateTestAccount(t, db, userID, ledger.AccountTypeExpense)

	budget, err := svc.CreateBudget(userID, groceries.ID, "Groceries", 40000, models.BudgetPeriodMonthly, d("2024-01-01"), ledger.Date{})
	testutil.AssertNoError(t, err)

	// Only the March rows fall in the period.
	testutil.CreateTestTransaction(t, db, userID, ledger.TransactionTypeExpense, checking, groceries, 5000, d("2024-02-29"))
	testutil.CreateTestTransaction(t, db, userID, ledger.TransactionTypeExpense, checking, groceries, 10000, d("2024-03-01"))
	testutil.CreateTestTransaction(t, db, userID, ledger.TransactionTypeDebt, card, groceries, 20000, d("2024-03-31"))
	testutil.CreateTestTransaction(t, db, userID, ledger.TransactionTypeExpense, checking, groceries, 7000, d("2024-04-01"))

	progress, err := svc.GetBudgetProgress(userID, budget.ID, d("2024-03-15"))
	testutil.AssertNoError(t, err)

	if progress.PeriodStart.String() != "2024-03-01" || progress.PeriodEnd.String() != "2024-03-31" {
		t.Errorf("unexpected period %s..%s", progress.PeriodStart, progress.PeriodEnd)
	}
	if progress.Spent != 30000 {
		t.Errorf("expected spent 30000, got %d", progress.Spent)
	}
	if progress.Remaining != 10000 {
		t.Errorf("expected remaining 10000, got %d", progress.Remaining)
	}
	if progress.Percentage != 75 {
		t.Errorf("expected 75%%, got %f", progress.Percentage)
	}
}
