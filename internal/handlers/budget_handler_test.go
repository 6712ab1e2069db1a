package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn      func(userID, accountID, name string, amount ledger.Cents, period models.BudgetPeriod, startDate, endDate ledger.Date) (*models.Budget, error)
	getUserBudgetsFn    func(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn     func(userID, budgetID string) (*models.Budget, error)
	updateBudgetFn      func(userID, budgetID string, fields services.BudgetUpdateFields) (*models.Budget, error)
	deleteBudgetFn      func(userID, budgetID string) error
	getBudgetProgressFn func(userID, budgetID string, today ledger.Date) (*services.BudgetProgress, error)
}

func (m *mockBudgetService) CreateBudget(userID, accountID, name string, amount ledger.Cents, period models.BudgetPeriod, startDate, endDate ledger.Date) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, accountID, name, amount, period, startDate, endDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, page, isActive, period)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID string, fields services.BudgetUpdateFields) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, fields)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetBudgetProgress(userID, budgetID string, today ledger.Date) (*services.BudgetProgress, error) {
	if m.getBudgetProgressFn != nil {
		return m.getBudgetProgressFn(userID, budgetID, today)
	}
	return &services.BudgetProgress{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	auth.GET("/budgets/:id/progress", handler.GetBudgetProgress)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var capturedStart, capturedEnd ledger.Date
		svc := &mockBudgetService{
			createBudgetFn: func(userID, accountID, name string, amount ledger.Cents, period models.BudgetPeriod, startDate, endDate ledger.Date) (*models.Budget, error) {
				capturedStart, capturedEnd = startDate, endDate
				return &models.Budget{
					Base:      models.Base{ID: testOtherID},
					UserID:    userID,
					AccountID: accountID,
					Name:      name,
					Amount:    amount,
					Period:    period,
					StartDate: startDate,
					IsActive:  true,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"account_id":"`+testAccountID+
			`","name":"Groceries","amount":50000,"period":"monthly","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedStart.String() != "2024-01-01" || !capturedEnd.IsZero() {
			t.Errorf("unexpected dates %s..%s", capturedStart, capturedEnd)
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["name"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", budget["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"account_id":"`+testAccountID+
			`","amount":50000,"period":"monthly","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid period", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"account_id":"`+testAccountID+
			`","name":"Food","amount":50000,"period":"weekly","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"account_id":"`+testAccountID+
			`","name":"Food","amount":0,"period":"monthly","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-expense account", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_, _, _ string, _ ledger.Cents, _ models.BudgetPeriod, _, _ ledger.Date) (*models.Budget, error) {
				return nil, apperrors.ErrAccountTypeMismatch
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"account_id":"`+testAccountID+
			`","name":"Food","amount":100,"period":"monthly","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_TYPE_MISMATCH")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/budgets", handler.CreateBudget)

		rec := doRequest(r, "POST", "/budgets", `{}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("passes filter params to service", func(t *testing.T) {
		var capturedActive *bool
		var capturedPeriod *models.BudgetPeriod
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ string, _ pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
				capturedActive = isActive
				capturedPeriod = period
				resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?is_active=false&period=yearly", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if capturedActive == nil || *capturedActive {
			t.Errorf("expected is_active=false, got %v", capturedActive)
		}
		if capturedPeriod == nil || *capturedPeriod != models.BudgetPeriodYearly {
			t.Errorf("expected period=yearly, got %v", capturedPeriod)
		}
	})

	t.Run("returns 400 on invalid is_active", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?is_active=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByIDFn: func(_, _ string) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testOtherID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/7", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("clears the end date with an empty string", func(t *testing.T) {
		var captured services.BudgetUpdateFields
		svc := &mockBudgetService{
			updateBudgetFn: func(_, _ string, fields services.BudgetUpdateFields) (*models.Budget, error) {
				captured = fields
				return &models.Budget{}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/"+testOtherID, `{"amount":60000,"end_date":""}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Amount == nil || *captured.Amount != 60000 {
			t.Errorf("unexpected amount %v", captured.Amount)
		}
		if captured.EndDate == nil || !captured.EndDate.IsZero() {
			t.Errorf("expected cleared end date, got %v", captured.EndDate)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testOtherID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteBudgetFn: func(_, _ string) error { return apperrors.ErrBudgetNotFound },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testOtherID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgetProgress(t *testing.T) {
	var capturedToday ledger.Date
	svc := &mockBudgetService{
		getBudgetProgressFn: func(_, budgetID string, today ledger.Date) (*services.BudgetProgress, error) {
			capturedToday = today
			return &services.BudgetProgress{
				BudgetID:    budgetID,
				PeriodStart: ledger.MustParseDate("2024-03-01"),
				PeriodEnd:   ledger.MustParseDate("2024-03-31"),
				Budgeted:    50000,
				Spent:       12500,
				Remaining:   37500,
				Percentage:  25,
			}, nil
		},
	}
	handler := NewBudgetHandler(svc, &mockAuditService{})
	r := setupBudgetRouter(handler)

	rec := doRequest(r, "GET", "/budgets/"+testOtherID+"/progress", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedToday.String() != "2024-03-15" {
		t.Errorf("expected today 2024-03-15, got %s", capturedToday)
	}
	progress := parseJSON(t, rec)["progress"].(map[string]interface{})
	if progress["spent"].(float64) != 12500 || progress["period_start"] != "2024-03-01" {
		t.Errorf("unexpected progress %v", progress)
	}
}
