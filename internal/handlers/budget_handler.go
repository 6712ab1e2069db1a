package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
)

// BudgetHandler serves spending limits on expense accounts.
type BudgetHandler struct {
	budgets services.BudgetServicer
	audit   services.AuditServicer
}

func NewBudgetHandler(budgets services.BudgetServicer, audit services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, audit: audit}
}

// CreateBudgetRequest is the body of POST /budgets. account_id must name an
// expense account.
type CreateBudgetRequest struct {
	AccountID string              `json:"account_id" binding:"required,uuid"`
	Name      string              `json:"name" binding:"required,min=1,max=100"`
	Amount    int64               `json:"amount" binding:"required,gt=0"`
	Period    models.BudgetPeriod `json:"period" binding:"required,budget_period"`
	StartDate string              `json:"start_date" binding:"required,ledger_date"`
	EndDate   string              `json:"end_date" binding:"omitempty,ledger_date"`
}

// UpdateBudgetRequest is the body of PUT /budgets/{id}. Absent fields are
// left alone; an empty end_date clears it.
type UpdateBudgetRequest struct {
	Name     *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Amount   *int64               `json:"amount" binding:"omitempty,gt=0"`
	Period   *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	EndDate  *string              `json:"end_date"`
	IsActive *bool                `json:"is_active"`
}

func (r UpdateBudgetRequest) fields() (services.BudgetUpdateFields, error) {
	fields := services.BudgetUpdateFields{
		Name:     r.Name,
		Period:   r.Period,
		IsActive: r.IsActive,
	}
	if r.Amount != nil {
		amount := ledger.Cents(*r.Amount)
		fields.Amount = &amount
	}
	if r.EndDate != nil {
		end, err := parseOptionalDate("end_date", *r.EndDate)
		if err != nil {
			return fields, err
		}
		fields.EndDate = &end
	}
	return fields, nil
}

// CreateBudget godoc
// @Summary     Create a budget
// @Description Caps spending on an expense account per month or year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget"
// @Success     201 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input or not an expense account"
// @Failure     401 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}

	start, err := ledger.ParseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgets.CreateBudget(userID, req.AccountID, req.Name, ledger.Cents(req.Amount), req.Period, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(), map[string]interface{}{
		"account_id": req.AccountID,
		"amount":     req.Amount,
		"period":     req.Period,
	})
	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets godoc
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool   false "Only active or only inactive budgets"
// @Param       period    query string false "monthly or yearly"
// @Param       page      query int    false "Page, from 1"
// @Param       page_size query int    false "Page size, at most 100"
// @Success     200 {object} pagination.PageResponse[models.Budget]
// @Failure     400 {object} ErrorResponse
// @Failure     401 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}
	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var period *models.BudgetPeriod
	if raw := c.Query("period"); raw != "" {
		p := models.BudgetPeriod(raw)
		if !p.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be 'monthly' or 'yearly'"))
			return
		}
		period = &p
	}

	result, err := h.budgets.GetUserBudgets(userID, page, isActive, period)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBudget godoc
// @Summary     Get a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse
// @Failure     401 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, id, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	budget, err := h.budgets.GetBudgetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget godoc
// @Summary     Update a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse
// @Failure     401 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, id, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgets.UpdateBudget(userID, id, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "UPDATE_BUDGET", "budget", id, c.ClientIP(), map[string]interface{}{
		"amount":    req.Amount,
		"period":    req.Period,
		"is_active": req.IsActive,
	})
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget godoc
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     401 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, id, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	if err := h.budgets.DeleteBudget(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "DELETE_BUDGET", "budget", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted"})
}

// GetBudgetProgress godoc
// @Summary     Budget progress
// @Description Spending on the budget's account in the period that contains today
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetProgress
// @Failure     400 {object} ErrorResponse
// @Failure     401 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /budgets/{id}/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	userID, id, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	progress, err := h.budgets.GetBudgetProgress(userID, id, today())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
