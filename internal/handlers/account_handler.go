package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerline/internal/ledger"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Type           string `json:"type" binding:"required,account_type"`
	Description    string `json:"description" binding:"max=500"`
	Currency       string `json:"currency" binding:"omitempty,iso4217"`
	OpeningBalance int64  `json:"opening_balance" binding:"gte=0"`
}

// UpdateAccountRequest represents the request payload for updating an account.
// The account type can't be changed.
type UpdateAccountRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description    *string `json:"description" binding:"omitempty,max=500"`
	OpeningBalance *int64  `json:"opening_balance" binding:"omitempty,gte=0"`
	IsActive       *bool   `json:"is_active"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Create an asset, liability, income, or expense account for the authenticated user
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} services.AccountWithBalance "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(
		userID,
		req.Name,
		ledger.AccountType(req.Type),
		req.Description,
		req.Currency,
		ledger.Cents(req.OpeningBalance),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ACCOUNT", "account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "opening_balance": req.OpeningBalance})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetUserAccounts handles the retrieval of accounts for a user
// @Summary     Get user accounts
// @Description Get a paginated list of active accounts with their current balances
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       type      query string false "Filter by account type (asset, liability, income, expense)"
// @Success     200 {object} pagination.PageResponse[services.AccountWithBalance] "Paginated accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) GetUserAccounts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	var accountType *ledger.AccountType
	if v := c.Query("type"); v != "" {
		parsed, parseErr := ledger.ParseAccountType(v)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		accountType = &parsed
	}

	result, err := h.accountService.GetUserAccounts(userID, accountType, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountByID handles the retrieval of a specific account for a user
// @Summary     Get account by ID
// @Description Get a specific account with its current balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} services.AccountWithBalance "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	userID, accountID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles updating an account.
// @Summary     Update account
// @Description Update the name, description, opening balance, or active flag of an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Param       request body UpdateAccountRequest true "Updated account details"
// @Success     200 {object} services.AccountWithBalance "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input or account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, accountID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := services.AccountUpdateFields{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.OpeningBalance != nil {
		opening := ledger.Cents(*req.OpeningBalance)
		fields.OpeningBalance = &opening
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ACCOUNT", "account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// GetRunningBalances handles the running balance series of an account
// @Summary     Get running balances
// @Description Get the balance of an account after each of its transactions, oldest first
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {array}  ledger.RunningBalance "Running balances"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/running-balances [get]
func (h *AccountHandler) GetRunningBalances(c *gin.Context) {
	userID, accountID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	series, err := h.accountService.GetRunningBalances(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"running_balances": series})
}

// GetSummary handles the balance summary of a user
// @Summary     Get balance summary
// @Description Get balances by account type and the resulting net worth
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Summary "Balance summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/summary [get]
func (h *AccountHandler) GetSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.accountService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
