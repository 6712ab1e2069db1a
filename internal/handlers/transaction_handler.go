package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
	"ledgerline/internal/uuid"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount moves from the credit account to the debit account.
type CreateTransactionRequest struct {
	Type            string `json:"type" binding:"required,transaction_type"`
	CreditAccountID string `json:"credit_account_id" binding:"required,uuid"`
	DebitAccountID  string `json:"debit_account_id" binding:"required,uuid"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	Description     string `json:"description" binding:"max=500"`
	Date            string `json:"date" binding:"omitempty,ledger_date"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
type UpdateTransactionRequest struct {
	Type            *string `json:"type" binding:"omitempty,transaction_type"`
	CreditAccountID *string `json:"credit_account_id" binding:"omitempty,uuid"`
	DebitAccountID  *string `json:"debit_account_id" binding:"omitempty,uuid"`
	Amount          *int64  `json:"amount" binding:"omitempty,gt=0"`
	Description     *string `json:"description" binding:"omitempty,max=500"`
	Date            *string `json:"date" binding:"omitempty,ledger_date"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a double-entry transaction between two accounts. The date defaults to today.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if date.IsZero() {
		date = today()
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Type:            ledger.TransactionType(req.Type),
		CreditAccountID: req.CreditAccountID,
		DebitAccountID:  req.DebitAccountID,
		Amount:          ledger.Cents(req.Amount),
		Description:     req.Description,
		Date:            date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"type":              req.Type,
			"amount":            req.Amount,
			"credit_account_id": req.CreditAccountID,
			"debit_account_id":  req.DebitAccountID,
		})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetAccountTransactions handles the retrieval of transactions for a specific account
// @Summary     Get account transactions
// @Description Get a paginated list of transactions touching an account on either side
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id                    path  string true  "Account ID"
// @Param       page                  query int    false "Page number (default 1)"
// @Param       page_size             query int    false "Items per page (default 20, max 100)"
// @Param       from_date             query string false "Filter by start date (YYYY-MM-DD)"
// @Param       to_date               query string false "Filter by end date (YYYY-MM-DD)"
// @Param       type                  query string false "Filter by transaction type"
// @Param       min_amount            query int    false "Filter by minimum amount (cents)"
// @Param       max_amount            query int    false "Filter by maximum amount (cents)"
// @Param       recurring_template_id query string false "Filter by recurring template ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/transactions [get]
func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	userID, accountID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetAccountTransactions(userID, accountID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUserTransactions handles the retrieval of all transactions for the authenticated user
// @Summary     Get user transactions
// @Description Get a paginated list of all transactions, newest first, with optional filters
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page                  query int    false "Page number (default 1)"
// @Param       page_size             query int    false "Items per page (default 20, max 100)"
// @Param       account_id            query string false "Filter by account ID"
// @Param       from_date             query string false "Filter by start date (YYYY-MM-DD)"
// @Param       to_date               query string false "Filter by end date (YYYY-MM-DD)"
// @Param       type                  query string false "Filter by transaction type"
// @Param       min_amount            query int    false "Filter by minimum amount (cents)"
// @Param       max_amount            query int    false "Filter by maximum amount (cents)"
// @Param       recurring_template_id query string false "Filter by recurring template ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if v := c.Query("account_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account_id"))
			return
		}
		filter.AccountID = &v
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	from, err := parseDateQuery(c, "from_date")
	if err != nil {
		return filter, err
	}
	filter.FromDate = from

	to, err := parseDateQuery(c, "to_date")
	if err != nil {
		return filter, err
	}
	filter.ToDate = to

	if v := c.Query("type"); v != "" {
		txType, err := ledger.ParseTransactionType(v)
		if err != nil {
			return filter, err
		}
		filter.Type = &txType
	}

	if v := c.Query("min_amount"); v != "" {
		amt, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid min_amount")
		}
		minAmount := ledger.Cents(amt)
		filter.MinAmount = &minAmount
	}

	if v := c.Query("max_amount"); v != "" {
		amt, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid max_amount")
		}
		maxAmount := ledger.Cents(amt)
		filter.MaxAmount = &maxAmount
	}

	if v := c.Query("recurring_template_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid recurring_template_id")
		}
		filter.RecurringTemplateID = &v
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, transactionID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update transaction
// @Description Update a transaction. The resulting entry is validated as a whole.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Recurring occurrence already exists on that date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, transactionID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := services.TransactionUpdateFields{
		CreditAccountID: req.CreditAccountID,
		DebitAccountID:  req.DebitAccountID,
		Description:     req.Description,
	}
	if req.Type != nil {
		txType := ledger.TransactionType(*req.Type)
		fields.Type = &txType
	}
	if req.Amount != nil {
		amount := ledger.Cents(*req.Amount)
		fields.Amount = &amount
	}
	if req.Date != nil {
		date, parseErr := ledger.ParseDate(*req.Date)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		fields.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete a transaction. Deleting a realized occurrence doesn't affect its template.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, transactionID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}
