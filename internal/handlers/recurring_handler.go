package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/pagination"
	"ledgerline/internal/schedule"
	"ledgerline/internal/services"
)

// RecurringHandler handles recurring template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	auditService     services.AuditServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, auditService services.AuditServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, auditService: auditService}
}

// RuleRequest describes a recurrence rule. When anchor is omitted it is
// derived from the start date: its weekday, day of month, or day of year.
type RuleRequest struct {
	Frequency string `json:"frequency" binding:"required,frequency"`
	Interval  int    `json:"interval" binding:"omitempty,min=1"`
	Anchor    *int   `json:"anchor" binding:"omitempty,min=0,max=365"`
	StartDate string `json:"start_date" binding:"required,ledger_date"`
	EndKind   string `json:"end_kind" binding:"omitempty,end_kind"`
	EndCount  int    `json:"end_count" binding:"omitempty,min=1"`
	EndDate   string `json:"end_date" binding:"omitempty,ledger_date"`
}

func (r RuleRequest) toRule() (schedule.Rule, error) {
	start, err := ledger.ParseDate(r.StartDate)
	if err != nil {
		return schedule.Rule{}, err
	}
	end, err := parseOptionalDate("end_date", r.EndDate)
	if err != nil {
		return schedule.Rule{}, err
	}

	freq := schedule.Frequency(r.Frequency)
	rule := schedule.Rule{
		Interval:  r.Interval,
		Frequency: freq,
		StartDate: start,
		End:       schedule.End{Kind: schedule.EndKind(r.EndKind), Count: r.EndCount, Date: end},
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	if rule.End.Kind == "" {
		rule.End.Kind = schedule.EndNever
	}
	if r.Anchor != nil {
		rule.Anchor = *r.Anchor
	} else {
		rule.Anchor = schedule.AnchorFor(freq, start)
	}
	return rule.Normalize(), nil
}

// CreateTemplateRequest represents the request payload for creating a recurring template.
type CreateTemplateRequest struct {
	Description     string      `json:"description" binding:"max=500"`
	Type            string      `json:"type" binding:"required,transaction_type"`
	Amount          int64       `json:"amount" binding:"required,gt=0"`
	CreditAccountID string      `json:"credit_account_id" binding:"required,uuid"`
	DebitAccountID  string      `json:"debit_account_id" binding:"required,uuid"`
	Rule            RuleRequest `json:"rule" binding:"required"`
	Backfill        bool        `json:"backfill"`
}

// UpdateTemplateRequest represents the request payload for updating a recurring template.
// A new rule replaces the old one entirely.
type UpdateTemplateRequest struct {
	Description     *string      `json:"description" binding:"omitempty,max=500"`
	Type            *string      `json:"type" binding:"omitempty,transaction_type"`
	Amount          *int64       `json:"amount" binding:"omitempty,gt=0"`
	CreditAccountID *string      `json:"credit_account_id" binding:"omitempty,uuid"`
	DebitAccountID  *string      `json:"debit_account_id" binding:"omitempty,uuid"`
	Rule            *RuleRequest `json:"rule"`
	IsActive        *bool        `json:"is_active"`
}

// CreateTemplate handles the creation of a recurring template.
// @Summary     Create a recurring template
// @Description Create a recurring transaction. With backfill set, every occurrence from the start date up to today is created immediately.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} services.TemplateWithNext "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := req.Rule.toRule()
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.recurringService.CreateTemplate(userID, services.TemplateInput{
		Description:     req.Description,
		Type:            ledger.TransactionType(req.Type),
		Amount:          ledger.Cents(req.Amount),
		CreditAccountID: req.CreditAccountID,
		DebitAccountID:  req.DebitAccountID,
		Rule:            rule,
		Backfill:        req.Backfill,
	}, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING", "recurring_template", template.ID, c.ClientIP(),
		map[string]interface{}{"frequency": rule.Frequency, "amount": req.Amount, "backfill": req.Backfill})

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTemplates handles listing recurring templates.
// @Summary     Get recurring templates
// @Description Get a paginated list of recurring templates with their next occurrence
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool false "Filter by active status"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.TemplateWithNext] "Paginated templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [get]
func (h *RecurringHandler) GetTemplates(c *gin.Context) {
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

	result, err := h.recurringService.GetUserTemplates(userID, isActive, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTemplate handles retrieving a recurring template.
// @Summary     Get recurring template by ID
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} services.TemplateWithNext "Template details"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [get]
func (h *RecurringHandler) GetTemplate(c *gin.Context) {
	userID, templateID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	template, err := h.recurringService.GetTemplateByID(userID, templateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// UpdateTemplate handles updating a recurring template.
// @Summary     Update recurring template
// @Description Update a template. Already realized transactions are left untouched.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Template ID"
// @Param       request body UpdateTemplateRequest true "Fields to update"
// @Success     200 {object} services.TemplateWithNext "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [put]
func (h *RecurringHandler) UpdateTemplate(c *gin.Context) {
	userID, templateID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	var req UpdateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := services.TemplateUpdateFields{
		Description:     req.Description,
		CreditAccountID: req.CreditAccountID,
		DebitAccountID:  req.DebitAccountID,
		IsActive:        req.IsActive,
	}
	if req.Type != nil {
		txType := ledger.TransactionType(*req.Type)
		fields.Type = &txType
	}
	if req.Amount != nil {
		amount := ledger.Cents(*req.Amount)
		fields.Amount = &amount
	}
	if req.Rule != nil {
		rule, ruleErr := req.Rule.toRule()
		if ruleErr != nil {
			respondWithError(c, ruleErr)
			return
		}
		fields.Rule = &rule
	}

	template, err := h.recurringService.UpdateTemplate(userID, templateID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_RECURRING", "recurring_template", templateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTemplate handles deleting a recurring template.
// @Summary     Delete recurring template
// @Description Delete a template. Transactions it already produced are kept.
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} MessageResponse "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteTemplate(c *gin.Context) {
	userID, templateID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	if err := h.recurringService.DeleteTemplate(userID, templateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING", "recurring_template", templateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Recurring template deleted"})
}

// GetUpcoming handles projecting a template's future transactions.
// @Summary     Get upcoming occurrences
// @Description Project the transactions a template will create between from and to. Only dates after today are returned and nothing is stored.
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string true "Template ID"
// @Param       from query string false "Window start (YYYY-MM-DD, default today)"
// @Param       to   query string true  "Window end (YYYY-MM-DD)"
// @Success     200 {array}  ledger.Transaction "Upcoming transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id}/upcoming [get]
func (h *RecurringHandler) GetUpcoming(c *gin.Context) {
	userID, templateID, ok := requireUserAndID(c, "id")
	if !ok {
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if to == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDate, "to is required"))
		return
	}
	windowStart := today()
	if from != nil {
		windowStart = *from
	}

	upcoming, err := h.recurringService.GetUpcoming(userID, templateID, windowStart, *to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming})
}

// RealizeDue handles realizing the caller's due recurring transactions.
// @Summary     Realize due transactions
// @Description Create every recurring transaction due up to today. Running it again creates nothing new.
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.RealizeResult "Realization result"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/realize [post]
func (h *RecurringHandler) RealizeDue(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.recurringService.RealizeDue(userID, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Created > 0 {
		h.auditService.Log(userID, "REALIZE_RECURRING", "recurring_template", "", c.ClientIP(),
			map[string]interface{}{"created": result.Created})
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// RealizeAllRequest represents the request payload of the pipeline
// realization. Today accepts YYYY-MM-DD or an RFC3339 timestamp and
// defaults to the server's date.
type RealizeAllRequest struct {
	Today string `json:"today"`
}

// RealizeAll handles realizing due recurring transactions for every user.
// @Summary     Realize recurring transactions
// @Description Create every recurring transaction due up to today for all users (pipeline endpoint). Safe to re-run.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key header   string            true  "Pipeline API key"
// @Param       request   body     RealizeAllRequest false "Realization parameters"
// @Success     200       {object} services.RealizeResult "Realization result"
// @Failure     400       {object} ErrorResponse "Invalid input"
// @Failure     401       {object} ErrorResponse "Invalid API key"
// @Failure     503       {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/realize [post]
func (h *RecurringHandler) RealizeAll(c *gin.Context) {
	var req RealizeAllRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	day := today()
	if req.Today != "" {
		parsed, err := ledger.NormalizeDate(req.Today)
		if err != nil {
			respondWithError(c, err)
			return
		}
		day = parsed
	}

	result, err := h.recurringService.RealizeAll(day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "today": day})
}
