package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/logger"
	"ledgerline/internal/metrics"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/realize"
)

// maxUpcomingDays bounds the projection window of GetUpcoming.
const maxUpcomingDays = 2 * 366

// Realization triggers, used as metric labels.
const (
	TriggerBackfill = "backfill"
	TriggerUser     = "user"
	TriggerPipeline = "pipeline"
)

// recurringService handles recurring templates and their realization.
type recurringService struct {
	db       *gorm.DB
	realizer *realize.Service
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, realizer *realize.Service) RecurringServicer {
	return &recurringService{db: db, realizer: realizer}
}

// CreateTemplate validates and stores a template. With Backfill set, every
// occurrence from the start date up to today is realized in the same
// database transaction.
func (s *recurringService) CreateTemplate(userID string, input TemplateInput, today ledger.Date) (*TemplateWithNext, error) {
	tpl := &models.RecurringTemplate{
		UserID:          userID,
		Description:     strings.TrimSpace(input.Description),
		Type:            input.Type,
		Amount:          input.Amount,
		CreditAccountID: input.CreditAccountID,
		DebitAccountID:  input.DebitAccountID,
		IsActive:        true,
	}
	tpl.SetRule(input.Rule)

	accounts, err := validationAccounts(s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := tpl.ToRealize().Validate(accounts); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tpl).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if !input.Backfill {
			return nil
		}
		created, err := s.realize(tx, userID, []models.RecurringTemplate{*tpl}, today, realize.Options{IncludePast: true})
		metrics.ObserveRealization(TriggerBackfill, created, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetTemplateByID(userID, tpl.ID)
}

// GetUserTemplates retrieves a paginated list of a user's templates.
func (s *recurringService) GetUserTemplates(userID string, isActive *bool, page pagination.PageRequest) (*pagination.PageResponse[TemplateWithNext], error) {
	base := s.db.Model(&models.RecurringTemplate{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	templates, err := pagination.Find[models.RecurringTemplate](base, "start_date ASC, id ASC", page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result := pagination.MapPage(templates, s.withNext)
	return &result, nil
}

// GetTemplateByID retrieves a template by ID for a specific user.
func (s *recurringService) GetTemplateByID(userID, templateID string) (*TemplateWithNext, error) {
	tpl, err := s.findTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}
	out := s.withNext(*tpl)
	return &out, nil
}

// UpdateTemplate applies the given fields and revalidates the template. The
// checkpoint is kept, so occurrences on or before it are not realized again
// under the new rule.
func (s *recurringService) UpdateTemplate(userID, templateID string, fields TemplateUpdateFields) (*TemplateWithNext, error) {
	tpl, err := s.findTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}

	if fields.Description != nil {
		tpl.Description = strings.TrimSpace(*fields.Description)
	}
	if fields.Type != nil {
		tpl.Type = *fields.Type
	}
	if fields.Amount != nil {
		tpl.Amount = *fields.Amount
	}
	if fields.CreditAccountID != nil {
		tpl.CreditAccountID = *fields.CreditAccountID
	}
	if fields.DebitAccountID != nil {
		tpl.DebitAccountID = *fields.DebitAccountID
	}
	if fields.Rule != nil {
		tpl.SetRule(*fields.Rule)
	}
	if fields.IsActive != nil {
		tpl.IsActive = *fields.IsActive
	}

	accounts, err := validationAccounts(s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := tpl.ToRealize().Validate(accounts); err != nil {
		return nil, err
	}

	if err := s.db.Save(tpl).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTemplateByID(userID, templateID)
}

// DeleteTemplate soft-deletes a template. Transactions already realized from
// it are kept and still point at it.
func (s *recurringService) DeleteTemplate(userID, templateID string) error {
	tpl, err := s.findTemplate(userID, templateID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tpl).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUpcoming projects the transactions a template will produce in the
// window, from tomorrow on. Nothing is stored.
func (s *recurringService) GetUpcoming(userID, templateID string, windowStart, windowEnd ledger.Date) ([]ledger.Transaction, error) {
	if windowStart.IsZero() || windowEnd.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, "from and to are required")
	}
	if windowEnd.Before(windowStart) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}
	if windowStart.DaysUntil(windowEnd) > maxUpcomingDays {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("window can't be longer than %d days", maxUpcomingDays))
	}

	tpl, err := s.findTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}
	upcoming := s.realizer.Project(tpl.ToRealize(), windowStart, windowEnd)
	if upcoming == nil {
		upcoming = []ledger.Transaction{}
	}
	return upcoming, nil
}

// RealizeDue creates the transactions due up to today for a user's active
// templates.
func (s *recurringService) RealizeDue(userID string, today ledger.Date) (*RealizeResult, error) {
	var templates []models.RecurringTemplate
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date ASC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var created int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.realize(tx, userID, templates, today, realize.Options{})
		return err
	})
	metrics.ObserveRealization(TriggerUser, created, err)
	if err != nil {
		return nil, err
	}
	return &RealizeResult{Templates: len(templates), Created: created}, nil
}

// RealizeAll realizes due transactions for every user. Each user is written in
// its own database transaction; a failing user doesn't block the others.
func (s *recurringService) RealizeAll(today ledger.Date) (*RealizeResult, error) {
	var templates []models.RecurringTemplate
	if err := s.db.Where("is_active = ?", true).
		Order("user_id ASC, start_date ASC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byUser := make(map[string][]models.RecurringTemplate)
	var users []string
	for _, tpl := range templates {
		if _, ok := byUser[tpl.UserID]; !ok {
			users = append(users, tpl.UserID)
		}
		byUser[tpl.UserID] = append(byUser[tpl.UserID], tpl)
	}

	result := &RealizeResult{}
	var firstErr error
	for _, userID := range users {
		var created int
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			created, err = s.realize(tx, userID, byUser[userID], today, realize.Options{})
			return err
		})
		metrics.ObserveRealization(TriggerPipeline, created, err)
		if err != nil {
			logger.Get().Errorw("recurring realization failed", "user_id", userID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Templates += len(byUser[userID])
		result.Created += created
	}
	return result, firstErr
}

// realize runs the realization service over templates and persists its
// result with tx: new transactions are inserted, skipping any
// (template, date) pair that already exists, and checkpoints are advanced.
func (s *recurringService) realize(tx *gorm.DB, userID string, templates []models.RecurringTemplate, today ledger.Date, opts realize.Options) (int, error) {
	if len(templates) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(templates))
	inputs := make([]realize.Template, 0, len(templates))
	for i := range templates {
		ids = append(ids, templates[i].ID)
		inputs = append(inputs, templates[i].ToRealize())
	}

	existing, err := realizedIndex(tx, ids)
	if err != nil {
		return 0, err
	}

	res := s.realizer.RealizeMany(inputs, existing, today, opts)

	created := 0
	if len(res.Transactions) > 0 {
		rows := make([]models.Transaction, 0, len(res.Transactions))
		for _, t := range res.Transactions {
			rows = append(rows, models.TransactionFromLedger(userID, t))
		}
		// A concurrent run may have inserted the same occurrence already.
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		if result.Error != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		created = int(result.RowsAffected)
	}

	for i := range templates {
		checkpoint, ok := res.Checkpoints[templates[i].ID]
		if !ok || checkpoint == templates[i].LastRealizedDate {
			continue
		}
		if err := tx.Model(&models.RecurringTemplate{}).
			Where("id = ?", templates[i].ID).
			Update("last_realized_date", checkpoint).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if created > 0 {
		logger.Get().Infow("realized recurring transactions", "user_id", userID, "created", created, "today", today.String())
	}
	return created, nil
}

// realizedIndex loads the dates already realized for the templates,
// soft-deleted transactions included so deleted occurrences stay deleted.
func realizedIndex(db *gorm.DB, templateIDs []string) (ledger.RecurringIndex, error) {
	type occurrence struct {
		RecurringTemplateID string
		Date                ledger.Date
	}
	var rows []occurrence
	if err := db.Unscoped().Model(&models.Transaction{}).
		Select("recurring_template_id, date").
		Where("recurring_template_id IN ?", templateIDs).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	idx := ledger.RecurringIndex{}
	for _, r := range rows {
		idx.Add(r.RecurringTemplateID, r.Date)
	}
	return idx, nil
}

func (s *recurringService) findTemplate(userID, templateID string) (*models.RecurringTemplate, error) {
	var tpl models.RecurringTemplate
	if err := s.db.Where("id = ? AND user_id = ?", templateID, userID).First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tpl, nil
}

func (s *recurringService) withNext(tpl models.RecurringTemplate) TemplateWithNext {
	out := TemplateWithNext{RecurringTemplate: tpl}
	if !tpl.IsActive {
		return out
	}
	from := s.realizer.Engine().Today()
	if !tpl.LastRealizedDate.IsZero() && !tpl.LastRealizedDate.Before(from) {
		from = tpl.LastRealizedDate.AddDays(1)
	}
	if next, ok := s.realizer.Engine().NextOccurrence(tpl.Rule(), from); ok {
		out.NextOccurrence = &next
	}
	return out
}
