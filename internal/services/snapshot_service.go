package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/metrics"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
)

// snapshotService handles net worth snapshot operations.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// ComputeAndRecordSnapshots records the net worth of every user with
// accounts. Running it twice for the same date overwrites that day's values.
func (s *snapshotService) ComputeAndRecordSnapshots(recordedAt ledger.Date) (int, error) {
	if recordedAt.IsZero() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidDate, "snapshot date is required")
	}

	var userIDs []string
	if err := s.db.Model(&models.Account{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, userID := range userIDs {
		snapshot, err := s.computeSnapshot(userID, recordedAt)
		if err != nil {
			return count, err
		}

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recorded_at"}},
			DoUpdates: clause.AssignmentColumns([]string{"net_worth", "assets", "liabilities"}),
		}).Create(snapshot).Error; err != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		count++
	}

	metrics.SnapshotsRecorded.Add(float64(count))
	return count, nil
}

// computeSnapshot folds every transaction dated on or before recordedAt, so a
// snapshot for a past date reflects the ledger as of that day.
func (s *snapshotService) computeSnapshot(userID string, recordedAt ledger.Date) (*models.NetWorthSnapshot, error) {
	accounts, err := userAccounts(s.db, userID, false)
	if err != nil {
		return nil, err
	}

	var rows []models.Transaction
	if err := s.db.Where("user_id = ? AND date <= ?", userID, recordedAt).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := ledger.Summarize(models.LedgerAccounts(accounts), models.LedgerTransactions(rows))
	return &models.NetWorthSnapshot{
		UserID:      userID,
		RecordedAt:  recordedAt,
		NetWorth:    summary.NetWorth,
		Assets:      summary.Assets,
		Liabilities: summary.Liabilities,
	}, nil
}

// GetSnapshots returns paginated snapshots for a user within a date range.
func (s *snapshotService) GetSnapshots(
	userID string,
	from, to ledger.Date,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	base := s.db.Model(&models.NetWorthSnapshot{}).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to)

	result, err := pagination.Find[models.NetWorthSnapshot](base, "recorded_at DESC", page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}
