package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"ledgerline/internal/logger"
	"ledgerline/internal/models"
)

// maxChangesBytes caps the stored change payload; larger payloads are
// replaced by a marker.
const maxChangesBytes = 4096

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit entry. Failures are logged and swallowed: the ledger
// write that triggered the entry has already committed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Named("audit")
	if userID == "" {
		log.Warnw("dropping audit entry without user", "action", action, "resource_id", resourceID)
		return
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(changes, action),
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to write audit entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

func encodeChanges(changes map[string]any, action string) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Named("audit").Errorw("failed to encode audit changes", "error", err, "action", action)
		return "{}"
	}
	if len(data) > maxChangesBytes {
		return `{"truncated":true}`
	}
	return string(data)
}
