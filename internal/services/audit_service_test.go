package services

import (
	"strings"
	"testing"

	"ledgerline/internal/models"
	"ledgerline/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	entriesFor := func(userID string) []models.AuditLog {
		var entries []models.AuditLog
		db.Where("user_id = ?", userID).Find(&entries)
		return entries
	}

	t.Run("stores_changes_as_json", func(t *testing.T) {
		userID := testutil.NewUserID()
		svc.Log(userID, "CREATE_TRANSACTION", "transaction", "tx-1", "127.0.0.1", map[string]interface{}{"amount": 1467})

		entries := entriesFor(userID)
		if len(entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(entries))
		}
		if entries[0].Changes != `{"amount":1467}` {
			t.Errorf("unexpected changes payload %q", entries[0].Changes)
		}
		if entries[0].ResourceID != "tx-1" || entries[0].Action != "CREATE_TRANSACTION" {
			t.Errorf("unexpected entry %+v", entries[0])
		}
	})

	t.Run("empty_changes_store_nothing", func(t *testing.T) {
		userID := testutil.NewUserID()
		svc.Log(userID, "UPDATE_ACCOUNT", "account", "acc-1", "127.0.0.1", map[string]interface{}{})

		entries := entriesFor(userID)
		if len(entries) != 1 || entries[0].Changes != "" {
			t.Errorf("expected one entry without changes, got %+v", entries)
		}
	})

	t.Run("oversized_changes_are_truncated", func(t *testing.T) {
		userID := testutil.NewUserID()
		svc.Log(userID, "UPDATE_TRANSACTION", "transaction", "tx-2", "", map[string]interface{}{
			"description": strings.Repeat("x", maxChangesBytes),
		})

		entries := entriesFor(userID)
		if len(entries) != 1 || entries[0].Changes != `{"truncated":true}` {
			t.Errorf("expected truncated marker, got %+v", entries)
		}
	})

	t.Run("skips_entries_without_user", func(t *testing.T) {
		svc.Log("", "REALIZE_RECURRING", "recurring_template", "tpl-1", "", nil)

		var count int64
		db.Model(&models.AuditLog{}).Where("resource_id = ?", "tpl-1").Count(&count)
		if count != 0 {
			t.Errorf("expected no entry, got %d", count)
		}
	})
}
