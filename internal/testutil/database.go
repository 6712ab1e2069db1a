// Package testutil provides in-memory databases, fixtures and assertions for
// package tests.
package testutil

import (
	"fmt"
	"testing"

	"ledgerline/internal/database"
	"ledgerline/internal/logger"

	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory SQLite database through the same
// manager the server uses and migrates every model into it.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	manager, err := database.NewManager(&database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID()),
		Quiet:      true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return manager.DB()
}

// TeardownTestDB closes the connection pool behind db.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
