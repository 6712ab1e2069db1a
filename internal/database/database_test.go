package database

import (
	"testing"

	"ledgerline/internal/logger"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"ledgerline.db", "ledgerline.db?_foreign_keys=on"},
		{"file:test?mode=memory", "file:test?mode=memory&_foreign_keys=on"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := &Config{SQLitePath: tt.path}
			if got := c.SQLiteDSN(); got != tt.want {
				t.Errorf("SQLiteDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMigrateURL(t *testing.T) {
	c := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "ledger", SSLMode: "disable"}
	want := "postgres://u:p@db:5432/ledger?sslmode=disable"
	if got := c.MigrateURL(); got != want {
		t.Errorf("MigrateURL() = %q, want %q", got, want)
	}
}

func TestNewManager(t *testing.T) {
	logger.Init("test")

	t.Run("unsupported_driver", func(t *testing.T) {
		if _, err := NewManager(&Config{Driver: "mysql"}); err == nil {
			t.Error("expected an error for mysql")
		}
	})

	t.Run("sqlite_auto_migrates", func(t *testing.T) {
		m, err := NewManager(&Config{Driver: DriverSQLite, SQLitePath: "file:managertest?mode=memory&cache=shared", Quiet: true})
		if err != nil {
			t.Fatalf("NewManager: %v", err)
		}
		defer m.Close()

		if err := m.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations: %v", err)
		}
		for _, table := range []string{"accounts", "transactions", "recurring_templates", "budgets", "net_worth_snapshots", "audit_logs"} {
			if !m.DB().Migrator().HasTable(table) {
				t.Errorf("expected table %s", table)
			}
		}
	})
}
