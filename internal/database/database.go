// Package database opens the GORM connection and applies schema migrations.
package database

import (
	"errors"
	"fmt"
	"time"

	"ledgerline/internal/logger"
	"ledgerline/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour
)

// MigrationsSource is where SQL migrations are read from.
const MigrationsSource = "file://migrations"

// Models lists every persisted model, in dependency order.
var Models = []interface{}{
	&models.Account{},
	&models.Transaction{},
	&models.RecurringTemplate{},
	&models.Budget{},
	&models.NetWorthSnapshot{},
	&models.AuditLog{},
}

// Manager owns the GORM connection pool for the configured driver.
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens a connection pool for config.Driver. An empty driver
// means postgres.
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres, "":
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	case DriverSQLite:
		dialector = sqlite.Open(config.SQLiteDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	gormConfig := &gorm.Config{}
	if config.Quiet {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get connection pool: %w", err)
	}
	if config.Driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	return &Manager{db: db, config: config}, nil
}

// RunMigrations brings the schema up to date. Postgres applies the SQL files
// from the migrations/ directory; SQLite is auto-migrated from the models.
func (m *Manager) RunMigrations() error {
	log := logger.Named("database")
	log.Infow("applying migrations", "driver", m.config.Driver)

	if m.config.Driver == DriverSQLite {
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		log.Infow("schema up to date", "models", len(Models))
		return nil
	}

	mig, err := NewMigrate(m.config)
	if err != nil {
		return err
	}
	defer CloseMigrate(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	if version, dirty, err := mig.Version(); err == nil {
		log.Infow("schema up to date", "version", version, "dirty", dirty)
	}
	return nil
}

// NewMigrate opens a golang-migrate instance over the SQL migrations.
func NewMigrate(config *Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(MigrationsSource, config.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	return mig, nil
}

// CloseMigrate releases a migrate instance, logging close errors.
func CloseMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logger.Named("database").Warnw("closing migrations", "error", err)
	}
}

// DB returns the GORM handle services are built on.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
