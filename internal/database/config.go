package database

import (
	"fmt"
	"strings"

	"ledgerline/internal/config"
)

// Driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection settings for one of the supported drivers.
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string

	// Quiet silences GORM's statement logger.
	Quiet bool
}

// NewConfig builds the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:     cfg.DBDriver,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		SSLMode:    cfg.DBSSLMode,
		SQLitePath: cfg.SQLitePath,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SQLiteDSN returns the SQLite file path with foreign keys switched on.
func (c *Config) SQLiteDSN() string {
	sep := "?"
	if strings.Contains(c.SQLitePath, "?") {
		sep = "&"
	}
	return c.SQLitePath + sep + "_foreign_keys=on"
}

// MigrateURL returns the URL golang-migrate connects with.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
