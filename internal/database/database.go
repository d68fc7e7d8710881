// Package database opens the gorm connection and migrates the auction schema.
package database

import (
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/config"
	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database selected by DB_DRIVER, migrates it and configures the pool
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	utils.Info("database connected", map[string]any{"driver": cfg.DBDriver})

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := configurePool(db, cfg.DBDriver); err != nil {
		return nil, err
	}
	return db, nil
}

// Open wraps gorm.Open with the logrus bridge and driver error translation
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(utils.Logger(), level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
}

// Migrate creates or updates the users, auctions, bids and likes tables
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Auction{},
		&model.Bid{},
		&model.Like{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	utils.Info("database migration completed", nil)
	return nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off per connection
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func configurePool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql pool: %w", err)
	}
	if driver == "sqlite" {
		// one writer at a time avoids "database is locked" on file databases
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}
