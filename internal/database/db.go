package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"venuspay-go/internal/config"
	"venuspay-go/internal/models"
)

// Connect opens the configured database and brings the schema up to date.
func Connect(cfg config.DBConfig, logger *log.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DataSource)
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DataSource); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DataSource)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer; serialise access through one connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("connected to database", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates the tables and seeds the settings row if it is missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Settings{}, &models.Payment{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	defaults := models.DefaultSettings()
	var s models.Settings
	if err := db.Where(models.Settings{ID: models.SettingsID}).Attrs(defaults).FirstOrCreate(&s).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
