package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-pos-dashboard/internal/models"
)

// Connect opens the local store. It only holds staff accounts and device
// preferences; sales data always comes from the shop API.
func Connect(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is empty, please configure your database")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	var (
		db  *gorm.DB
		err error
	)
	// Wait for the database to be ready (mysql in docker compose starts late)
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Warn("failed to connect to database, retrying in 2 seconds",
			zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after 5 attempts: %w", err)
	}
	log.Info("connected to database", zap.String("driver", driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database schema synced")
	return db, nil
}

// Migrate creates or updates the local tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Preference{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
