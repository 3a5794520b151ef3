package db

import (
	"fmt"

	"gorm.io/gorm"

	"orbit-expenses/pkg/logger"
)

// Migrate creates or extends the tables for models. The hosted postgres schema
// is owned outside this service; this is for sqlite and fresh local databases.
func Migrate(db *gorm.DB, log logger.Logger, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("db: schema ready", "tables", len(models))
	return nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
