package common

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNoDatabase = errors.New("local database path not set")

func ConnectDb(path string, log *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, ErrNoDatabase
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	log.Info("opened sqlite db", zap.String("path", path))
	return db, nil
}

// ConnectAnalyticsDb opens the separate analytics database. Analytics is
// optional: an empty path or a failure yields nil and tracking is disabled.
func ConnectAnalyticsDb(path string, log *zap.Logger) *gorm.DB {
	if path == "" {
		log.Info("analytics db not set, analytics disabled")
		return nil
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Warn("failed to open analytics db, analytics disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	log.Info("opened analytics db", zap.String("path", path))
	return db
}
