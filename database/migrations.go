package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vitrine/models"
)

func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running local database migrations")

	err := db.AutoMigrate(
		&models.Image{},
		&models.Draft{},
	)
	if err != nil {
		log.Error("migrations failed", zap.Error(err))
		return err
	}

	log.Info("migrations completed")
	return nil
}
