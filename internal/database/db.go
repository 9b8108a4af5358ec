package database

import (
	"brand-portal/internal/config"
	"brand-portal/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Initialize(cfg *config.Config) error {
	var err error
	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	return Migrate(DB)
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Folder{},
		&models.Asset{},
		&models.AssetShare{},
		&models.Notification{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
