// database/migrate.go
package database

import (
	"returns-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.ReturnRecord{},
		&models.ReturnImage{},
		&models.NCRReport{},
		&models.ReturnDocument{},
		&models.ReturnDocumentLine{},
		&models.Setting{},
		&models.TransactionHistory{},
	)
}
