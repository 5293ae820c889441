// database/seeder.go
package database

import (
	"errors"
	"log"

	"returns-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedSettings(db)
}

func SeedUserMaster(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash seed password:", err)
		return
	}

	users := []models.User{
		{
			Username: "admin",
			Password: string(hash),
			Name:     "Admin",
			Email:    "admin@example.com",
			Role:     "admin",
			Branch:   "สำนักงานใหญ่",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Println("Failed to insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}

func SeedSettings(db *gorm.DB) {
	settings := []models.Setting{
		{Key: models.SettingTelegramEnabled, Value: "false"},
		{Key: models.SettingTelegramBotToken, Value: ""},
		{Key: models.SettingTelegramChatId, Value: ""},
	}

	for _, s := range settings {
		var existing models.Setting
		err := db.Where("key = ?", s.Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&s).Error; err != nil {
				log.Println("Failed to insert setting:", s.Key, err)
			}
		}
	}
}
