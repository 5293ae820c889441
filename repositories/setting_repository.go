package repositories

import (
	"returns-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Get(key string) (string, error) {
	var setting models.Setting
	if err := r.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *SettingRepository) GetAll() (map[string]string, error) {
	var settings []models.Setting
	if err := r.DB.Find(&settings).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return values, nil
}

func (r *SettingRepository) Put(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

// TelegramConfig returns the notification settings in one read. Enabled is
// false whenever the token or chat id is missing, regardless of the flag.
func (r *SettingRepository) TelegramConfig() (enabled bool, botToken, chatId string, err error) {
	values, err := r.GetAll()
	if err != nil {
		return false, "", "", err
	}

	botToken = values[models.SettingTelegramBotToken]
	chatId = values[models.SettingTelegramChatId]
	enabled = values[models.SettingTelegramEnabled] == "true" && botToken != "" && chatId != ""
	return enabled, botToken, chatId, nil
}
