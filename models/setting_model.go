package models

import "gorm.io/gorm"

// Setting is a key/value row for runtime configuration editable from the
// admin screen (Telegram bot token, chat id, enabled flag).
type Setting struct {
	gorm.Model
	Key       string `json:"key" gorm:"unique"`
	Value     string `json:"value"`
	UpdatedBy int
}

// Setting keys used by the notification sink.
const (
	SettingTelegramEnabled  = "telegram_enabled"
	SettingTelegramBotToken = "telegram_bot_token"
	SettingTelegramChatId   = "telegram_chat_id"
)
