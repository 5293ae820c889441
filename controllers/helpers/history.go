package helpers

import (
	"returns-app/models"
	"time"

	"gorm.io/gorm"
)

// InsertTransactionHistory inserts one audit row for a status change.
func InsertTransactionHistory(db *gorm.DB, recordNo, status, txType, detail string, actor int) error {
	history := models.TransactionHistory{
		RecordNo:  recordNo,
		Status:    status,
		Type:      txType,
		Detail:    detail,
		CreatedAt: time.Now(),
		CreatedBy: actor,
		UpdatedAt: time.Now(),
		UpdatedBy: actor,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}
