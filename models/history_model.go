package models

import (
	"returns-app/controllers/idgen"
	"time"

	"gorm.io/gorm"
)

// TransactionHistory is the audit trail of a record moving through the
// workflow, one row per status change.
type TransactionHistory struct {
	ID        int64  `json:"ID" gorm:"primaryKey"`
	RecordNo  string `json:"record_no"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Detail    string `json:"detail"`
	CreatedAt time.Time
	CreatedBy int
	UpdatedAt time.Time
	UpdatedBy int
	DeletedAt gorm.DeletedAt
	DeletedBy int
}

func (u *TransactionHistory) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = idgen.GenerateID()
	return
}
