package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"returns-app/models"

	"gorm.io/gorm"
)

type NCRRepository struct {
	db *gorm.DB
}

func NewNCRRepository(db *gorm.DB) *NCRRepository {
	return &NCRRepository{db: db}
}

func (r *NCRRepository) Create(report *models.NCRReport) error {
	return r.db.Create(report).Error
}

func (r *NCRRepository) List(status string) ([]models.NCRReport, error) {
	query := r.db.Model(&models.NCRReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reports []models.NCRReport
	if err := query.Order("date DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *NCRRepository) GetByNo(ncrNo string) (*models.NCRReport, error) {
	var report models.NCRReport
	if err := r.db.First(&report, "ncr_no = ?", ncrNo).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *NCRRepository) Update(ncrNo string, fields map[string]interface{}) error {
	result := r.db.Model(&models.NCRReport{}).Where("ncr_no = ?", ncrNo).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel voids the report. Child records stay untouched in the store but
// the listing filters hide them from every queue from here on.
func (r *NCRRepository) Cancel(ncrNo, reason string, actor int) error {
	report, err := r.GetByNo(ncrNo)
	if err != nil {
		return err
	}
	if report.Status == "Canceled" {
		return nil
	}
	return r.db.Model(report).Updates(map[string]interface{}{
		"status":        "Canceled",
		"cancel_reason": reason,
		"updated_by":    actor,
	}).Error
}

// Items returns the report's child records, canceled or not.
func (r *NCRRepository) Items(ncrNo string) ([]models.ReturnRecord, error) {
	var records []models.ReturnRecord
	if err := r.db.Preload("Images").Where("ncr_number = ?", ncrNo).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GenerateNcrNo issues NCR-<yyyy>-<seq>, numbered per year.
func (r *NCRRepository) GenerateNcrNo() (string, error) {
	year := time.Now().Format("2006")
	prefix := "NCR-" + year + "-"

	var lastNo string
	err := r.db.Model(&models.NCRReport{}).
		Select("ncr_no").
		Where("ncr_no LIKE ?", prefix+"%").
		Order("id DESC").
		Limit(1).
		Scan(&lastNo).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	sequence := 1
	if len(lastNo) > len(prefix) {
		if last, err := strconv.Atoi(lastNo[len(prefix):]); err == nil {
			sequence = last + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}
