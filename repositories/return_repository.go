package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"returns-app/controllers/helpers"
	"returns-app/models"
	"returns-app/workflow"

	"gorm.io/gorm"
)

type ReturnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) *ReturnRepository {
	return &ReturnRepository{db: db}
}

// ListFilter narrows the record listing. Zero values mean "no filter".
type ListFilter struct {
	Statuses     []string
	Branch       string
	DocumentType string
	DateFrom     string
	DateTo       string
	Search       string

	// Records under a canceled NCR report are hidden from every queue;
	// admin search can opt back in.
	IncludeCanceled bool
}

// canceledNCRCondition excludes children of canceled NCR reports.
func (r *ReturnRepository) applyCanceledNCRFilter(query *gorm.DB) *gorm.DB {
	sub := r.db.Model(&models.NCRReport{}).Select("ncr_no").Where("status = ?", "Canceled")
	return query.Where("ncr_number = '' OR ncr_number NOT IN (?)", sub)
}

func (r *ReturnRepository) List(filter ListFilter) ([]models.ReturnRecord, error) {
	query := r.db.Model(&models.ReturnRecord{}).Preload("Images")

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.DocumentType != "" {
		query = query.Where("document_type = ?", filter.DocumentType)
	}
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		q := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where(
			"record_no LIKE ? OR ref_no LIKE ? OR ncr_number LIKE ? OR document_no LIKE ? OR collection_order_id LIKE ? OR product_name LIKE ? OR product_code LIKE ?",
			q, q, q, q, q, q, q)
	}
	if !filter.IncludeCanceled {
		query = r.applyCanceledNCRFilter(query)
	}

	var records []models.ReturnRecord
	if err := query.Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListGrouped runs the grouping engine over a filtered listing, so a queue
// screen can act on whole paperwork batches.
func (r *ReturnRepository) ListGrouped(filter ListFilter) ([]workflow.Group, error) {
	records, err := r.List(filter)
	if err != nil {
		return nil, err
	}
	return workflow.GroupByDocument(records), nil
}

func (r *ReturnRepository) GetByRecordNo(recordNo string) (*models.ReturnRecord, error) {
	var record models.ReturnRecord
	if err := r.db.Preload("Images").First(&record, "record_no = ?", recordNo).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ReturnRepository) Create(record *models.ReturnRecord) error {
	return r.db.Create(record).Error
}

// CreateBatch inserts the items of one intake submission in a single
// transaction; intake is the only atomic batch in the workflow.
func (r *ReturnRepository) CreateBatch(records []*models.ReturnRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies a partial update by column map, the store's generic write.
// Status is deliberately not writable here; use UpdateStatus.
func (r *ReturnRepository) Update(recordNo string, fields map[string]interface{}) error {
	delete(fields, "status")
	if len(fields) == 0 {
		return nil
	}
	result := r.db.Model(&models.ReturnRecord{}).Where("record_no = ?", recordNo).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a record that was never submitted past intake. Anything
// already in the pipeline stays forever.
func (r *ReturnRepository) Delete(recordNo string, actor int) error {
	var record models.ReturnRecord
	if err := r.db.First(&record, "record_no = ?", recordNo).Error; err != nil {
		return err
	}
	if record.Status != workflow.StatusRequested {
		return workflow.ErrTransitionDenied
	}
	if err := r.db.Model(&record).Update("deleted_by", actor).Error; err != nil {
		return err
	}
	return r.db.Delete(&record).Error
}

// statusDateColumn maps a destination status to the timeline column it
// stamps.
func statusDateColumn(next string) string {
	switch {
	case next == workflow.StatusCompleted:
		return "date_completed"
	case next == workflow.StatusNCRHubReceived, next == workflow.StatusCOLHubReceived, next == workflow.StatusHubReceived:
		return "date_hub_received"
	case next == workflow.StatusNCRInTransit, next == workflow.StatusCOLInTransit, next == workflow.StatusInTransitToHub:
		return "date_in_transit"
	case next == workflow.StatusCOLBranchReceived, next == workflow.StatusBranchReceived:
		return "date_received"
	}
	return ""
}

// UpdateStatus moves one record to the next workflow status. The move must
// be present in the transition table; extra columns ride along in the same
// write (QC results, settlement fields).
func (r *ReturnRepository) UpdateStatus(recordNo, next string, extra map[string]interface{}, actor int) error {
	var record models.ReturnRecord
	if err := r.db.First(&record, "record_no = ?", recordNo).Error; err != nil {
		return err
	}

	if !workflow.CanTransition(record.Status, next) {
		return fmt.Errorf("%s: %q -> %q: %w", recordNo, record.Status, next, workflow.ErrTransitionDenied)
	}

	fields := map[string]interface{}{
		"status":     next,
		"updated_by": actor,
	}
	if col := statusDateColumn(next); col != "" {
		fields[col] = time.Now().Format("2006-01-02")
	}
	for k, v := range extra {
		fields[k] = v
	}

	if err := r.db.Model(&record).Updates(fields).Error; err != nil {
		return err
	}

	if err := helpers.InsertTransactionHistory(r.db, recordNo, next, "STATUS", record.Status+" -> "+next, actor); err != nil {
		// the audit trail must not block the workflow
		return nil
	}
	return nil
}

// BatchFailure reports one record that did not make it through a batch.
type BatchFailure struct {
	RecordNo string `json:"record_no"`
	Error    string `json:"error"`
}

// BatchResult is the outcome of a batch fan-out. There is no rollback:
// updated records stay updated even when siblings failed.
type BatchResult struct {
	Updated []string       `json:"updated"`
	Failed  []BatchFailure `json:"failed"`
}

// BatchUpdateStatus fans the same transition out over many records and
// waits for all of them to settle.
func (r *ReturnRepository) BatchUpdateStatus(recordNos []string, next string, extra map[string]interface{}, actor int) BatchResult {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result BatchResult
	)

	for _, recordNo := range recordNos {
		wg.Add(1)
		go func(no string) {
			defer wg.Done()
			err := r.UpdateStatus(no, next, extra, actor)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{RecordNo: no, Error: err.Error()})
				return
			}
			result.Updated = append(result.Updated, no)
		}(recordNo)
	}

	wg.Wait()
	return result
}

// GenerateRecordNo issues the next running number, RT<yymmdd><seq>.
func (r *ReturnRepository) GenerateRecordNo() (string, error) {
	return r.generateRunningNo(&models.ReturnRecord{}, "record_no", "RT")
}

func (r *ReturnRepository) generateRunningNo(model interface{}, column, prefix string) (string, error) {
	currentDate := time.Now().Format("060102")
	expectedLen := len(prefix) + 10

	var lastNo string
	// derived numbers (-SP splits) share the prefix but not the format
	err := r.db.Model(model).
		Select(column).
		Where(column+" LIKE ?", prefix+currentDate+"%").
		Where(column+" NOT LIKE ?", "%-SP%").
		Order(column + " DESC").
		Limit(1).
		Scan(&lastNo).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if lastNo != "" && len(lastNo) == expectedLen {
		lastSequence, _ := strconv.Atoi(lastNo[len(lastNo)-4:])
		return fmt.Sprintf("%s%s%04d", prefix, currentDate, lastSequence+1), nil
	}
	return fmt.Sprintf("%s%s%04d", prefix, currentDate, 1), nil
}

// CountsByStatus feeds the dashboard summary.
func (r *ReturnRepository) CountsByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	query := r.db.Model(&models.ReturnRecord{}).Select("status, COUNT(*) AS total").Group("status")
	if err := r.applyCanceledNCRFilter(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
