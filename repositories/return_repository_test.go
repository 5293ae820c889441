package repositories

import (
	"testing"

	"returns-app/controllers/idgen"
	"returns-app/models"
	"returns-app/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	idgen.Init()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ReturnRecord{},
		&models.ReturnImage{},
		&models.NCRReport{},
		&models.ReturnDocument{},
		&models.ReturnDocumentLine{},
		&models.TransactionHistory{},
	))

	t.Cleanup(func() {
		db.Exec("DELETE FROM return_records")
		db.Exec("DELETE FROM return_images")
		db.Exec("DELETE FROM ncr_reports")
		db.Exec("DELETE FROM return_documents")
		db.Exec("DELETE FROM return_document_lines")
		db.Exec("DELETE FROM transaction_histories")
	})
	return db
}

func seedRecord(t *testing.T, db *gorm.DB, record models.ReturnRecord) models.ReturnRecord {
	t.Helper()
	require.NoError(t, db.Create(&record).Error)
	return record
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{
		RecordNo: "RT2501010001",
		Status:   workflow.StatusNCRInTransit,
		Date:     "2025-01-01",
	})

	err := repo.UpdateStatus("RT2501010001", workflow.StatusNCRHubReceived, nil, 7)
	require.NoError(t, err)

	record, err := repo.GetByRecordNo("RT2501010001")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusNCRHubReceived, record.Status)
	assert.NotEmpty(t, record.DateHubReceived)
	assert.Equal(t, 7, record.UpdatedBy)

	var histories []models.TransactionHistory
	require.NoError(t, db.Where("record_no = ?", "RT2501010001").Find(&histories).Error)
	require.Len(t, histories, 1)
	assert.Equal(t, workflow.StatusNCRHubReceived, histories[0].Status)
}

func TestUpdateStatusDeniesIllegalMove(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{
		RecordNo: "RT2501010002",
		Status:   workflow.StatusNCRHubReceived,
		Date:     "2025-01-01",
	})

	// documents cannot be issued before QC in the NCR flow
	err := repo.UpdateStatus("RT2501010002", workflow.StatusNCRDocumented, nil, 7)
	assert.ErrorIs(t, err, workflow.ErrTransitionDenied)

	record, err := repo.GetByRecordNo("RT2501010002")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusNCRHubReceived, record.Status)
}

func TestUpdateStatusCarriesExtraColumns(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{
		RecordNo: "RT2501010003",
		Status:   workflow.StatusNCRHubReceived,
		Date:     "2025-01-01",
	})

	err := repo.UpdateStatus("RT2501010003", workflow.StatusNCRQCCompleted, map[string]interface{}{
		"condition":     workflow.ConditionNew,
		"disposition":   workflow.DispositionRestock,
		"seller_name":   "ร้านของถูก 20 บาท",
		"contact_phone": "081-999-8888",
	}, 7)
	require.NoError(t, err)

	record, err := repo.GetByRecordNo("RT2501010003")
	require.NoError(t, err)
	assert.Equal(t, workflow.ConditionNew, record.Condition)
	assert.Equal(t, workflow.DispositionRestock, record.Disposition)
	assert.Equal(t, "ร้านของถูก 20 บาท", record.SellerName)
}

func TestBatchUpdateStatusPartialFailure(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{RecordNo: "B1", Status: workflow.StatusNCRInTransit, Date: "2025-01-01"})
	seedRecord(t, db, models.ReturnRecord{RecordNo: "B2", Status: workflow.StatusNCRInTransit, Date: "2025-01-01"})
	// B3 is already past the hub; the same transition must fail for it
	seedRecord(t, db, models.ReturnRecord{RecordNo: "B3", Status: workflow.StatusNCRQCCompleted, Date: "2025-01-01"})

	result := repo.BatchUpdateStatus([]string{"B1", "B2", "B3", "B4"}, workflow.StatusNCRHubReceived, nil, 7)

	assert.ElementsMatch(t, []string{"B1", "B2"}, result.Updated)
	require.Len(t, result.Failed, 2)

	// partial failure leaves the successes committed
	record, err := repo.GetByRecordNo("B1")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusNCRHubReceived, record.Status)

	record, err = repo.GetByRecordNo("B3")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusNCRQCCompleted, record.Status)
}

func TestListHidesCanceledNCRChildren(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)
	ncrRepo := NewNCRRepository(db)

	require.NoError(t, ncrRepo.Create(&models.NCRReport{NcrNo: "NCR-2025-001", Date: "2025-01-01", Status: "Open"}))
	seedRecord(t, db, models.ReturnRecord{RecordNo: "C1", NcrNumber: "NCR-2025-001", Status: workflow.StatusNCRHubReceived, Date: "2025-01-02"})
	seedRecord(t, db, models.ReturnRecord{RecordNo: "C2", Status: workflow.StatusNCRHubReceived, Date: "2025-01-02"})

	records, err := repo.List(ListFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, ncrRepo.Cancel("NCR-2025-001", "แจ้งซ้ำ", 7))

	records, err = repo.List(ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C2", records[0].RecordNo)

	// admin search can still reach the hidden record
	records, err = repo.List(ListFilter{IncludeCanceled: true})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	counts, err := repo.CountsByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[workflow.StatusNCRHubReceived])
}

func TestListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{RecordNo: "F1", Branch: "พิษณุโลก", DocumentType: "NCR", Status: workflow.StatusRequested, Date: "2025-01-01", ProductName: "เลย์ รสมันฝรั่งแท้ 50g"})
	seedRecord(t, db, models.ReturnRecord{RecordNo: "F2", Branch: "เชียงใหม่", DocumentType: "LOGISTICS", Status: workflow.StatusCOLJobAccepted, Date: "2025-02-01"})

	records, err := repo.List(ListFilter{Branch: "พิษณุโลก"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "F1", records[0].RecordNo)

	records, err = repo.List(ListFilter{Statuses: []string{workflow.StatusCOLJobAccepted}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "F2", records[0].RecordNo)

	records, err = repo.List(ListFilter{Search: "เลย์"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = repo.List(ListFilter{DateFrom: "2025-01-15"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "F2", records[0].RecordNo)
}

func TestListGroupedUsesGroupingEngine(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{RecordNo: "G1", NcrNumber: "NCR 2025 009", Status: workflow.StatusNCRHubReceived, Date: "2025-03-01"})
	seedRecord(t, db, models.ReturnRecord{RecordNo: "G2", NcrNumber: "ncr2025009", Status: workflow.StatusNCRHubReceived, Date: "2025-03-01"})

	groups, err := repo.ListGrouped(ListFilter{Statuses: []string{workflow.StatusNCRHubReceived}})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, 2)
}

func TestUpdateIgnoresStatusColumn(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{RecordNo: "U1", Status: workflow.StatusRequested, Date: "2025-01-01"})

	err := repo.Update("U1", map[string]interface{}{
		"status":        workflow.StatusCompleted,
		"customer_name": "ร้านป้าสมร มินิมาร์ท",
	})
	require.NoError(t, err)

	record, err := repo.GetByRecordNo("U1")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRequested, record.Status)
	assert.Equal(t, "ร้านป้าสมร มินิมาร์ท", record.CustomerName)

	err = repo.Update("missing", map[string]interface{}{"customer_name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteOnlyBeforeSubmission(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	seedRecord(t, db, models.ReturnRecord{RecordNo: "D1", Status: workflow.StatusRequested, Date: "2025-01-01"})
	seedRecord(t, db, models.ReturnRecord{RecordNo: "D2", Status: workflow.StatusNCRInTransit, Date: "2025-01-01"})

	require.NoError(t, repo.Delete("D1", 7))
	assert.ErrorIs(t, repo.Delete("D2", 7), workflow.ErrTransitionDenied)

	_, err := repo.GetByRecordNo("D1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGenerateRecordNo(t *testing.T) {
	db := openTestDB(t)
	repo := NewReturnRepository(db)

	first, err := repo.GenerateRecordNo()
	require.NoError(t, err)
	assert.Regexp(t, `^RT\d{6}0001$`, first)

	seedRecord(t, db, models.ReturnRecord{RecordNo: first, Status: workflow.StatusRequested, Date: "2025-01-01"})

	second, err := repo.GenerateRecordNo()
	require.NoError(t, err)
	assert.Regexp(t, `^RT\d{6}0002$`, second)
}
