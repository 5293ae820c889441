package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"returns-app/controllers/idgen"
	"returns-app/models"
	"returns-app/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openControllerDB(t *testing.T) *gorm.DB {
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
		&models.Setting{},
		&models.TransactionHistory{},
	))

	t.Cleanup(func() {
		db.Exec("DELETE FROM return_records")
		db.Exec("DELETE FROM return_images")
		db.Exec("DELETE FROM ncr_reports")
		db.Exec("DELETE FROM return_documents")
		db.Exec("DELETE FROM return_document_lines")
		db.Exec("DELETE FROM settings")
		db.Exec("DELETE FROM transaction_histories")
	})
	return db
}

// newControllerApp wires a handler the way the route files do, with the
// user id local the auth middleware would have set.
func newControllerApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", float64(7))
		return c.Next()
	})
	register(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestGenerateDocumentsCollectionHubStock(t *testing.T) {
	db := openControllerDB(t)
	controller := NewDocumentController(db)
	app := newControllerApp(func(app *fiber.App) {
		app.Post("/documents", controller.Generate)
	})

	require.NoError(t, db.Create(&models.ReturnRecord{
		RecordNo:     "RT2501010001",
		DocumentType: "LOGISTICS",
		Status:       workflow.StatusCOLHubReceived,
		Condition:    workflow.ConditionUnknown,
		Disposition:  workflow.DispositionPending,
		ProductCode:  "P-001",
		ProductName:  "เลย์รสโนริสาหร่าย",
		Quantity:     5,
		Unit:         "ลัง",
		PriceBill:    1250,
		Date:         "2025-01-01",
	}).Error)

	code := postJSON(t, app, "/documents",
		`{"record_nos":["RT2501010001"],"disposition":"RTV","branch":"สาขาขอนแก่น"}`)
	assert.Equal(t, fiber.StatusCreated, code)

	var record models.ReturnRecord
	require.NoError(t, db.Where("record_no = ?", "RT2501010001").First(&record).Error)
	assert.Equal(t, workflow.StatusCOLDocumented, record.Status)
	assert.Equal(t, workflow.DispositionRTV, record.Disposition)
	assert.NotEmpty(t, record.DocumentNo)

	var document models.ReturnDocument
	require.NoError(t, db.Preload("Lines").Where("document_no = ?", record.DocumentNo).First(&document).Error)
	require.Len(t, document.Lines, 1)
	assert.Equal(t, "RT2501010001", document.Lines[0].RecordNo)
	assert.Equal(t, 1250.0, document.Net)
}

func TestGenerateDocumentsRejectsUngradedNCRItem(t *testing.T) {
	db := openControllerDB(t)
	controller := NewDocumentController(db)
	app := newControllerApp(func(app *fiber.App) {
		app.Post("/documents", controller.Generate)
	})

	require.NoError(t, db.Create(&models.ReturnRecord{
		RecordNo:     "RT2501010002",
		DocumentType: "NCR",
		NcrNumber:    "NCR-2025-001",
		Status:       workflow.StatusNCRHubReceived,
		Condition:    workflow.ConditionUnknown,
		Disposition:  workflow.DispositionPending,
		Date:         "2025-01-01",
	}).Error)

	code := postJSON(t, app, "/documents",
		`{"record_nos":["RT2501010002"],"disposition":"RTV"}`)
	assert.Equal(t, fiber.StatusConflict, code)

	var record models.ReturnRecord
	require.NoError(t, db.Where("record_no = ?", "RT2501010002").First(&record).Error)
	assert.Equal(t, workflow.StatusNCRHubReceived, record.Status)
}
