package controllers

import (
	"testing"

	"returns-app/models"
	"returns-app/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSettlementFromIntake(t *testing.T) {
	db := openControllerDB(t)
	controller := NewClosureController(db)
	app := newControllerApp(func(app *fiber.App) {
		app.Post("/closures/:recordNo/field-settlement", controller.FieldSettle)
	})

	require.NoError(t, db.Create(&models.ReturnRecord{
		RecordNo:     "RT2501010003",
		DocumentType: "LOGISTICS",
		Status:       workflow.StatusRequested,
		Branch:       "สาขาอุดรธานี",
		Date:         "2025-01-01",
	}).Error)

	code := postJSON(t, app, "/closures/RT2501010003/field-settlement",
		`{"amount":1500,"evidence":"ใบเสร็จ 045","name":"สมชาย ใจดี","position":"หัวหน้าสาขา"}`)
	assert.Equal(t, fiber.StatusOK, code)

	var record models.ReturnRecord
	require.NoError(t, db.Where("record_no = ?", "RT2501010003").First(&record).Error)
	assert.Equal(t, workflow.StatusCompleted, record.Status)
	assert.True(t, record.IsFieldSettled)
	assert.Equal(t, 1500.0, record.FieldSettlementAmount)
	assert.Equal(t, "สมชาย ใจดี", record.FieldSettlementName)
	assert.NotEmpty(t, record.DateCompleted)
}

func TestFieldSettlementRejectedAtHub(t *testing.T) {
	db := openControllerDB(t)
	controller := NewClosureController(db)
	app := newControllerApp(func(app *fiber.App) {
		app.Post("/closures/:recordNo/field-settlement", controller.FieldSettle)
	})

	require.NoError(t, db.Create(&models.ReturnRecord{
		RecordNo:     "RT2501010004",
		DocumentType: "NCR",
		Status:       workflow.StatusNCRHubReceived,
		Date:         "2025-01-01",
	}).Error)

	code := postJSON(t, app, "/closures/RT2501010004/field-settlement",
		`{"amount":900,"name":"สมหญิง มั่นคง","position":"พนักงานคลัง"}`)
	assert.Equal(t, fiber.StatusConflict, code)

	var record models.ReturnRecord
	require.NoError(t, db.Where("record_no = ?", "RT2501010004").First(&record).Error)
	assert.Equal(t, workflow.StatusNCRHubReceived, record.Status)
	assert.False(t, record.IsFieldSettled)
}
