package controllers

import (
	"errors"
	"time"

	"returns-app/controllers/helpers"
	"returns-app/middleware"
	"returns-app/repositories"
	"returns-app/workflow"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QCController handles grading at the hub: condition and disposition of each
// item, and splitting an item whose units need different handling.
type QCController struct {
	DB   *gorm.DB
	repo *repositories.ReturnRepository
}

func NewQCController(DB *gorm.DB) *QCController {
	return &QCController{
		DB:   DB,
		repo: repositories.NewReturnRepository(DB),
	}
}

type qcInput struct {
	Condition     string `json:"condition" validate:"required"`
	ConditionNote string `json:"condition_note"`
	Disposition   string `json:"disposition" validate:"required"`

	workflow.DispositionDetails
}

func qcExtraFields(input qcInput) map[string]interface{} {
	return map[string]interface{}{
		"condition":           input.Condition,
		"condition_note":      input.ConditionNote,
		"disposition":         input.Disposition,
		"disposition_route":   input.Route,
		"seller_name":         input.SellerName,
		"contact_phone":       input.ContactPhone,
		"internal_use_detail": input.InternalUseDetail,
		"claim_company":       input.ClaimCompany,
		"claim_coordinator":   input.ClaimCoordinator,
		"claim_phone":         input.ClaimPhone,
	}
}

// SubmitQC grades one record and marks it QC-complete.
func (c *QCController) SubmitQC(ctx *fiber.Ctx) error {
	var input qcInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := validator.New().Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	record, err := c.repo.GetByRecordNo(ctx.Params("recordNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := workflow.ValidateQCSubmit(*record, input.Condition, input.ConditionNote, input.Disposition, input.DispositionDetails); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)

	err = c.repo.UpdateStatus(record.RecordNo, workflow.StatusNCRQCCompleted, qcExtraFields(input), userID)
	if err != nil {
		if errors.Is(err, workflow.ErrTransitionDenied) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "QC submitted"})
}

type batchQCInput struct {
	RecordNos []string `json:"record_nos" validate:"required,min=1"`
	qcInput
}

// BatchSubmitQC applies one grading to a whole group. Validation of the
// disposition fields happens once; per-record transition failures are
// reported without rolling back the rest.
func (c *QCController) BatchSubmitQC(ctx *fiber.Ctx) error {
	var input batchQCInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := validator.New().Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := workflow.ValidateDisposition(input.Disposition, input.DispositionDetails); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)
	result := c.repo.BatchUpdateStatus(input.RecordNos, workflow.StatusNCRQCCompleted, qcExtraFields(input.qcInput), userID)

	return ctx.JSON(fiber.Map{
		"success": len(result.Failed) == 0,
		"message": "Batch processed",
		"data":    result,
	})
}

// Split carves part of a record's quantity onto a new record with its own
// grade. The original keeps the remainder and stays in place.
func (c *QCController) Split(ctx *fiber.Ctx) error {
	var input workflow.SplitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	record, err := c.repo.GetByRecordNo(ctx.Params("recordNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	original, split, err := workflow.SplitItem(*record, input, time.Now())
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidSplitQuantity) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "split quantity must be between 1 and the available quantity minus one"})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)
	original.UpdatedBy = userID
	split.CreatedBy = userID

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&original).Select(
			"quantity", "unit", "price_per_unit", "updated_by",
		).Updates(&original).Error; err != nil {
			return err
		}
		return tx.Create(&split).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	helpers.InsertTransactionHistory(c.DB, original.RecordNo, original.Status, "split",
		"Split "+split.RecordNo+" off this record", userID)
	helpers.InsertTransactionHistory(c.DB, split.RecordNo, split.Status, "split",
		"Created by splitting "+original.RecordNo, userID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Record split",
		"data": fiber.Map{
			"original": original,
			"split":    split,
		},
	})
}
