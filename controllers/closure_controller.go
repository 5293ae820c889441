package controllers

import (
	"errors"

	"returns-app/middleware"
	"returns-app/repositories"
	"returns-app/services"
	"returns-app/workflow"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClosureController ends the life of a record: batch completion of
// documented items and on-site field settlement.
type ClosureController struct {
	DB       *gorm.DB
	repo     *repositories.ReturnRepository
	telegram *services.TelegramService
}

func NewClosureController(DB *gorm.DB) *ClosureController {
	return &ClosureController{
		DB:       DB,
		repo:     repositories.NewReturnRepository(DB),
		telegram: services.NewTelegramService(DB),
	}
}

// Close completes a batch of documented records.
func (c *ClosureController) Close(ctx *fiber.Ctx) error {
	var input recordNosInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)
	result := c.repo.BatchUpdateStatus(input.RecordNos, workflow.StatusCompleted, nil, userID)

	if len(result.Updated) > 0 {
		if record, err := c.repo.GetByRecordNo(result.Updated[0]); err == nil {
			go c.telegram.NotifyStatusUpdate("✅ ปิดงานเรียบร้อย", *record, len(result.Updated), &services.TransportInfo{Closed: true})
		}
	}

	return ctx.JSON(fiber.Map{
		"success": len(result.Failed) == 0,
		"message": "Batch processed",
		"data":    result,
	})
}

type fieldSettlementInput struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Evidence string  `json:"evidence"`
	Name     string  `json:"name" validate:"required"`
	Position string  `json:"position" validate:"required"`
}

// FieldSettle closes a record on site with compensation instead of a
// physical return. The record jumps to DirectReturn and then Completed; the
// table allows this from intake up to consolidation, but not once the goods
// are at the hub.
func (c *ClosureController) FieldSettle(ctx *fiber.Ctx) error {
	var input fieldSettlementInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := validator.New().Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	recordNo := ctx.Params("recordNo")
	userID := middleware.UserID(ctx)

	extra := map[string]interface{}{
		"is_field_settled":          true,
		"field_settlement_amount":   input.Amount,
		"field_settlement_evidence": input.Evidence,
		"field_settlement_name":     input.Name,
		"field_settlement_position": input.Position,
	}

	if err := c.repo.UpdateStatus(recordNo, workflow.StatusDirectReturn, extra, userID); err != nil {
		if errors.Is(err, workflow.ErrTransitionDenied) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := c.repo.UpdateStatus(recordNo, workflow.StatusCompleted, nil, userID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if record, err := c.repo.GetByRecordNo(recordNo); err == nil {
		go c.telegram.NotifyStatusUpdate("✅ ปิดงานหน้างาน (Field Settlement)", *record, 1, &services.TransportInfo{Closed: true})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Field settlement recorded"})
}
