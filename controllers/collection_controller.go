package controllers

import (
	"returns-app/middleware"
	"returns-app/models"
	"returns-app/repositories"
	"returns-app/services"
	"returns-app/workflow"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollectionController drives the physical movement steps of both pipelines:
// job accept, branch receive, consolidation, dispatch to the hub and hub
// receive.
type CollectionController struct {
	DB       *gorm.DB
	repo     *repositories.ReturnRepository
	telegram *services.TelegramService
}

func NewCollectionController(DB *gorm.DB) *CollectionController {
	return &CollectionController{
		DB:       DB,
		repo:     repositories.NewReturnRepository(DB),
		telegram: services.NewTelegramService(DB),
	}
}

type recordNosInput struct {
	RecordNos []string `json:"record_nos" validate:"required,min=1"`
}

func parseRecordNos(ctx *fiber.Ctx, input interface{}) error {
	if err := ctx.BodyParser(input); err != nil {
		return err
	}
	return validator.New().Struct(input)
}

func (c *CollectionController) batchResponse(ctx *fiber.Ctx, result repositories.BatchResult) error {
	return ctx.JSON(fiber.Map{
		"success": len(result.Failed) == 0,
		"message": "Batch processed",
		"data":    result,
	})
}

// isNCRPipeline reports whether a record travels the quality-complaint
// pipeline rather than the plain collection one.
func isNCRPipeline(record models.ReturnRecord) bool {
	return record.DocumentType == "NCR" || record.NcrNumber != ""
}

// partitionByPipeline loads each record and buckets it under the status its
// pipeline uses for the given step.
func (c *CollectionController) partitionByPipeline(recordNos []string, ncrStatus, colStatus string) (map[string][]string, []repositories.BatchFailure) {
	buckets := map[string][]string{}
	failed := []repositories.BatchFailure{}

	for _, recordNo := range recordNos {
		record, err := c.repo.GetByRecordNo(recordNo)
		if err != nil {
			failed = append(failed, repositories.BatchFailure{RecordNo: recordNo, Error: "record not found"})
			continue
		}
		next := colStatus
		if isNCRPipeline(*record) {
			next = ncrStatus
		}
		buckets[next] = append(buckets[next], recordNo)
	}
	return buckets, failed
}

// AcceptJob moves requested collection items into COL_JobAccepted.
func (c *CollectionController) AcceptJob(ctx *fiber.Ctx) error {
	var input recordNosInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	result := c.repo.BatchUpdateStatus(input.RecordNos, workflow.StatusCOLJobAccepted, nil, middleware.UserID(ctx))
	return c.batchResponse(ctx, result)
}

// BranchReceive confirms the branch has the goods in hand.
func (c *CollectionController) BranchReceive(ctx *fiber.Ctx) error {
	var input recordNosInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	result := c.repo.BatchUpdateStatus(input.RecordNos, workflow.StatusCOLBranchReceived, nil, middleware.UserID(ctx))
	return c.batchResponse(ctx, result)
}

type consolidateInput struct {
	RecordNos         []string `json:"record_nos" validate:"required,min=1"`
	CollectionOrderId string   `json:"collection_order_id" validate:"required"`
}

// Consolidate bundles branch-received items under one collection order.
func (c *CollectionController) Consolidate(ctx *fiber.Ctx) error {
	var input consolidateInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	extra := map[string]interface{}{"collection_order_id": input.CollectionOrderId}
	result := c.repo.BatchUpdateStatus(input.RecordNos, workflow.StatusCOLConsolidated, extra, middleware.UserID(ctx))
	return c.batchResponse(ctx, result)
}

type dispatchInput struct {
	RecordNos   []string `json:"record_nos" validate:"required,min=1"`
	Destination string   `json:"destination" validate:"required"`
	PlateNumber string   `json:"plate_number" validate:"required"`
	DriverName  string   `json:"driver_name"`
}

// Dispatch sends items to the hub. NCR items move to NCR_InTransit and
// collection items to COL_InTransit; one notification covers the load.
func (c *CollectionController) Dispatch(ctx *fiber.Ctx) error {
	var input dispatchInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)

	buckets, failed := c.partitionByPipeline(input.RecordNos, workflow.StatusNCRInTransit, workflow.StatusCOLInTransit)
	merged := repositories.BatchResult{Failed: failed}
	for next, recordNos := range buckets {
		result := c.repo.BatchUpdateStatus(recordNos, next, nil, userID)
		merged.Updated = append(merged.Updated, result.Updated...)
		merged.Failed = append(merged.Failed, result.Failed...)
	}

	if len(merged.Updated) > 0 {
		if record, err := c.repo.GetByRecordNo(merged.Updated[0]); err == nil {
			go c.telegram.NotifyStatusUpdate("🚛 ส่งสินค้าเข้าคลังกลาง", *record, len(merged.Updated), &services.TransportInfo{
				Destination: input.Destination,
				PlateNumber: input.PlateNumber,
				DriverName:  input.DriverName,
			})
		}
	}

	return c.batchResponse(ctx, merged)
}

// HubReceive books items into the hub from either pipeline.
func (c *CollectionController) HubReceive(ctx *fiber.Ctx) error {
	var input recordNosInput
	if err := parseRecordNos(ctx, &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)

	buckets, failed := c.partitionByPipeline(input.RecordNos, workflow.StatusNCRHubReceived, workflow.StatusCOLHubReceived)
	merged := repositories.BatchResult{Failed: failed}
	for next, recordNos := range buckets {
		result := c.repo.BatchUpdateStatus(recordNos, next, nil, userID)
		merged.Updated = append(merged.Updated, result.Updated...)
		merged.Failed = append(merged.Failed, result.Failed...)
	}

	if len(merged.Updated) > 0 {
		if record, err := c.repo.GetByRecordNo(merged.Updated[0]); err == nil {
			go c.telegram.NotifyStatusUpdate("📥 รับสินค้าเข้าคลังกลาง", *record, len(merged.Updated), &services.TransportInfo{Received: true})
		}
	}

	return c.batchResponse(ctx, merged)
}

// Schedule marks a requested item for pickup before either
// pipeline.
func (c *CollectionController) Schedule(ctx *fiber.Ctx) error {
	var input struct {
		PickupDate string `json:"pickup_date"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	extra := map[string]interface{}{}
	if input.PickupDate != "" {
		extra["date_requested"] = input.PickupDate
	}

	userID := middleware.UserID(ctx)
	if err := c.repo.UpdateStatus(ctx.Params("recordNo"), workflow.StatusPickupScheduled, extra, userID); err != nil {
		if err == workflow.ErrTransitionDenied {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Pickup scheduled"})
}
