package controllers

import (
	"errors"
	"strings"

	"returns-app/controllers/helpers"
	"returns-app/middleware"
	"returns-app/models"
	"returns-app/repositories"
	"returns-app/services"
	"returns-app/workflow"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReturnController struct {
	DB       *gorm.DB
	repo     *repositories.ReturnRepository
	ncrRepo  *repositories.NCRRepository
	telegram *services.TelegramService
}

func NewReturnController(DB *gorm.DB) *ReturnController {
	return &ReturnController{
		DB:       DB,
		repo:     repositories.NewReturnRepository(DB),
		ncrRepo:  repositories.NewNCRRepository(DB),
		telegram: services.NewTelegramService(DB),
	}
}

type returnItemInput struct {
	ProductCode     string   `json:"product_code"`
	ProductName     string   `json:"product_name" validate:"required"`
	Category        string   `json:"category"`
	Quantity        int      `json:"quantity" validate:"required,gt=0"`
	Unit            string   `json:"unit" validate:"required"`
	PricePerUnit    float64  `json:"price_per_unit"`
	PriceBill       float64  `json:"price_bill"`
	PriceSell       float64  `json:"price_sell"`
	DiscountPercent *float64 `json:"discount_percent"`
	ExpiryDate      string   `json:"expiry_date"`
	Images          []string `json:"images"`
}

type createReturnInput struct {
	DocumentType string `json:"document_type" validate:"required,oneof=NCR LOGISTICS"`
	Date         string `json:"date" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`

	DestinationCustomer string `json:"destination_customer"`
	Founder             string `json:"founder"`
	Reason              string `json:"reason"`
	RefNo               string `json:"ref_no"`
	NeoRefNo            string `json:"neo_ref_no"`
	CollectionOrderId   string `json:"collection_order_id"`

	ProblemType       string `json:"problem_type"`
	ProblemOtherText  string `json:"problem_other_text"`
	ProblemDetail     string `json:"problem_detail"`
	ProblemAnalysis   string `json:"problem_analysis"`
	AnalysisSubDetail string `json:"analysis_sub_detail"`
	ProblemSource     string `json:"problem_source"`

	ActionType   string `json:"action_type"`
	ActionQty    int    `json:"action_qty"`
	ActionMethod string `json:"action_method"`
	ActionReason string `json:"action_reason"`

	HasCost         bool    `json:"has_cost"`
	CostAmount      float64 `json:"cost_amount"`
	CostResponsible string  `json:"cost_responsible"`

	Items []returnItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateReturn registers a batch of items from the intake form. All items in
// one request share the header fields and, for NCR, the generated NCR number.
func (c *ReturnController) CreateReturn(ctx *fiber.Ctx) error {
	var input createReturnInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if input.DocumentType == "NCR" {
		if err := workflow.ValidateProblem(input.ProblemType, input.ProblemOtherText); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		if err := workflow.ValidateAction(input.ActionType, input.ActionQty, input.ActionMethod, input.ActionReason); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	userID := middleware.UserID(ctx)

	var ncrNo string
	if input.DocumentType == "NCR" {
		var err error
		ncrNo, err = c.ncrRepo.GenerateNcrNo()
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate NCR number"})
		}
	}

	records := make([]*models.ReturnRecord, 0, len(input.Items))
	for _, item := range input.Items {
		recordNo, err := c.repo.GenerateRecordNo()
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate record number"})
		}

		images := make([]models.ReturnImage, 0, len(item.Images))
		for i, data := range item.Images {
			images = append(images, models.ReturnImage{SortOrder: i, Data: data, CreatedBy: userID})
		}

		records = append(records, &models.ReturnRecord{
			RecordNo:            recordNo,
			RefNo:               input.RefNo,
			NcrNumber:           ncrNo,
			NeoRefNo:            input.NeoRefNo,
			CollectionOrderId:   input.CollectionOrderId,
			DocumentType:        input.DocumentType,
			Status:              workflow.StatusRequested,
			Condition:           workflow.ConditionUnknown,
			Disposition:         workflow.DispositionPending,
			Branch:              input.Branch,
			CustomerName:        input.CustomerName,
			DestinationCustomer: input.DestinationCustomer,
			Founder:             input.Founder,
			Reason:              input.Reason,
			ProductCode:         item.ProductCode,
			ProductName:         item.ProductName,
			Category:            item.Category,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			PricePerUnit:        item.PricePerUnit,
			PriceBill:           item.PriceBill,
			PriceSell:           item.PriceSell,
			DiscountPercent:     item.DiscountPercent,
			ExpiryDate:          item.ExpiryDate,
			Date:                input.Date,
			DateRequested:       input.Date,
			ProblemType:         input.ProblemType,
			ProblemOtherText:    input.ProblemOtherText,
			ProblemDetail:       input.ProblemDetail,
			ProblemAnalysis:     input.ProblemAnalysis,
			AnalysisSubDetail:   input.AnalysisSubDetail,
			ProblemSource:       input.ProblemSource,
			ActionType:          input.ActionType,
			ActionQty:           input.ActionQty,
			ActionMethod:        input.ActionMethod,
			ActionReason:        input.ActionReason,
			HasCost:             input.HasCost,
			CostAmount:          input.CostAmount,
			CostResponsible:     input.CostResponsible,
			CreatedBy:           userID,
			Images:              images,
		})
	}

	if err := c.repo.CreateBatch(records); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if ncrNo != "" {
		report := models.NCRReport{
			NcrNo:         ncrNo,
			Date:          input.Date,
			Status:        "Open",
			Founder:       input.Founder,
			ProblemDetail: input.ProblemDetail,
			CreatedBy:     userID,
		}
		if err := c.ncrRepo.Create(&report); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		go c.telegram.NotifyNCR(report, *records[0])
	} else {
		go c.telegram.NotifyReturnRequest(*records[0])
	}

	for _, record := range records {
		helpers.InsertTransactionHistory(c.DB, record.RecordNo, record.Status, "intake", "Return requested", userID)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Return created successfully",
		"data": fiber.Map{
			"ncr_number": ncrNo,
			"records":    records,
		},
	})
}

func listFilterFromQuery(ctx *fiber.Ctx) repositories.ListFilter {
	filter := repositories.ListFilter{
		Branch:          ctx.Query("branch"),
		DocumentType:    ctx.Query("document_type"),
		DateFrom:        ctx.Query("date_from"),
		DateTo:          ctx.Query("date_to"),
		Search:          ctx.Query("search"),
		IncludeCanceled: ctx.QueryBool("include_canceled"),
	}
	if statuses := ctx.Query("status"); statuses != "" {
		filter.Statuses = strings.Split(statuses, ",")
	}
	return filter
}

func (c *ReturnController) GetReturns(ctx *fiber.Ctx) error {
	records, err := c.repo.List(listFilterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": records})
}

func (c *ReturnController) GetReturnsGrouped(ctx *fiber.Ctx) error {
	groups, err := c.repo.ListGrouped(listFilterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	type groupOut struct {
		Key   string                `json:"key"`
		Items []models.ReturnRecord `json:"items"`
	}
	out := make([]groupOut, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupOut{Key: g.Key, Items: g.Items})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": out})
}

func (c *ReturnController) GetReturn(ctx *fiber.Ctx) error {
	record, err := c.repo.GetByRecordNo(ctx.Params("recordNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	allowed := workflow.AllowedNext(record.Status)
	return ctx.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"record":       record,
		"allowed_next": allowed,
	}})
}

// UpdateReturn patches non-status fields. Status changes go through the
// status endpoints only.
func (c *ReturnController) UpdateReturn(ctx *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := ctx.BodyParser(&fields); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if len(fields) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No fields to update"})
	}

	fields["updated_by"] = middleware.UserID(ctx)

	if err := c.repo.Update(ctx.Params("recordNo"), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Record updated"})
}

func (c *ReturnController) DeleteReturn(ctx *fiber.Ctx) error {
	userID := middleware.UserID(ctx)

	err := c.repo.Delete(ctx.Params("recordNo"), userID)
	if err != nil {
		if errors.Is(err, workflow.ErrTransitionDenied) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Only records still in Requested can be deleted"})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Record deleted"})
}

type statusInput struct {
	Status string                 `json:"status" validate:"required"`
	Fields map[string]interface{} `json:"fields"`
}

func (c *ReturnController) UpdateStatus(ctx *fiber.Ctx) error {
	var input statusInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if input.Status == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "status is required"})
	}

	userID := middleware.UserID(ctx)

	err := c.repo.UpdateStatus(ctx.Params("recordNo"), input.Status, input.Fields, userID)
	if err != nil {
		if errors.Is(err, workflow.ErrTransitionDenied) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Status updated"})
}

type batchStatusInput struct {
	RecordNos []string               `json:"record_nos" validate:"required,min=1"`
	Status    string                 `json:"status" validate:"required"`
	Fields    map[string]interface{} `json:"fields"`
}

// BatchUpdateStatus moves many records at once. Items are processed
// independently; a failure on one does not roll back the others, and the
// response lists both sides.
func (c *ReturnController) BatchUpdateStatus(ctx *fiber.Ctx) error {
	var input batchStatusInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID := middleware.UserID(ctx)
	result := c.repo.BatchUpdateStatus(input.RecordNos, input.Status, input.Fields, userID)

	return ctx.JSON(fiber.Map{
		"success": len(result.Failed) == 0,
		"message": "Batch processed",
		"data":    result,
	})
}

func (c *ReturnController) GetHistory(ctx *fiber.Ctx) error {
	var histories []models.TransactionHistory
	if err := c.DB.Where("record_no = ?", ctx.Params("recordNo")).
		Order("created_at asc").Find(&histories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": histories})
}
