package controllers

import (
	"errors"
	"fmt"

	"returns-app/middleware"
	"returns-app/repositories"
	"returns-app/services"
	"returns-app/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// NCRController manages the quality-complaint reports wrapping NCR-pipeline
// records. Reports are opened by the intake endpoint; here they are
// reviewed, closed with corrective actions, canceled or mailed out.
type NCRController struct {
	DB   *gorm.DB
	repo *repositories.NCRRepository
	mail *services.MailService
}

func NewNCRController(DB *gorm.DB) *NCRController {
	return &NCRController{
		DB:   DB,
		repo: repositories.NewNCRRepository(DB),
		mail: services.NewMailService(),
	}
}

func (c *NCRController) GetReports(ctx *fiber.Ctx) error {
	reports, err := c.repo.List(ctx.Query("status"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": reports})
}

func (c *NCRController) GetReport(ctx *fiber.Ctx) error {
	ncrNo := ctx.Params("ncrNo")

	report, err := c.repo.GetByNo(ncrNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	items, err := c.repo.Items(ncrNo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"report": report,
		"items":  items,
	}})
}

// UpdateReport patches the review fields (approver, cause analysis,
// prevention, QA verdict). Status moves only through Close and Cancel.
func (c *NCRController) UpdateReport(ctx *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := ctx.BodyParser(&fields); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	delete(fields, "status")
	delete(fields, "ncr_no")
	if len(fields) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No fields to update"})
	}

	fields["updated_by"] = middleware.UserID(ctx)

	if err := c.repo.Update(ctx.Params("ncrNo"), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "NCR updated"})
}

func (c *NCRController) CloseReport(ctx *fiber.Ctx) error {
	fields := map[string]interface{}{
		"status":     "Closed",
		"updated_by": middleware.UserID(ctx),
	}
	if err := c.repo.Update(ctx.Params("ncrNo"), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "NCR closed"})
}

// CancelReport voids the report. Child records keep their status but drop
// out of every default listing until the report is reinstated in the
// database.
func (c *NCRController) CancelReport(ctx *fiber.Ctx) error {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if input.Reason == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "reason is required"})
	}

	userID := middleware.UserID(ctx)
	if err := c.repo.Cancel(ctx.Params("ncrNo"), input.Reason, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "NCR canceled"})
}

// ExportExcel renders one report with its items as an xlsx download.
func (c *NCRController) ExportExcel(ctx *fiber.Ctx) error {
	ncrNo := ctx.Params("ncrNo")

	report, err := c.repo.GetByNo(ncrNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	items, err := c.repo.Items(ncrNo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "รายงานสินค้าไม่เป็นไปตามข้อกำหนด (NCR)")
	f.SetCellValue(sheet, "A2", "เลขที่: "+report.NcrNo)
	f.SetCellValue(sheet, "C2", "วันที่: "+report.Date)
	f.SetCellValue(sheet, "E2", "สถานะ: "+report.Status)
	f.SetCellValue(sheet, "A3", "ถึง: "+report.ToDept)
	f.SetCellValue(sheet, "C3", "ผู้พบปัญหา: "+report.Founder)
	if report.PoNo != "" {
		f.SetCellValue(sheet, "E3", "PO: "+report.PoNo)
	}
	f.SetCellValue(sheet, "A4", "รายละเอียดปัญหา: "+report.ProblemDetail)

	headers := []string{"ลำดับ", "เลขที่รายการ", "รหัสสินค้า", "รายการ", "จำนวน", "หน่วย", "ปัญหา", "สถานะ"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}

	row := 7
	for i, item := range items {
		problem := workflow.ProblemLabels[item.ProblemType]
		if item.ProblemType == workflow.ProblemOther && item.ProblemOtherText != "" {
			problem = fmt.Sprintf("อื่นๆ (%s)", item.ProblemOtherText)
		}
		values := []interface{}{i + 1, item.RecordNo, item.ProductCode, item.ProductName, item.Quantity, item.Unit, problem, item.Status}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	if report.CauseDetail != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "สาเหตุ: "+report.CauseDetail)
		row++
	}
	if report.PreventionDetail != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "การป้องกัน: "+report.PreventionDetail)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+report.NcrNo+`.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// SendMail emails the report to the quality distribution list.
func (c *NCRController) SendMail(ctx *fiber.Ctx) error {
	ncrNo := ctx.Params("ncrNo")

	report, err := c.repo.GetByNo(ncrNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "NCR not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	items, err := c.repo.Items(ncrNo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if err := c.mail.SendNCRReport(*report, items); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "NCR mail sent"})
}
