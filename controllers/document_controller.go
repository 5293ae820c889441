package controllers

import (
	"errors"
	"fmt"

	"returns-app/middleware"
	"returns-app/models"
	"returns-app/repositories"
	"returns-app/services"
	"returns-app/workflow"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// DocumentController issues the ISO paperwork for graded items and exports
// it to Excel.
type DocumentController struct {
	DB       *gorm.DB
	repo     *repositories.DocumentRepository
	returns  *repositories.ReturnRepository
	telegram *services.TelegramService
}

func NewDocumentController(DB *gorm.DB) *DocumentController {
	return &DocumentController{
		DB:       DB,
		repo:     repositories.NewDocumentRepository(DB),
		returns:  repositories.NewReturnRepository(DB),
		telegram: services.NewTelegramService(DB),
	}
}

type generateDocumentInput struct {
	RecordNos   []string `json:"record_nos" validate:"required,min=1"`
	Disposition string   `json:"disposition" validate:"required"`
	Branch      string   `json:"branch"`
	Route       string   `json:"route"`

	IncludeVat      bool    `json:"include_vat"`
	VatRate         float64 `json:"vat_rate"`
	IncludeDiscount bool    `json:"include_discount"`
	DiscountRate    float64 `json:"discount_rate"`
}

// Generate freezes the totals over the listed records and issues one
// document for them. NCR records must be graded with the requested
// disposition; collection records come straight from hub receipt and take
// the document's disposition. Documented records then advance in their
// pipeline.
func (c *DocumentController) Generate(ctx *fiber.Ctx) error {
	var input generateDocumentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := validator.New().Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	records := make([]models.ReturnRecord, 0, len(input.RecordNos))
	for _, recordNo := range input.RecordNos {
		record, err := c.returns.GetByRecordNo(recordNo)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Record not found: " + recordNo})
		}
		if isNCRPipeline(*record) {
			if !workflow.QCComplete(record.Condition, record.Disposition) {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Record not graded yet: " + recordNo})
			}
			if record.Disposition != input.Disposition {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": fmt.Sprintf("Record %s has disposition %s, not %s", recordNo, record.Disposition, input.Disposition)})
			}
		} else {
			// collection items skip QC; an ungraded one takes the
			// document's disposition
			if record.Disposition != "" && record.Disposition != workflow.DispositionPending && record.Disposition != input.Disposition {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": fmt.Sprintf("Record %s has disposition %s, not %s", recordNo, record.Disposition, input.Disposition)})
			}
		}
		records = append(records, *record)
	}

	totals := workflow.Aggregate(records, input.IncludeVat, input.VatRate, input.IncludeDiscount, input.DiscountRate)
	form := workflow.ISODetails(input.Disposition)

	documentNo, err := c.repo.GenerateDocumentNo()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate document number"})
	}

	userID := middleware.UserID(ctx)

	lines := make([]models.ReturnDocumentLine, 0, len(records))
	for _, record := range records {
		var discountPercent float64
		if record.DiscountPercent != nil {
			discountPercent = *record.DiscountPercent
		} else if input.IncludeDiscount {
			discountPercent = input.DiscountRate
		}
		lines = append(lines, models.ReturnDocumentLine{
			RecordNo:        record.RecordNo,
			ProductCode:     record.ProductCode,
			ProductName:     record.ProductName,
			Quantity:        record.Quantity,
			Unit:            record.Unit,
			PriceBill:       record.PriceBill,
			DiscountPercent: discountPercent,
			LineTotal:       record.PriceBill,
		})
	}

	document := models.ReturnDocument{
		DocumentNo:      documentNo,
		Disposition:     input.Disposition,
		FormCode:        form.Code,
		FormRev:         form.Rev,
		TitleTH:         form.TitleTH,
		TitleEN:         form.TitleEN,
		Branch:          input.Branch,
		Route:           input.Route,
		IncludeVat:      input.IncludeVat,
		VatRate:         input.VatRate,
		IncludeDiscount: input.IncludeDiscount,
		DiscountRate:    input.DiscountRate,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		AfterDiscount:   totals.AfterDiscount,
		Vat:             totals.Vat,
		Net:             totals.Net,
		NetText:         workflow.ThaiBahtText(totals.Net),
		IssuedBy:        userID,
		CreatedBy:       userID,
		Lines:           lines,
	}

	if err := c.repo.Create(&document, input.RecordNos); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	// advance each pipeline; failures here leave the document issued
	buckets := map[string][]string{}
	for _, record := range records {
		next := workflow.StatusCOLDocumented
		if isNCRPipeline(record) {
			next = workflow.StatusNCRDocumented
		}
		buckets[next] = append(buckets[next], record.RecordNo)
	}
	merged := repositories.BatchResult{}
	for next, recordNos := range buckets {
		var extra map[string]interface{}
		if next == workflow.StatusCOLDocumented {
			// stamp the document's disposition onto the ungraded items
			extra = map[string]interface{}{"disposition": input.Disposition}
		}
		result := c.returns.BatchUpdateStatus(recordNos, next, extra, userID)
		merged.Updated = append(merged.Updated, result.Updated...)
		merged.Failed = append(merged.Failed, result.Failed...)
	}

	go c.telegram.NotifyStatusUpdate("📄 ออกเอกสาร "+form.Code+" เลขที่ "+documentNo, records[0], len(records), nil)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Document generated",
		"data": fiber.Map{
			"document": document,
			"status":   merged,
		},
	})
}

func (c *DocumentController) GetDocuments(ctx *fiber.Ctx) error {
	documents, err := c.repo.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": documents})
}

func (c *DocumentController) GetDocument(ctx *fiber.Ctx) error {
	document, err := c.repo.GetByNo(ctx.Params("documentNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Document not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": document})
}

// ExportExcel renders one document as an xlsx download.
func (c *DocumentController) ExportExcel(ctx *fiber.Ctx) error {
	document, err := c.repo.GetByNo(ctx.Params("documentNo"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Document not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", document.TitleTH)
	f.SetCellValue(sheet, "A2", document.TitleEN)
	f.SetCellValue(sheet, "E1", document.FormCode+" "+document.FormRev)
	f.SetCellValue(sheet, "A3", "เลขที่เอกสาร: "+document.DocumentNo)
	f.SetCellValue(sheet, "C3", "สาขา: "+document.Branch)
	if document.Route != "" {
		f.SetCellValue(sheet, "E3", "เส้นทาง: "+document.Route)
	}

	headers := []string{"ลำดับ", "รหัสสินค้า", "รายการ", "จำนวน", "หน่วย", "ราคา", "ส่วนลด %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}

	row := 6
	for i, line := range document.Lines {
		values := []interface{}{i + 1, line.ProductCode, line.ProductName, line.Quantity, line.Unit, line.PriceBill, line.DiscountPercent}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "รวมเงิน")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), document.Subtotal)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "ส่วนลด")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), document.Discount)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "หลังหักส่วนลด")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), document.AfterDiscount)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("ภาษีมูลค่าเพิ่ม %.0f%%", document.VatRate))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), document.Vat)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "ยอดสุทธิ")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), document.Net)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "("+document.NetText+")")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+document.DocumentNo+`.xlsx"`)
	return ctx.Send(buf.Bytes())
}
