package models

import (
	"returns-app/controllers/idgen"

	"gorm.io/gorm"
)

// ReturnDocument is a generated paperwork document (goods return note, sales
// disposal approval, claim delivery note, ...) covering a batch of records
// with the same disposition. Totals are frozen at generation time.
type ReturnDocument struct {
	gorm.Model
	ID          int64  `json:"id" gorm:"primary_key"`
	DocumentNo  string `json:"document_no" gorm:"unique"`
	Disposition string `json:"disposition"`

	// ISO form identity, derived from the disposition
	FormCode string `json:"form_code"`
	FormRev  string `json:"form_rev"`
	TitleTH  string `json:"title_th"`
	TitleEN  string `json:"title_en"`

	Branch string `json:"branch"`
	Route  string `json:"route"`

	IncludeVat      bool    `json:"include_vat"`
	VatRate         float64 `json:"vat_rate"`
	IncludeDiscount bool    `json:"include_discount"`
	DiscountRate    float64 `json:"discount_rate"`

	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	AfterDiscount float64 `json:"after_discount"`
	Vat           float64 `json:"vat"`
	Net           float64 `json:"net"`
	NetText       string  `json:"net_text"` // Thai baht text of Net

	IssuedBy  int
	CreatedBy int
	UpdatedBy int
	DeletedBy int

	Lines []ReturnDocumentLine `gorm:"foreignKey:DocumentId;references:ID;constraint:OnDelete:CASCADE" json:"lines"`
}

func (d *ReturnDocument) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = idgen.GenerateID()
	return
}

type ReturnDocumentLine struct {
	gorm.Model
	DocumentId      int64   `json:"document_id" gorm:"default:null"`
	RecordNo        string  `json:"record_no"`
	ProductCode     string  `json:"product_code"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	PriceBill       float64 `json:"price_bill"`
	DiscountPercent float64 `json:"discount_percent"`
	LineTotal       float64 `json:"line_total"`
}
