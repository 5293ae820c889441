package models

import (
	"returns-app/controllers/idgen"

	"gorm.io/gorm"
)

// ReturnRecord is one line item of returned merchandise moving through the
// workflow. RecordNo is the business key (RT...); RefNo, DocumentNo,
// CollectionOrderId and NcrNumber are alternate reference numbers used as
// grouping/search keys depending on which sub-flow created the record.
type ReturnRecord struct {
	gorm.Model
	ID       int64  `json:"id" gorm:"primary_key"`
	RecordNo string `json:"record_no" gorm:"unique"`
	RefNo    string `json:"ref_no"`

	DocumentNo        string `json:"document_no"`
	CollectionOrderId string `json:"collection_order_id"`
	NcrNumber         string `json:"ncr_number"`
	NeoRefNo          string `json:"neo_ref_no"`

	DocumentType string `json:"document_type" gorm:"default:'NCR'"` // NCR | LOGISTICS
	Status       string `json:"status" gorm:"default:'Requested'"`
	Condition    string `json:"condition"`
	// Free text when condition is Other
	ConditionNote string `json:"condition_note"`
	Disposition   string `json:"disposition" gorm:"default:'Pending'"`

	Branch              string `json:"branch"`
	CustomerName        string `json:"customer_name"`
	DestinationCustomer string `json:"destination_customer"`
	Founder             string `json:"founder"`
	Reason              string `json:"reason"`

	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`

	Quantity        int      `json:"quantity"`
	Unit            string   `json:"unit"`
	PricePerUnit    float64  `json:"price_per_unit"`
	PriceBill       float64  `json:"price_bill"`
	PriceSell       float64  `json:"price_sell"`
	DiscountPercent *float64 `json:"discount_percent"`
	ExpiryDate      string   `json:"expiry_date" gorm:"type:date"`

	Date            string `json:"date" gorm:"type:date"`
	DateRequested   string `json:"date_requested" gorm:"type:date"`
	DateReceived    string `json:"date_received" gorm:"type:date"`
	DateInTransit   string `json:"date_in_transit" gorm:"type:date"`
	DateHubReceived string `json:"date_hub_received" gorm:"type:date"`
	DateCompleted   string `json:"date_completed" gorm:"type:date"`

	// Problem description. ProblemType is single-select; the old boolean
	// flag columns from the spreadsheet era are gone.
	ProblemType       string `json:"problem_type"`
	ProblemOtherText  string `json:"problem_other_text"`
	ProblemDetail     string `json:"problem_detail"`
	ProblemAnalysis   string `json:"problem_analysis"`
	AnalysisSubDetail string `json:"analysis_sub_detail"`
	ProblemSource     string `json:"problem_source"`

	// Initial action taken at intake, single-select with its own quantity.
	ActionType   string `json:"action_type"`
	ActionQty    int    `json:"action_qty"`
	ActionMethod string `json:"action_method"`
	ActionReason string `json:"action_reason"`

	HasCost         bool    `json:"has_cost"`
	CostAmount      float64 `json:"cost_amount"`
	CostResponsible string  `json:"cost_responsible"`

	// Field settlement closes the case with compensation instead of a
	// physical return.
	IsFieldSettled          bool    `json:"is_field_settled"`
	FieldSettlementAmount   float64 `json:"field_settlement_amount"`
	FieldSettlementEvidence string  `json:"field_settlement_evidence"`
	FieldSettlementName     string  `json:"field_settlement_name"`
	FieldSettlementPosition string  `json:"field_settlement_position"`

	DispositionRoute  string `json:"disposition_route"`
	SellerName        string `json:"seller_name"`
	ContactPhone      string `json:"contact_phone"`
	InternalUseDetail string `json:"internal_use_detail"`
	ClaimCompany      string `json:"claim_company"`
	ClaimCoordinator  string `json:"claim_coordinator"`
	ClaimPhone        string `json:"claim_phone"`

	CreatedBy int
	UpdatedBy int
	DeletedBy int

	Images []ReturnImage `gorm:"foreignKey:ReturnRecordId;references:ID;constraint:OnDelete:CASCADE" json:"images"`
}

func (r *ReturnRecord) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = idgen.GenerateID()
	return
}

// ReturnImage is an evidence photo attached to a record, stored as a data URL.
type ReturnImage struct {
	gorm.Model
	ReturnRecordId int64  `json:"return_record_id" gorm:"default:null"`
	SortOrder      int    `json:"sort_order"`
	Data           string `json:"data" gorm:"type:text"`
	CreatedBy      int
}
