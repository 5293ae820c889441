package workflow

import "returns-app/models"

// Quality-grading outcomes. Good means the product itself is sellable even
// if the packaging took damage; Bad means the product is not.
const (
	ConditionNew         = "New"
	ConditionBoxDamage   = "BoxDamage"
	ConditionWetBox      = "WetBox"
	ConditionLabelDefect = "LabelDefect"
	ConditionExpired     = "Expired"
	ConditionDamaged     = "Damaged"
	ConditionDefective   = "Defective"
	ConditionOther       = "Other"
	ConditionUnknown     = "Unknown"
)

var GoodConditions = []string{ConditionNew, ConditionBoxDamage, ConditionWetBox, ConditionLabelDefect, ConditionOther}
var BadConditions = []string{ConditionExpired, ConditionDamaged, ConditionDefective, ConditionOther}

// Disposition outcomes, never user-extensible.
const (
	DispositionRTV         = "RTV"
	DispositionRestock     = "Restock"
	DispositionRecycle     = "Recycle"
	DispositionInternalUse = "InternalUse"
	DispositionClaim       = "Claim"
	DispositionPending     = "Pending"
)

var Dispositions = []string{DispositionRTV, DispositionRestock, DispositionRecycle, DispositionInternalUse, DispositionClaim}

// Fixed RTV routes. Free text is also accepted.
var ReturnRoutes = []string{"สาย 3", "Sino Pacific Trading", "NEO CORPORATE"}

var ConditionLabels = map[string]string{
	ConditionNew:         "สภาพดี (Good)",
	ConditionBoxDamage:   "กล่องบุบ (Box Dmg)",
	ConditionWetBox:      "ลังเปียก (Wet Box)",
	ConditionLabelDefect: "ฉลากลอก (Label)",
	ConditionExpired:     "หมดอายุ (Expired)",
	ConditionDamaged:     "ชำรุด/ซาก (Damaged)",
	ConditionDefective:   "เสีย (Defective)",
}

var DispositionLabels = map[string]string{
	DispositionRTV:         "ส่งคืน (Return)",
	DispositionRestock:     "ขาย (Sell)",
	DispositionRecycle:     "ทิ้ง (Scrap)",
	DispositionInternalUse: "ใช้ภายใน (Internal)",
	DispositionClaim:       "เคลมประกัน (Claim)",
}

// ISOForm identifies the controlled form generated for a disposition.
type ISOForm struct {
	Code    string
	Rev     string
	TitleTH string
	TitleEN string
}

func ISODetails(disposition string) ISOForm {
	switch disposition {
	case DispositionRTV:
		return ISOForm{Code: "FM-LOG-05", Rev: "00", TitleTH: "ใบส่งคืนสินค้า", TitleEN: "GOODS RETURN NOTE"}
	case DispositionRestock:
		return ISOForm{Code: "FM-SAL-02", Rev: "00", TitleTH: "แบบขออนุมัติจำหน่ายสินค้าสภาพดี", TitleEN: "SALES DISPOSAL APPROVAL FORM"}
	case DispositionClaim:
		return ISOForm{Code: "FM-CLM-01", Rev: "00", TitleTH: "ใบนำส่งสินค้าเคลมประกัน", TitleEN: "INSURANCE CLAIM DELIVERY NOTE"}
	case DispositionInternalUse:
		return ISOForm{Code: "FM-ADM-09", Rev: "00", TitleTH: "ใบเบิกสินค้าใช้ภายใน", TitleEN: "INTERNAL REQUISITION FORM"}
	case DispositionRecycle:
		return ISOForm{Code: "FM-AST-04", Rev: "00", TitleTH: "แบบขออนุมัติตัดจำหน่าย/ทำลายทรัพย์สิน", TitleEN: "ASSET WRITE-OFF / SCRAP AUTHORIZATION FORM"}
	default:
		return ISOForm{Code: "FM-GEN-00", Rev: "00", TitleTH: "เอกสารจัดการสินค้าคืน", TitleEN: "RETURN MANAGEMENT DOCUMENT"}
	}
}

// ResponsibleMapping maps a problem source to the party charged for the loss.
var ResponsibleMapping = map[string]string{
	"สินค้าเปียกบนรถ":                  "เคลมคนรถ",
	"สินค้าเปียกจากคลัง":               "เคลม สาขา",
	"สินค้าเสียหายจากการโหลดปลายทาง":   "เคลมแรงงานปลายทาง",
	"สินค้าเสียหายจากจัดเรียงไม่ดี":    "เคลมแรงงานต้นทาง",
	"สินค้าสูญหายบนรถ":                 "เคลมคนรถ",
	"สินค้าสูญหายที่คลัง":              "เคลม สาขา",
	"สินค้าสลับรุ่นจากต้นทาง":          "เคลม เช็คเกอร์ ต้นทาง",
	"สินค้าสลับรุ่นจากปลายทาง":         "เคลม เช็คเกอร์ ปลายทาง",
	"สินค้าเสียหายจากการขนส่ง":         "เคลมคนรถ",
	"สินค้าเสียหายจากสัตว์กัด":         "เคลม สาขา",
	"สินค้าเสียหายจากมูลนก":            "เคลม สาขา",
	"สินค้าเสียหายจากแมลง":             "เคลม สาขา",
}

// DispositionDetails carries the extra fields required by some dispositions.
type DispositionDetails struct {
	Route             string `json:"route"`
	SellerName        string `json:"seller_name"`
	ContactPhone      string `json:"contact_phone"`
	InternalUseDetail string `json:"internal_use_detail"`
	ClaimCompany      string `json:"claim_company"`
	ClaimCoordinator  string `json:"claim_coordinator"`
	ClaimPhone        string `json:"claim_phone"`
}

// ValidateDisposition checks that a disposition is known and that its
// required fields are filled.
func ValidateDisposition(disposition string, d DispositionDetails) error {
	switch disposition {
	case DispositionRTV:
		if d.Route == "" {
			return newValidationError("disposition RTV requires a return route")
		}
	case DispositionRestock:
		problems := []string{}
		if d.SellerName == "" {
			problems = append(problems, "disposition Restock requires a buyer name")
		}
		if d.ContactPhone == "" {
			problems = append(problems, "disposition Restock requires a contact phone")
		}
		if len(problems) > 0 {
			return newValidationError(problems...)
		}
	case DispositionRecycle:
		// no extra fields
	case DispositionInternalUse:
		if d.InternalUseDetail == "" {
			return newValidationError("disposition InternalUse requires a department or user")
		}
	case DispositionClaim:
		problems := []string{}
		if d.ClaimCompany == "" {
			problems = append(problems, "disposition Claim requires an insurance company")
		}
		if d.ClaimCoordinator == "" {
			problems = append(problems, "disposition Claim requires a coordinator")
		}
		if d.ClaimPhone == "" {
			problems = append(problems, "disposition Claim requires a phone number")
		}
		if len(problems) > 0 {
			return newValidationError(problems...)
		}
	default:
		return newValidationError("unknown disposition: " + disposition)
	}
	return nil
}

// QCComplete reports whether a record is fully graded. Unknown is
// explicitly treated as not graded.
func QCComplete(condition, disposition string) bool {
	if condition == "" || condition == ConditionUnknown {
		return false
	}
	if disposition == "" || disposition == DispositionPending {
		return false
	}
	return true
}

// ValidateQCSubmit is the guard in front of marking a record QC-complete.
func ValidateQCSubmit(item models.ReturnRecord, condition, conditionNote, disposition string, d DispositionDetails) error {
	problems := []string{}
	if condition == "" || condition == ConditionUnknown {
		problems = append(problems, "condition is required")
	}
	if condition == ConditionOther && conditionNote == "" {
		problems = append(problems, "condition Other requires a description")
	}
	if len(problems) > 0 {
		return newValidationError(problems...)
	}
	return ValidateDisposition(disposition, d)
}
