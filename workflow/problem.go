package workflow

// Problem types found at intake. The intake form presents these as a
// checkbox grid, but exactly one may apply to a record, so they are modeled
// as a single-select field rather than a row of booleans.
const (
	ProblemDamaged         = "Damaged"
	ProblemDamagedInBox    = "DamagedInBox"
	ProblemLost            = "Lost"
	ProblemMixed           = "Mixed"
	ProblemWrongInv        = "WrongInv"
	ProblemLate            = "Late"
	ProblemDuplicate       = "Duplicate"
	ProblemWrong           = "Wrong"
	ProblemIncomplete      = "Incomplete"
	ProblemOver            = "Over"
	ProblemWrongInfo       = "WrongInfo"
	ProblemShortExpiry     = "ShortExpiry"
	ProblemPOExpired       = "POExpired"
	ProblemNoBarcode       = "NoBarcode"
	ProblemNotOrdered      = "NotOrdered"
	ProblemTransportDamage = "TransportDamage"
	ProblemAccident        = "Accident"
	ProblemOther           = "Other"
)

var ProblemTypes = []string{
	ProblemDamaged, ProblemDamagedInBox, ProblemLost, ProblemMixed,
	ProblemWrongInv, ProblemLate, ProblemDuplicate, ProblemWrong,
	ProblemIncomplete, ProblemOver, ProblemWrongInfo, ProblemShortExpiry,
	ProblemPOExpired, ProblemNoBarcode, ProblemNotOrdered,
	ProblemTransportDamage, ProblemAccident, ProblemOther,
}

// ProblemLabels are the Thai names shown on forms and notifications.
var ProblemLabels = map[string]string{
	ProblemDamaged:         "ชำรุด",
	ProblemDamagedInBox:    "ชำรุดในกล่อง",
	ProblemLost:            "สูญหาย",
	ProblemMixed:           "สินค้าสลับ",
	ProblemWrongInv:        "สินค้าไม่ตรง INV",
	ProblemLate:            "ส่งช้า",
	ProblemDuplicate:       "ส่งซ้ำ",
	ProblemWrong:           "ส่งผิด",
	ProblemIncomplete:      "ส่งของไม่ครบ",
	ProblemOver:            "ส่งของเกิน",
	ProblemWrongInfo:       "ข้อมูลผิด",
	ProblemShortExpiry:     "สินค้าอายุสั้น",
	ProblemPOExpired:       "PO. หมดอายุ",
	ProblemNoBarcode:       "บาร์โค๊ตไม่ขึ้น",
	ProblemNotOrdered:      "ไม่ได้สั่งสินค้า",
	ProblemTransportDamage: "สินค้าเสียหายบนรถ",
	ProblemAccident:        "อุบัติเหตุ",
	ProblemOther:           "อื่นๆ",
}

// Initial actions taken at intake, also single-select.
const (
	ActionReject            = "Reject"
	ActionRejectSort        = "RejectSort"
	ActionRework            = "Rework"
	ActionSpecialAcceptance = "SpecialAcceptance"
	ActionScrap             = "Scrap"
	ActionReplace           = "Replace"
)

var ActionTypes = []string{
	ActionReject, ActionRejectSort, ActionRework,
	ActionSpecialAcceptance, ActionScrap, ActionReplace,
}

// Root-cause categories. Warehouse and Transport carry a conditional
// sub-detail (branch, transport type); Other carries free text.
const (
	AnalysisCustomer            = "Customer"
	AnalysisDestinationCustomer = "DestinationCustomer"
	AnalysisAccounting          = "Accounting"
	AnalysisKeying              = "Keying"
	AnalysisWarehouse           = "Warehouse"
	AnalysisTransport           = "Transport"
	AnalysisOther               = "Other"
)

var AnalysisCategories = []string{
	AnalysisCustomer, AnalysisDestinationCustomer, AnalysisAccounting,
	AnalysisKeying, AnalysisWarehouse, AnalysisTransport, AnalysisOther,
}

func isOneOf(value string, set []string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// ValidateProblem checks the intake problem section. ProblemType Other
// requires the free-text description.
func ValidateProblem(problemType, otherText string) error {
	if problemType == "" {
		return newValidationError("a problem type is required")
	}
	if !isOneOf(problemType, ProblemTypes) {
		return newValidationError("unknown problem type: " + problemType)
	}
	if problemType == ProblemOther && otherText == "" {
		return newValidationError("problem type Other requires a description")
	}
	return nil
}

// ValidateAction checks the intake action section. Every action carries a
// quantity; Rework additionally needs the method, SpecialAcceptance the
// reason.
func ValidateAction(actionType string, qty int, method, reason string) error {
	if actionType == "" {
		// action is optional at intake
		return nil
	}
	if !isOneOf(actionType, ActionTypes) {
		return newValidationError("unknown action type: " + actionType)
	}
	problems := []string{}
	if qty <= 0 {
		problems = append(problems, "action quantity must be greater than zero")
	}
	if actionType == ActionRework && method == "" {
		problems = append(problems, "action Rework requires the rework method")
	}
	if actionType == ActionSpecialAcceptance && reason == "" {
		problems = append(problems, "action SpecialAcceptance requires a reason")
	}
	if len(problems) > 0 {
		return newValidationError(problems...)
	}
	return nil
}

// ValidateAnalysis checks the root-cause section and its conditional
// sub-detail.
func ValidateAnalysis(category, subDetail string) error {
	if category == "" {
		return newValidationError("a root-cause category is required")
	}
	if !isOneOf(category, AnalysisCategories) {
		return newValidationError("unknown root-cause category: " + category)
	}
	switch category {
	case AnalysisWarehouse:
		if subDetail == "" {
			return newValidationError("root cause Warehouse requires the branch")
		}
	case AnalysisTransport:
		if subDetail == "" {
			return newValidationError("root cause Transport requires the transport type")
		}
	case AnalysisOther:
		if subDetail == "" {
			return newValidationError("root cause Other requires a description")
		}
	}
	return nil
}
