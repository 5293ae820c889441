package models

import (
	"returns-app/controllers/idgen"

	"gorm.io/gorm"
)

// NCRReport is the parent quality-complaint document for one or more
// ReturnRecords sharing an NCR number. When the report is Canceled every
// child record disappears from the downstream queues regardless of its own
// status.
type NCRReport struct {
	gorm.Model
	ID     int64  `json:"id" gorm:"primary_key"`
	NcrNo  string `json:"ncr_no" gorm:"unique"`
	Date   string `json:"date" gorm:"type:date"`
	Status string `json:"status" gorm:"default:'Open'"` // Open | Closed | Canceled

	ToDept  string `json:"to_dept"`
	CopyTo  string `json:"copy_to"`
	Founder string `json:"founder"`
	PoNo    string `json:"po_no"`

	ProblemDetail string `json:"problem_detail"`
	DueDate       string `json:"due_date" gorm:"type:date"`

	Approver         string `json:"approver"`
	ApproverPosition string `json:"approver_position"`
	ApproverDate     string `json:"approver_date" gorm:"type:date"`

	CauseDetail         string `json:"cause_detail"`
	PreventionDetail    string `json:"prevention_detail"`
	PreventionDueDate   string `json:"prevention_due_date" gorm:"type:date"`
	ResponsiblePerson   string `json:"responsible_person"`
	ResponsiblePosition string `json:"responsible_position"`

	QaAccept bool   `json:"qa_accept"`
	QaReject bool   `json:"qa_reject"`
	QaReason string `json:"qa_reason"`

	CancelReason string `json:"cancel_reason"`

	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

func (n *NCRReport) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = idgen.GenerateID()
	return
}
