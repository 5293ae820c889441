package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemAndActionCatalogSize(t *testing.T) {
	assert.Len(t, ProblemTypes, 18)
	assert.Len(t, ActionTypes, 6)
}

func TestValidateProblem(t *testing.T) {
	for _, p := range ProblemTypes {
		if p == ProblemOther {
			continue
		}
		assert.NoError(t, ValidateProblem(p, ""))
	}

	var verr *ValidationError
	assert.ErrorAs(t, ValidateProblem("", ""), &verr)
	assert.ErrorAs(t, ValidateProblem("Melted", ""), &verr)
	assert.ErrorAs(t, ValidateProblem(ProblemOther, ""), &verr)
	assert.NoError(t, ValidateProblem(ProblemOther, "สินค้าสีซีดจากแดด"))
}

func TestValidateAction(t *testing.T) {
	assert.NoError(t, ValidateAction("", 0, "", ""))
	assert.NoError(t, ValidateAction(ActionReject, 5, "", ""))
	assert.NoError(t, ValidateAction(ActionRework, 2, "ติดฉลากใหม่", ""))
	assert.NoError(t, ValidateAction(ActionSpecialAcceptance, 1, "", "ลูกค้ายอมรับสภาพ"))

	var verr *ValidationError
	assert.ErrorAs(t, ValidateAction("Shred", 1, "", ""), &verr)
	assert.ErrorAs(t, ValidateAction(ActionReject, 0, "", ""), &verr)
	assert.ErrorAs(t, ValidateAction(ActionRework, 2, "", ""), &verr)
	assert.ErrorAs(t, ValidateAction(ActionSpecialAcceptance, 1, "", ""), &verr)
}

func TestValidateAnalysis(t *testing.T) {
	assert.NoError(t, ValidateAnalysis(AnalysisCustomer, ""))
	assert.NoError(t, ValidateAnalysis(AnalysisKeying, ""))
	assert.NoError(t, ValidateAnalysis(AnalysisWarehouse, "พิษณุโลก"))
	assert.NoError(t, ValidateAnalysis(AnalysisTransport, "CompanyDriver"))
	assert.NoError(t, ValidateAnalysis(AnalysisOther, "เอกสารสูญหายระหว่างส่งต่อ"))

	var verr *ValidationError
	assert.ErrorAs(t, ValidateAnalysis("", ""), &verr)
	assert.ErrorAs(t, ValidateAnalysis("Weather", ""), &verr)
	assert.ErrorAs(t, ValidateAnalysis(AnalysisWarehouse, ""), &verr)
	assert.ErrorAs(t, ValidateAnalysis(AnalysisTransport, ""), &verr)
	assert.ErrorAs(t, ValidateAnalysis(AnalysisOther, ""), &verr)
}

// The single-select fields make multi-selection unrepresentable: after any
// sequence of assignments a record carries exactly one problem type and at
// most one action.
func TestSingleSelectByConstruction(t *testing.T) {
	problem := ProblemDamaged
	for _, next := range []string{ProblemLost, ProblemShortExpiry, ProblemTransportDamage} {
		problem = next
	}
	assert.Equal(t, ProblemTransportDamage, problem)
	assert.True(t, isOneOf(problem, ProblemTypes))
}
