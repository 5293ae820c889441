package workflow

import (
	"fmt"
	"time"

	"returns-app/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitInput describes a partial split of one record during QC: splitQty
// units leave the original record onto a new one with its own grade and
// disposition. With unit breakdown a pack quantity is first converted to
// pieces (ConversionRate pieces per pack, renamed to NewUnitName).
type SplitInput struct {
	SplitQty       int    `json:"split_qty"`
	Condition      string `json:"condition"`
	ConditionNote  string `json:"condition_note"`
	Disposition    string `json:"disposition"` // empty -> back to QC queue
	BreakdownUnit  bool   `json:"breakdown_unit"`
	ConversionRate int    `json:"conversion_rate"`
	NewUnitName    string `json:"new_unit_name"`
}

// TotalAvailable is the quantity the split operates on, after the optional
// unit breakdown.
func (in SplitInput) TotalAvailable(item models.ReturnRecord) int {
	if in.BreakdownUnit && in.ConversionRate > 0 {
		return item.Quantity * in.ConversionRate
	}
	return item.Quantity
}

// SplitItem returns the adjusted original and the new split-off record.
// The remainder always stays on the original; splitting the entire quantity
// is rejected, that case is a normal disposition submission. The new record
// copies everything from the original except grade, disposition, status,
// quantity and unit, and gets derived reference numbers (-SP suffix).
func SplitItem(item models.ReturnRecord, in SplitInput, now time.Time) (models.ReturnRecord, models.ReturnRecord, error) {
	if in.BreakdownUnit && in.ConversionRate <= 0 {
		return item, models.ReturnRecord{}, newValidationError("unit breakdown requires a conversion rate greater than zero")
	}

	total := in.TotalAvailable(item)
	if in.SplitQty <= 0 || in.SplitQty >= total {
		return item, models.ReturnRecord{}, ErrInvalidSplitQuantity
	}

	original := item
	original.Quantity = total - in.SplitQty
	if in.BreakdownUnit {
		original.Unit = in.NewUnitName
		original.PricePerUnit = perPiecePrice(item.PricePerUnit, in.ConversionRate)
	}

	ts := fmt.Sprintf("%d", now.UnixMilli())
	suffix := ts[len(ts)-4:]

	split := item
	split.ID = 0
	split.Model = gorm.Model{}
	split.Images = nil
	split.RecordNo = fmt.Sprintf("%s-SP%s", item.RecordNo, suffix)
	split.RefNo = fmt.Sprintf("%s-SP", item.RefNo)
	split.Quantity = in.SplitQty
	split.Unit = original.Unit
	split.PricePerUnit = original.PricePerUnit
	split.Condition = in.Condition
	split.ConditionNote = in.ConditionNote

	if in.Disposition != "" && in.Disposition != DispositionPending {
		split.Disposition = in.Disposition
		split.Status = StatusNCRQCCompleted
	} else {
		// back to the QC queue for separate handling later
		split.Disposition = DispositionPending
		split.Status = StatusNCRHubReceived
	}

	return original, split, nil
}

// perPiecePrice divides the pack price by the conversion rate, rounded to
// satang.
func perPiecePrice(packPrice float64, rate int) float64 {
	if rate <= 0 {
		return packPrice
	}
	price, _ := decimal.NewFromFloat(packPrice).
		DivRound(decimal.NewFromInt(int64(rate)), 2).
		Float64()
	return price
}
