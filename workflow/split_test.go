package workflow

import (
	"testing"
	"time"

	"returns-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitBase() models.ReturnRecord {
	return models.ReturnRecord{
		RecordNo:     "RT2501010001",
		RefNo:        "INV-PHS-001",
		NcrNumber:    "NCR-2025-001",
		Branch:       "พิษณุโลก",
		ProductName:  "เลย์ รสมันฝรั่งแท้ 50g",
		Quantity:     10,
		Unit:         "ลัง",
		PricePerUnit: 240,
		PriceBill:    2400,
		Status:       StatusNCRHubReceived,
		Condition:    ConditionNew,
		Disposition:  DispositionPending,
	}
}

func TestSplitItemWithImmediateDisposition(t *testing.T) {
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	original, split, err := SplitItem(splitBase(), SplitInput{
		SplitQty:    3,
		Condition:   ConditionBoxDamage,
		Disposition: DispositionRestock,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 7, original.Quantity)
	assert.Equal(t, "ลัง", original.Unit)
	assert.Equal(t, StatusNCRHubReceived, original.Status)
	assert.Equal(t, DispositionPending, original.Disposition)

	assert.Equal(t, 3, split.Quantity)
	assert.Equal(t, DispositionRestock, split.Disposition)
	assert.Equal(t, StatusNCRQCCompleted, split.Status)
	assert.Equal(t, ConditionBoxDamage, split.Condition)
	assert.Equal(t, "INV-PHS-001-SP", split.RefNo)
	assert.Regexp(t, `^RT2501010001-SP\d{4}$`, split.RecordNo)
	assert.Zero(t, split.ID)

	// everything else is copied
	assert.Equal(t, "NCR-2025-001", split.NcrNumber)
	assert.Equal(t, "พิษณุโลก", split.Branch)
}

func TestSplitItemWithoutDispositionReturnsToQueue(t *testing.T) {
	original, split, err := SplitItem(splitBase(), SplitInput{
		SplitQty:  4,
		Condition: ConditionDamaged,
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 6, original.Quantity)
	assert.Equal(t, StatusNCRHubReceived, split.Status)
	assert.Equal(t, DispositionPending, split.Disposition)
}

func TestSplitItemQuantityBounds(t *testing.T) {
	for _, qty := range []int{0, -1, 10, 11} {
		_, _, err := SplitItem(splitBase(), SplitInput{SplitQty: qty, Condition: ConditionNew}, time.Now())
		assert.ErrorIs(t, err, ErrInvalidSplitQuantity, "qty %d", qty)
	}

	// 9 of 10 is the largest allowed split
	original, split, err := SplitItem(splitBase(), SplitInput{SplitQty: 9, Condition: ConditionNew}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, original.Quantity)
	assert.Equal(t, 9, split.Quantity)
}

func TestSplitItemConservesQuantity(t *testing.T) {
	for qty := 1; qty < 10; qty++ {
		original, split, err := SplitItem(splitBase(), SplitInput{SplitQty: qty, Condition: ConditionNew}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 10, original.Quantity+split.Quantity)
	}
}

func TestSplitItemUnitBreakdown(t *testing.T) {
	// 10 packs of 12 pieces -> 120 pieces available
	original, split, err := SplitItem(splitBase(), SplitInput{
		SplitQty:       30,
		Condition:      ConditionDefective,
		Disposition:    DispositionRecycle,
		BreakdownUnit:  true,
		ConversionRate: 12,
		NewUnitName:    "ชิ้น",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 90, original.Quantity)
	assert.Equal(t, "ชิ้น", original.Unit)
	assert.Equal(t, 30, split.Quantity)
	assert.Equal(t, "ชิ้น", split.Unit)
	assert.InDelta(t, 20.0, original.PricePerUnit, 0.001) // 240 / 12
	assert.InDelta(t, 20.0, split.PricePerUnit, 0.001)
}

func TestSplitItemBreakdownBounds(t *testing.T) {
	// the whole 120 pieces cannot leave via split
	_, _, err := SplitItem(splitBase(), SplitInput{
		SplitQty:       120,
		Condition:      ConditionNew,
		BreakdownUnit:  true,
		ConversionRate: 12,
		NewUnitName:    "ชิ้น",
	}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidSplitQuantity)

	_, _, err = SplitItem(splitBase(), SplitInput{
		SplitQty:      5,
		Condition:     ConditionNew,
		BreakdownUnit: true,
	}, time.Now())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
