package workflow

import (
	"testing"

	"returns-app/models"

	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 { return &v }

func TestAggregatePlain(t *testing.T) {
	items := []models.ReturnRecord{
		{PriceBill: 100},
		{PriceBill: 250.50},
		{PriceBill: 49.50},
	}

	totals := Aggregate(items, false, 7, false, 0)
	assert.InDelta(t, 400.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 0.0, totals.Discount, 0.001)
	assert.InDelta(t, 400.0, totals.AfterDiscount, 0.001)
	assert.InDelta(t, 0.0, totals.Vat, 0.001)
	assert.InDelta(t, 400.0, totals.Net, 0.001)
}

func TestAggregateWithVat(t *testing.T) {
	items := []models.ReturnRecord{{PriceBill: 1000}}

	totals := Aggregate(items, true, 7, false, 0)
	assert.InDelta(t, 70.0, totals.Vat, 0.001)
	assert.InDelta(t, 1070.0, totals.Net, 0.001)
}

func TestAggregatePerItemDiscountWithGlobalFallback(t *testing.T) {
	items := []models.ReturnRecord{
		{PriceBill: 100, DiscountPercent: pct(10)},
		{PriceBill: 200}, // falls back to the global 5%
	}

	totals := Aggregate(items, false, 7, true, 5)
	assert.InDelta(t, 20.0, totals.Discount, 0.001) // 10 + 10
	assert.InDelta(t, 280.0, totals.AfterDiscount, 0.001)
	assert.InDelta(t, 280.0, totals.Net, 0.001)
}

func TestAggregateDiscountToggleOffForcesZero(t *testing.T) {
	items := []models.ReturnRecord{
		{PriceBill: 100, DiscountPercent: pct(50)},
		{PriceBill: 200, DiscountPercent: pct(25)},
	}

	totals := Aggregate(items, true, 7, false, 10)
	assert.InDelta(t, 0.0, totals.Discount, 0.001)
	assert.InDelta(t, 300.0, totals.AfterDiscount, 0.001)
}

func TestAggregateIdentities(t *testing.T) {
	cases := []struct {
		items           []models.ReturnRecord
		includeVat      bool
		vatRate         float64
		includeDiscount bool
		discountRate    float64
	}{
		{[]models.ReturnRecord{{PriceBill: 123.45}, {PriceBill: 67.89, DiscountPercent: pct(3.5)}}, true, 7, true, 2},
		{[]models.ReturnRecord{{PriceBill: 999.99, DiscountPercent: pct(12.5)}}, true, 10, true, 0},
		{[]models.ReturnRecord{{PriceBill: 0.01}}, true, 7, false, 0},
		{nil, true, 7, true, 5},
	}

	for _, c := range cases {
		totals := Aggregate(c.items, c.includeVat, c.vatRate, c.includeDiscount, c.discountRate)
		assert.InDelta(t, totals.Subtotal-totals.Discount, totals.AfterDiscount, 0.005)
		assert.InDelta(t, totals.AfterDiscount+totals.Vat, totals.Net, 0.005)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil, true, 7, true, 5)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Net)
}
