package workflow

import (
	"returns-app/models"

	"github.com/shopspring/decimal"
)

// Totals is the money block printed on a generated document.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	AfterDiscount float64 `json:"after_discount"`
	Vat           float64 `json:"vat"`
	Net           float64 `json:"net"`
}

var oneHundred = decimal.NewFromInt(100)

// Aggregate computes the document totals over a batch of records.
// Subtotal sums each line's bill price. Discount uses the per-item percent
// when one is set, falling back to discountRate; when includeDiscount is
// false the discount is zero no matter what the items carry.
func Aggregate(items []models.ReturnRecord, includeVat bool, vatRate float64, includeDiscount bool, discountRate float64) Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	globalRate := decimal.NewFromFloat(discountRate)

	for _, item := range items {
		line := decimal.NewFromFloat(item.PriceBill)
		subtotal = subtotal.Add(line)

		if !includeDiscount {
			continue
		}
		rate := globalRate
		if item.DiscountPercent != nil {
			rate = decimal.NewFromFloat(*item.DiscountPercent)
		}
		discount = discount.Add(line.Mul(rate).DivRound(oneHundred, 4))
	}

	// Round each component before deriving the next so that the printed
	// figures always satisfy afterDiscount = subtotal - discount and
	// net = afterDiscount + vat.
	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	afterDiscount := subtotal.Sub(discount)

	vat := decimal.Zero
	if includeVat {
		vat = afterDiscount.Mul(decimal.NewFromFloat(vatRate)).DivRound(oneHundred, 2)
	}

	net := afterDiscount.Add(vat)

	return Totals{
		Subtotal:      round2(subtotal),
		Discount:      round2(discount),
		AfterDiscount: round2(afterDiscount),
		Vat:           round2(vat),
		Net:           round2(net),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
