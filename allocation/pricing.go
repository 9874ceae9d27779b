package allocation

import "math"

// DiscountType selects how the discount value is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// Discount is a percentage of the subtotal or a flat amount.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}

// PricingBreakdown is derived from the allocation, the charge list and the
// discount. It is recomputed on every relevant input change and never stored
// apart from its inputs.
type PricingBreakdown struct {
	RoomTariffTotal     float64 `json:"roomTariffTotal"`
	SpecialChargesTotal float64 `json:"specialChargesTotal"`
	Subtotal            float64 `json:"subtotal"`
	Discount            float64 `json:"discount"`
	Total               float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Price totals a stay. Values are rounded to 2 decimals; Subtotal and Total
// hold exactly (Subtotal = RoomTariffTotal + SpecialChargesTotal, Total =
// Subtotal - Discount). A discount larger than the subtotal yields a negative
// total; clamping would break those identities, so none is applied.
func Price(allocations []RoomAllocation, charges []SpecialCharge, discount Discount, nights int) PricingBreakdown {
	roomTotal := 0.0
	for _, a := range allocations {
		roomTotal += a.Tariff * float64(nights)
	}
	roomTotal = round2(roomTotal)

	chargesTotal := 0.0
	for _, c := range charges {
		chargesTotal += c.Total()
	}
	chargesTotal = round2(chargesTotal)

	subtotal := round2(roomTotal + chargesTotal)

	var off float64
	switch discount.Type {
	case DiscountPercentage:
		off = round2(subtotal * discount.Value / 100)
	case DiscountAmount:
		off = round2(discount.Value)
	default:
		off = 0
	}

	return PricingBreakdown{
		RoomTariffTotal:     roomTotal,
		SpecialChargesTotal: chargesTotal,
		Subtotal:            subtotal,
		Discount:            off,
		Total:               round2(subtotal - off),
	}
}
