package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceIdentities(t *testing.T) {
	allocs := []RoomAllocation{
		{RoomID: "1", Tariff: 1000, Capacity: 2, GuestCount: 2},
		{RoomID: "2", Tariff: 1833.33, Capacity: 4, GuestCount: 4},
	}
	charges := []SpecialCharge{
		RestoreCharge("c1", "11", "Kitchen Use", 333.33, 3, "", false),
	}

	b := Price(allocs, charges, Discount{Type: DiscountPercentage, Value: 7.5}, 3)
	assert.InDelta(t, b.RoomTariffTotal+b.SpecialChargesTotal, b.Subtotal, 1e-9)
	assert.InDelta(t, b.Subtotal-b.Discount, b.Total, 1e-9)
}

func TestPriceOvercrowdedQuadTwoNights(t *testing.T) {
	// One Quad at 1500/night for 2 nights plus the auto extra-person charge
	// for 2 extra guests (4 person-nights at 300).
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 1500, Capacity: 4, GuestCount: 6}}
	charges := UpsertAutoCharge(nil, Overflow{ExtraGuestCount: 2, ChargeQuantity: 4, Rate: 300})

	b := Price(allocs, charges, Discount{Type: DiscountNone}, 2)
	assert.Equal(t, 3000.0, b.RoomTariffTotal)
	assert.Equal(t, 1200.0, b.SpecialChargesTotal)
	assert.Equal(t, 4200.0, b.Subtotal)
	assert.Equal(t, 4200.0, b.Total)
}

func TestPricePercentageDiscount(t *testing.T) {
	// Subtotal 5000, 10% off.
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 2500, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountPercentage, Value: 10}, 2)
	assert.Equal(t, 5000.0, b.Subtotal)
	assert.Equal(t, 500.0, b.Discount)
	assert.Equal(t, 4500.0, b.Total)
}

func TestPriceAmountDiscount(t *testing.T) {
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 1000, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountAmount, Value: 750}, 2)
	assert.Equal(t, 2000.0, b.Subtotal)
	assert.Equal(t, 750.0, b.Discount)
	assert.Equal(t, 1250.0, b.Total)
}

func TestPriceNoDiscount(t *testing.T) {
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 1000, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountNone, Value: 50}, 1)
	assert.Equal(t, 0.0, b.Discount)
	assert.Equal(t, 1000.0, b.Total)
}

func TestPriceDiscountMayExceedSubtotal(t *testing.T) {
	// Not clamped: the Total = Subtotal - Discount identity holds instead.
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 500, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountAmount, Value: 800}, 1)
	assert.Equal(t, -300.0, b.Total)
	assert.Equal(t, b.Total, b.Subtotal-b.Discount)
}

func TestPriceZeroNights(t *testing.T) {
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 1000, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountNone}, 0)
	assert.Equal(t, 0.0, b.RoomTariffTotal)
	assert.Equal(t, 0.0, b.Total)
}

func TestPriceRoundsToTwoDecimals(t *testing.T) {
	allocs := []RoomAllocation{{RoomID: "1", Tariff: 333.333, Capacity: 2, GuestCount: 2}}

	b := Price(allocs, nil, Discount{Type: DiscountPercentage, Value: 33.33}, 3)
	assert.Equal(t, 1000.0, b.RoomTariffTotal)
	assert.Equal(t, 333.3, b.Discount)
	assert.Equal(t, 666.7, b.Total)
}
