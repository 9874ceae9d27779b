package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findAuto(charges []SpecialCharge) (SpecialCharge, bool) {
	for _, c := range charges {
		if c.IsAuto() {
			return c, true
		}
	}
	return SpecialCharge{}, false
}

func TestUpsertAutoChargeInsertsOnce(t *testing.T) {
	ov := Overflow{ExtraGuestCount: 2, ChargeQuantity: 4, Rate: 300}

	charges := UpsertAutoCharge(nil, ov)
	require.Len(t, charges, 1)
	auto, ok := findAuto(charges)
	require.True(t, ok)
	assert.Equal(t, AutoChargeID, auto.ID)
	assert.Equal(t, ExtraPersonChargeName, auto.Name)
	assert.Equal(t, 4, auto.Quantity)
	assert.Equal(t, 300.0, auto.Rate)

	// Idempotent: same overflow, same list, no duplicate.
	again := UpsertAutoCharge(charges, ov)
	assert.Equal(t, charges, again)
}

func TestUpsertAutoChargeReplacesInPlace(t *testing.T) {
	charges := UpsertAutoCharge(nil, Overflow{ExtraGuestCount: 2, ChargeQuantity: 4, Rate: 300})
	charges = UpsertAutoCharge(charges, Overflow{ExtraGuestCount: 3, ChargeQuantity: 9, Rate: 300})

	require.Len(t, charges, 1)
	auto, _ := findAuto(charges)
	assert.Equal(t, AutoChargeID, auto.ID)
	assert.Equal(t, 9, auto.Quantity)
}

func TestUpsertAutoChargeRemovedWhenOverflowGone(t *testing.T) {
	charges := []SpecialCharge{NewCustomCharge()}
	charges = UpsertAutoCharge(charges, Overflow{ExtraGuestCount: 1, ChargeQuantity: 2, Rate: 300})
	require.Len(t, charges, 2)

	// Last overflowing guest removed: the auto charge disappears entirely.
	charges = UpsertAutoCharge(charges, Overflow{})
	require.Len(t, charges, 1)
	_, ok := findAuto(charges)
	assert.False(t, ok)
}

func TestAddQuickChargeIncrementsExisting(t *testing.T) {
	item := CatalogItem{ID: "11", Name: "Kitchen Use", DefaultRate: 500}

	charges := AddQuickCharge(nil, item)
	require.Len(t, charges, 1)
	assert.Equal(t, 1, charges[0].Quantity)
	assert.Equal(t, 500.0, charges[0].Rate)

	charges = AddQuickCharge(charges, item)
	require.Len(t, charges, 1)
	assert.Equal(t, 2, charges[0].Quantity)

	other := CatalogItem{ID: "12", Name: "Conference Hall", DefaultRate: 2000}
	charges = AddQuickCharge(charges, other)
	require.Len(t, charges, 2)
}

func TestAddCustomChargeAwaitsEdit(t *testing.T) {
	charges := AddCustomCharge(nil)
	require.Len(t, charges, 1)
	assert.Empty(t, charges[0].MasterID)
	assert.Equal(t, 0.0, charges[0].Rate)
	assert.Equal(t, 1, charges[0].Quantity)
	assert.False(t, charges[0].IsAuto())
}

func TestUpdateAndRemoveManualCharge(t *testing.T) {
	charges := AddCustomCharge(nil)
	id := charges[0].ID

	name := "Laundry"
	rate := 150.0
	qty := 3
	charges = UpdateCharge(charges, id, ChargePatch{Name: &name, Rate: &rate, Quantity: &qty})
	assert.Equal(t, "Laundry", charges[0].Name)
	assert.Equal(t, 150.0, charges[0].Rate)
	assert.Equal(t, 3, charges[0].Quantity)

	charges = RemoveCharge(charges, id)
	assert.Empty(t, charges)
}

func TestAutoChargeIsProtected(t *testing.T) {
	charges := UpsertAutoCharge(nil, Overflow{ExtraGuestCount: 1, ChargeQuantity: 2, Rate: 300})
	require.Len(t, charges, 1)

	qty := 99
	assert.Equal(t, charges, UpdateCharge(charges, AutoChargeID, ChargePatch{Quantity: &qty}))
	assert.Equal(t, charges, RemoveCharge(charges, AutoChargeID))
}

func TestRestoreChargeKeepsOrigin(t *testing.T) {
	manual := RestoreCharge("c1", "11", "Kitchen Use", 500, 2, "", false)
	assert.False(t, manual.IsAuto())
	assert.True(t, manual.Ref.IsPersisted())
	assert.Equal(t, "c1", manual.Ref.StoreID())

	auto := RestoreCharge(AutoChargeID, "", ExtraPersonChargeName, 300, 4, "", true)
	assert.True(t, auto.IsAuto())
}
