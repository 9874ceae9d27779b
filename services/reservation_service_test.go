package services

import (
	"testing"

	"guesthouse-backend/allocation"
	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineManualChargesDropsAutoRows(t *testing.T) {
	in := []ChargeInput{
		{ID: "c1", Name: "Kitchen Use", Rate: 500, Quantity: 2},
		{Name: "Extra Person", Rate: 300, Quantity: 4, Auto: true}, // client-sent, ignored
	}

	charges, err := engineManualCharges(in, nil)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "Kitchen Use", charges[0].Name)
	assert.False(t, charges[0].IsAuto())
}

func TestEngineManualChargesRejectsNonPositiveQuantity(t *testing.T) {
	_, err := engineManualCharges([]ChargeInput{{Name: "Laundry", Rate: 150, Quantity: 0}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation:")
}

func TestEngineManualChargesDropsResentAutoRowByID(t *testing.T) {
	// The persisted auto row resent with the flag stripped and a tampered
	// rate must still be classified by its id, not the client flag.
	autoIDs := map[string]bool{"auto-row-uuid": true}
	in := []ChargeInput{
		{ID: "auto-row-uuid", Name: allocation.ExtraPersonChargeName, Rate: 1, Quantity: 4},
		{ID: "manual-uuid", Name: "Kitchen Use", Rate: 500, Quantity: 1},
	}

	manual, err := engineManualCharges(in, autoIDs)
	require.NoError(t, err)
	require.Len(t, manual, 1)
	assert.Equal(t, "Kitchen Use", manual[0].Name)
}

func TestResentAutoRowCannotCarryClientValues(t *testing.T) {
	original := []allocation.SpecialCharge{
		allocation.RestoreCharge("auto-row-uuid", "", allocation.ExtraPersonChargeName, 300, 4, "", true),
	}
	in := []ChargeInput{{ID: "auto-row-uuid", Name: allocation.ExtraPersonChargeName, Rate: 1, Quantity: 4}}

	manual, err := engineManualCharges(in, map[string]bool{"auto-row-uuid": true})
	require.NoError(t, err)
	assert.Empty(t, manual)

	// The server-derived charge is the only current entity bound to the
	// persisted row's id, and it carries the catalog rate.
	current := bindAutoCharge(original, allocation.UpsertAutoCharge(manual,
		allocation.Overflow{ExtraGuestCount: 2, ChargeQuantity: 4, Rate: 300}))
	require.Len(t, current, 1)
	assert.Equal(t, "auto-row-uuid", current[0].ID)
	assert.Equal(t, 300.0, current[0].Rate)

	delta := allocation.Diff(original, current)
	assert.Empty(t, delta.Creates)
	assert.Empty(t, delta.Deletes)
	assert.Empty(t, delta.Updates)
}

func TestPersistedAutoIDs(t *testing.T) {
	rows := []models.ReservationCharge{
		{PublicID: "auto-row-uuid", AutoGenerated: true},
		{PublicID: "manual-uuid"},
	}
	ids := persistedAutoIDs(rows)
	assert.True(t, ids["auto-row-uuid"])
	assert.False(t, ids["manual-uuid"])
}

func TestParseRequestValidates(t *testing.T) {
	_, err := parseRequest("2026-03-10", "2026-03-12", 2, "couple")
	require.NoError(t, err)

	_, err = parseRequest("2026-03-12", "2026-03-10", 2, "couple")
	assert.Error(t, err)

	_, err = parseRequest("bad-date", "2026-03-12", 2, "couple")
	assert.Error(t, err)
}

func TestDiscountFromFallsBackToNone(t *testing.T) {
	assert.Equal(t, allocation.DiscountPercentage, discountFrom("percentage", 10).Type)
	assert.Equal(t, allocation.DiscountAmount, discountFrom("amount", 500).Type)
	assert.Equal(t, allocation.DiscountNone, discountFrom("", 500).Type)
	assert.Equal(t, allocation.DiscountNone, discountFrom("bogus", 500).Type)
}

func TestBindAutoChargeReusesPersistedRow(t *testing.T) {
	original := []allocation.SpecialCharge{
		allocation.RestoreCharge("uuid-auto", "", allocation.ExtraPersonChargeName, 300, 4, "", true),
	}
	current := allocation.UpsertAutoCharge(nil, allocation.Overflow{ExtraGuestCount: 3, ChargeQuantity: 6, Rate: 300})

	bound := bindAutoCharge(original, current)
	require.Len(t, bound, 1)
	assert.Equal(t, "uuid-auto", bound[0].ID)
	assert.True(t, bound[0].Ref.IsPersisted())

	// Diffing now yields an in-place update, not a replace.
	delta := allocation.Diff(original, bound)
	assert.Empty(t, delta.Deletes)
	assert.Empty(t, delta.Creates)
	require.Len(t, delta.Updates, 1)
	assert.Equal(t, 6, delta.Updates[0].Quantity)
}

func TestBindAutoChargeNoPersistedRow(t *testing.T) {
	current := allocation.UpsertAutoCharge(nil, allocation.Overflow{ExtraGuestCount: 1, ChargeQuantity: 2, Rate: 300})

	bound := bindAutoCharge(nil, current)
	require.Len(t, bound, 1)
	assert.False(t, bound[0].Ref.IsPersisted())
}

func TestWithAutoChargeMissingRateDegrades(t *testing.T) {
	allocs := []allocation.RoomAllocation{
		{RoomID: "1", RoomNumber: "201", Capacity: 4, Tariff: 1500, GuestCount: 6},
	}
	catalog := []allocation.CatalogItem{{ID: "11", Name: "Kitchen Use", DefaultRate: 500}}

	charges, ov, warnings := withAutoCharge(allocs, 2, catalog, nil)
	assert.Empty(t, charges)
	assert.Equal(t, 0, ov.ExtraGuestCount)
	require.Len(t, warnings, 1)
}
