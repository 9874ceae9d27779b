package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []CatalogItem{
	{ID: "10", Name: "Extra Person", DefaultRate: 300, RateType: "per_unit"},
	{ID: "11", Name: "Kitchen Use", DefaultRate: 500, RateType: "per_day"},
}

func overflowAlloc(capacity, guests int) RoomAllocation {
	return RoomAllocation{ID: "a1", RoomID: "1", RoomNumber: "201", RoomType: "Quad",
		Capacity: capacity, Tariff: 1500, GuestCount: guests}
}

func TestComputeOverflowNoOverflow(t *testing.T) {
	ov, memo, changed, err := ComputeOverflow([]RoomAllocation{overflowAlloc(4, 4)}, 2, testCatalog, OverflowMemo{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, ov.ExtraGuestCount)
	assert.Equal(t, 0, ov.ChargeQuantity)
	assert.True(t, memo.valid)
}

func TestComputeOverflowPersonNights(t *testing.T) {
	// One Quad holding 6 guests for 2 nights: 2 extra guests, 4 person-nights.
	ov, _, changed, err := ComputeOverflow([]RoomAllocation{overflowAlloc(4, 6)}, 2, testCatalog, OverflowMemo{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, ov.ExtraGuestCount)
	assert.Equal(t, 4, ov.ChargeQuantity)
	assert.Equal(t, 300.0, ov.Rate)
}

func TestComputeOverflowExtraGuestsAdditive(t *testing.T) {
	base := ExtraGuests([]RoomAllocation{overflowAlloc(4, 5)})
	for k := 1; k <= 3; k++ {
		bumped := ExtraGuests([]RoomAllocation{overflowAlloc(4, 5+k)})
		assert.Equal(t, base+k, bumped)
	}
}

func TestComputeOverflowMemoShortCircuits(t *testing.T) {
	allocs := []RoomAllocation{overflowAlloc(4, 6)}

	first, memo, changed, err := ComputeOverflow(allocs, 2, testCatalog, OverflowMemo{})
	require.NoError(t, err)
	require.True(t, changed)

	second, memo2, changed, err := ComputeOverflow(allocs, 2, testCatalog, memo)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, second)
	assert.Equal(t, memo, memo2)

	// Changing nights invalidates the memo.
	third, _, changed, err := ComputeOverflow(allocs, 3, testCatalog, memo)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 6, third.ChargeQuantity)
}

func TestComputeOverflowMissingCatalogEntry(t *testing.T) {
	noRate := []CatalogItem{{ID: "11", Name: "Kitchen Use", DefaultRate: 500}}

	_, memo, changed, err := ComputeOverflow([]RoomAllocation{overflowAlloc(4, 6)}, 2, noRate, OverflowMemo{})
	assert.ErrorIs(t, err, ErrExtraPersonRateMissing)
	assert.False(t, changed)
	assert.False(t, memo.valid)

	// Without overflow the entry is not needed.
	_, _, _, err = ComputeOverflow([]RoomAllocation{overflowAlloc(4, 4)}, 2, noRate, OverflowMemo{})
	assert.NoError(t, err)
}
