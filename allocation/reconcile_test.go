package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedRoom(storeID, roomID, number string, guests int) RoomAllocation {
	return RoomAllocation{
		Ref:        Persisted(storeID),
		ID:         storeID,
		RoomID:     roomID,
		RoomNumber: number,
		RoomType:   "Quad",
		Capacity:   4,
		Tariff:     1500,
		GuestCount: guests,
	}
}

func persistedGuest(storeID, name string) Guest {
	return Guest{Ref: Persisted(storeID), ID: storeID, FullName: name}
}

func TestReconcileUnchangedStateIsNoOp(t *testing.T) {
	state := ReservationState{
		Rooms:   []RoomAllocation{persistedRoom("r1", "roomA", "101", 2)},
		Guests:  []Guest{persistedGuest("g1", "Ann Chai")},
		Charges: []SpecialCharge{RestoreCharge("c1", "11", "Kitchen Use", 500, 1, "", false)},
	}

	delta := Reconcile(state, state)
	assert.True(t, delta.Empty())
}

func TestReconcileRoomChangeIsReplace(t *testing.T) {
	original := ReservationState{Rooms: []RoomAllocation{persistedRoom("r1", "roomA", "101", 2)}}

	edited := persistedRoom("r1", "roomB", "102", 2)
	delta := Reconcile(original, ReservationState{Rooms: []RoomAllocation{edited}})

	// Same record id pointed at a new room: retire r1, create a fresh row.
	assert.Equal(t, []string{"r1"}, delta.Rooms.Deletes)
	require.Len(t, delta.Rooms.Creates, 1)
	assert.Equal(t, "roomB", delta.Rooms.Creates[0].RoomID)
	assert.Empty(t, delta.Rooms.Updates)
}

func TestReconcileGuestCountChangeIsUpdate(t *testing.T) {
	original := ReservationState{Rooms: []RoomAllocation{persistedRoom("r1", "roomA", "101", 2)}}

	edited := persistedRoom("r1", "roomA", "101", 3)
	delta := Reconcile(original, ReservationState{Rooms: []RoomAllocation{edited}})

	assert.Empty(t, delta.Rooms.Deletes)
	assert.Empty(t, delta.Rooms.Creates)
	require.Len(t, delta.Rooms.Updates, 1)
	assert.Equal(t, 3, delta.Rooms.Updates[0].GuestCount)
}

func TestReconcileDraftIsCreate(t *testing.T) {
	draft := RoomAllocation{Ref: Draft(), ID: "tmp-1", RoomID: "roomC", RoomNumber: "103", Capacity: 2, GuestCount: 2}

	delta := Reconcile(ReservationState{}, ReservationState{Rooms: []RoomAllocation{draft}})
	require.Len(t, delta.Rooms.Creates, 1)
	assert.Empty(t, delta.Rooms.Deletes)
	assert.Empty(t, delta.Rooms.Updates)
}

func TestReconcileMissingChargeIsDelete(t *testing.T) {
	original := ReservationState{Charges: []SpecialCharge{
		RestoreCharge("c1", "11", "Kitchen Use", 500, 1, "", false),
		RestoreCharge("c2", "12", "Conference Hall", 2000, 1, "", false),
	}}
	current := ReservationState{Charges: []SpecialCharge{
		RestoreCharge("c1", "11", "Kitchen Use", 500, 1, "", false),
	}}

	delta := Reconcile(original, current)
	assert.Equal(t, []string{"c2"}, delta.Charges.Deletes)
	assert.Empty(t, delta.Charges.Creates)
	assert.Empty(t, delta.Charges.Updates)
}

func TestReconcileChargeEditIsUpdate(t *testing.T) {
	original := ReservationState{Charges: []SpecialCharge{
		RestoreCharge("c1", "11", "Kitchen Use", 500, 1, "", false),
	}}
	current := ReservationState{Charges: []SpecialCharge{
		RestoreCharge("c1", "11", "Kitchen Use", 500, 3, "three days", false),
	}}

	delta := Reconcile(original, current)
	require.Len(t, delta.Charges.Updates, 1)
	assert.Equal(t, 3, delta.Charges.Updates[0].Quantity)
}

func TestReconcileGuestLifecycle(t *testing.T) {
	original := ReservationState{Guests: []Guest{
		persistedGuest("g1", "Ann Chai"),
		persistedGuest("g2", "Ben Chai"),
	}}

	renamed := persistedGuest("g1", "Ann C. Chai")
	added := Guest{Ref: Draft(), ID: "tmp-g", FullName: "Cara Chai"}
	delta := Reconcile(original, ReservationState{Guests: []Guest{renamed, added}})

	require.Len(t, delta.Guests.Updates, 1)
	assert.Equal(t, "Ann C. Chai", delta.Guests.Updates[0].FullName)
	require.Len(t, delta.Guests.Creates, 1)
	assert.Equal(t, "Cara Chai", delta.Guests.Creates[0].FullName)
	assert.Equal(t, []string{"g2"}, delta.Guests.Deletes)
}

func TestReconcileUnknownPersistedIDIsCreate(t *testing.T) {
	// A persisted id the original set no longer contains is treated as a
	// create rather than an update against nothing.
	stray := persistedGuest("g9", "Dan Chai")

	delta := Reconcile(ReservationState{}, ReservationState{Guests: []Guest{stray}})
	require.Len(t, delta.Guests.Creates, 1)
	assert.Empty(t, delta.Guests.Updates)
	assert.Empty(t, delta.Guests.Deletes)
}
