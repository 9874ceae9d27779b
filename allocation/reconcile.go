package allocation

// The reconciler diffs a previously persisted reservation against its edited
// in-memory version and classifies every entity into exactly one action:
//
//   - draft, or persisted id unknown to the original  -> create
//   - identity-defining field changed                 -> delete old + create new
//   - only mutable fields changed                     -> update
//   - original id missing from the edited state       -> delete
//
// Deletes are soft; the caller submits deletes first, then creates/updates.
// Application is per-operation with no cross-entity transaction.

// Reconcilable is implemented by entities the reconciler can diff.
type Reconcilable[T any] interface {
	EntityRef() Ref
	// SameIdentity reports whether the identity-defining fields match; a
	// mismatch forces a delete-and-recreate instead of an update.
	SameIdentity(original T) bool
	// EqualFields reports whether all mutable fields match.
	EqualFields(original T) bool
}

// Delta holds the persistence operations for one entity category.
type Delta[T any] struct {
	Creates []T
	Updates []T
	Deletes []string // persisted store ids to soft-delete
}

func (d Delta[T]) Empty() bool {
	return len(d.Creates) == 0 && len(d.Updates) == 0 && len(d.Deletes) == 0
}

// Diff classifies current entities against the original persisted set.
func Diff[T Reconcilable[T]](original, current []T) Delta[T] {
	byID := make(map[string]T, len(original))
	for _, o := range original {
		if id := o.EntityRef().StoreID(); id != "" {
			byID[id] = o
		}
	}

	var delta Delta[T]
	seen := make(map[string]bool, len(current))

	for _, cur := range current {
		ref := cur.EntityRef()
		if !ref.IsPersisted() {
			delta.Creates = append(delta.Creates, cur)
			continue
		}
		orig, ok := byID[ref.StoreID()]
		if !ok {
			delta.Creates = append(delta.Creates, cur)
			continue
		}
		seen[ref.StoreID()] = true

		switch {
		case !cur.SameIdentity(orig):
			// The record now points at a different thing; retire the old row
			// and insert a fresh one carrying the new identity.
			delta.Deletes = append(delta.Deletes, ref.StoreID())
			delta.Creates = append(delta.Creates, cur)
		case !cur.EqualFields(orig):
			delta.Updates = append(delta.Updates, cur)
		}
	}

	for _, o := range original {
		id := o.EntityRef().StoreID()
		if id != "" && !seen[id] {
			delta.Deletes = append(delta.Deletes, id)
		}
	}
	return delta
}

// ReservationState is the reconciler's view of one reservation: its rooms,
// guests and special charges.
type ReservationState struct {
	Rooms   []RoomAllocation
	Guests  []Guest
	Charges []SpecialCharge
}

// ReconciliationDelta carries one Delta per entity category. It is produced
// once per submit and consumed exactly once by the persistence store.
type ReconciliationDelta struct {
	Rooms   Delta[RoomAllocation]
	Guests  Delta[Guest]
	Charges Delta[SpecialCharge]
}

func (d ReconciliationDelta) Empty() bool {
	return d.Rooms.Empty() && d.Guests.Empty() && d.Charges.Empty()
}

// Reconcile diffs the edited state against the persisted original across all
// three categories. Diffing an unchanged state against itself yields an empty
// delta.
func Reconcile(original, current ReservationState) ReconciliationDelta {
	return ReconciliationDelta{
		Rooms:   Diff(original.Rooms, current.Rooms),
		Guests:  Diff(original.Guests, current.Guests),
		Charges: Diff(original.Charges, current.Charges),
	}
}

func (a RoomAllocation) EntityRef() Ref { return a.Ref }

// SameIdentity: the room a guest party sleeps in defines the record. Pointing
// the allocation at another room retires the row.
func (a RoomAllocation) SameIdentity(o RoomAllocation) bool {
	return a.RoomID == o.RoomID && a.RoomNumber == o.RoomNumber
}

func (a RoomAllocation) EqualFields(o RoomAllocation) bool {
	return a.GuestCount == o.GuestCount &&
		a.Tariff == o.Tariff &&
		a.Capacity == o.Capacity &&
		a.RoomType == o.RoomType
}

func (g Guest) EntityRef() Ref { return g.Ref }

// Guests have no identity-defining field beyond the record id.
func (g Guest) SameIdentity(Guest) bool { return true }

func (g Guest) EqualFields(o Guest) bool {
	return g.FullName == o.FullName &&
		g.Email == o.Email &&
		g.Phone == o.Phone &&
		g.Primary == o.Primary
}

func (c SpecialCharge) EntityRef() Ref { return c.Ref }

// Charges have no identity-defining field beyond the record id.
func (c SpecialCharge) SameIdentity(SpecialCharge) bool { return true }

func (c SpecialCharge) EqualFields(o SpecialCharge) bool {
	return c.Name == o.Name &&
		c.Rate == o.Rate &&
		c.Quantity == o.Quantity &&
		c.Description == o.Description &&
		c.MasterID == o.MasterID
}
