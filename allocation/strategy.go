package allocation

import (
	"sort"

	"github.com/google/uuid"
)

// Strategy labels one allocation heuristic.
type Strategy string

const (
	StrategyComfort  Strategy = "comfort"
	StrategyPrice    Strategy = "price"
	StrategyMinRooms Strategy = "min-rooms"
)

// roomTypeRank orders room types for comfort tie-breaks. Unlisted types sort
// after all listed ones.
var roomTypeRank = map[string]int{
	"Couple":    0,
	"Quad":      1,
	"Family":    2,
	"Dormitory": 3,
}

func typeRank(roomType string) int {
	if r, ok := roomTypeRank[roomType]; ok {
		return r
	}
	return len(roomTypeRank)
}

func perGuestRate(r Room) float64 {
	if r.Capacity <= 0 {
		return r.Tariff
	}
	return r.Tariff / float64(r.Capacity)
}

// roomLess ranks two candidate rooms given how many guests still need a bed.
// Each strategy supplies its own ordering.
type roomLess func(a, b Room, remaining int) bool

func comfortLess(a, b Room, remaining int) bool {
	aFits, bFits := a.Capacity >= remaining, b.Capacity >= remaining
	if aFits != bFits {
		return aFits
	}
	if aFits {
		if wa, wb := a.Capacity-remaining, b.Capacity-remaining; wa != wb {
			return wa < wb
		}
	}
	if ra, rb := typeRank(a.Type), typeRank(b.Type); ra != rb {
		return ra < rb
	}
	return perGuestRate(a) < perGuestRate(b)
}

func priceLess(a, b Room, remaining int) bool {
	aFits, bFits := a.Capacity >= remaining, b.Capacity >= remaining
	if aFits != bFits {
		return aFits
	}
	if pa, pb := perGuestRate(a), perGuestRate(b); pa != pb {
		return pa < pb
	}
	if aFits {
		return a.Capacity-remaining < b.Capacity-remaining
	}
	return a.Capacity > b.Capacity
}

func minRoomsLess(a, b Room, remaining int) bool {
	aFits, bFits := a.Capacity >= remaining, b.Capacity >= remaining
	if aFits != bFits {
		return aFits
	}
	if aFits {
		return a.Capacity-remaining < b.Capacity-remaining
	}
	return a.Capacity > b.Capacity
}

// GenerateOptions proposes one allocation per strategy for the request.
// Returns nil when no room is available; the caller must treat that as
// "cannot allocate", not as a zero-room booking.
func GenerateOptions(req GuestRequest, rooms []Room) []AllocationOption {
	available := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Available && r.Capacity > 0 {
			available = append(available, r)
		}
	}
	if len(available) == 0 {
		return nil
	}

	return []AllocationOption{
		{Strategy: StrategyComfort, Allocations: comfortAllocate(req, available)},
		{Strategy: StrategyPrice, Allocations: greedyConsume(req.GuestCount, available, priceLess)},
		{Strategy: StrategyMinRooms, Allocations: greedyConsume(req.GuestCount, available, minRoomsLess)},
	}
}

// comfortAllocate prefers a single room of the party's natural type before
// falling back to the comfort-ordered greedy pass.
func comfortAllocate(req GuestRequest, available []Room) []RoomAllocation {
	var preferredType string
	switch {
	case req.GuestType == GuestTypeCouple && req.GuestCount <= 2:
		preferredType = "Couple"
	case req.GuestType == GuestTypeFamily && req.GuestCount <= 6:
		preferredType = "Family"
	}

	if preferredType != "" {
		if room, ok := bestSingleRoom(available, preferredType, req.GuestCount); ok {
			return []RoomAllocation{newAllocation(room, req.GuestCount)}
		}
	}
	return greedyConsume(req.GuestCount, available, comfortLess)
}

// bestSingleRoom picks the tightest-fitting, then cheapest, room of the given
// type that can host the whole party on its own.
func bestSingleRoom(rooms []Room, roomType string, guests int) (Room, bool) {
	var best Room
	found := false
	for _, r := range rooms {
		if r.Type != roomType || r.Capacity < guests {
			continue
		}
		if !found ||
			r.Capacity < best.Capacity ||
			(r.Capacity == best.Capacity && r.Tariff < best.Tariff) {
			best = r
			found = true
		}
	}
	return best, found
}

// greedyConsume assigns guests room by room, re-ranking the remaining rooms
// against the remaining guest count on every pick. When inventory runs out
// with guests left over, the remainder is packed into the last room as
// overflow so the option still covers the whole party.
func greedyConsume(guests int, available []Room, less roomLess) []RoomAllocation {
	pool := make([]Room, len(available))
	copy(pool, available)

	remaining := guests
	var out []RoomAllocation
	for remaining > 0 && len(pool) > 0 {
		sort.SliceStable(pool, func(i, j int) bool {
			return less(pool[i], pool[j], remaining)
		})
		room := pool[0]
		pool = pool[1:]

		take := room.Capacity
		if take > remaining {
			take = remaining
		}
		out = append(out, newAllocation(room, take))
		remaining -= take
	}
	if remaining > 0 && len(out) > 0 {
		out[len(out)-1].GuestCount += remaining
	}
	return out
}

func newAllocation(room Room, guests int) RoomAllocation {
	return RoomAllocation{
		Ref:        Draft(),
		ID:         uuid.NewString(),
		RoomID:     room.ID,
		RoomNumber: room.Number,
		RoomType:   room.Type,
		Capacity:   room.Capacity,
		Tariff:     room.Tariff,
		GuestCount: guests,
	}
}
