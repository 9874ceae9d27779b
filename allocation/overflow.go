package allocation

import "errors"

// ExtraPersonChargeName is the catalog entry the extra-person surcharge rate
// is sourced from. The rate itself always comes from the catalog; it is never
// fabricated here.
const ExtraPersonChargeName = "Extra Person"

// ErrExtraPersonRateMissing signals that guests overflow their rooms but the
// catalog carries no "Extra Person" entry, so no surcharge can be derived.
var ErrExtraPersonRateMissing = errors.New("extra_person_rate_missing")

// Overflow is the derived extra-person surcharge input.
type Overflow struct {
	ExtraGuestCount int     `json:"extraGuestCount"`
	ChargeQuantity  int     `json:"chargeQuantity"` // person-nights
	Rate            float64 `json:"rate"`
}

// OverflowMemo remembers the last (extraGuests, nights) pair and its result
// so a caller can skip rewriting the charge list when nothing changed. The
// charge list feeds back into charge-list mutation, so the guard breaks that
// loop. One memo belongs to one edit session; the zero value means "never
// computed".
type OverflowMemo struct {
	extraGuests int
	nights      int
	last        Overflow
	valid       bool
}

// ExtraGuests sums the per-room overflow across an allocation.
func ExtraGuests(allocations []RoomAllocation) int {
	total := 0
	for _, a := range allocations {
		total += a.ExtraGuests()
	}
	return total
}

// ComputeOverflow derives the extra-person surcharge for an allocation and
// stay length. The returned memo replaces the one passed in; changed reports
// whether the inputs differ from the previous computation — when false the
// caller should leave the charge list alone.
func ComputeOverflow(allocations []RoomAllocation, nights int, catalog []CatalogItem, memo OverflowMemo) (ov Overflow, next OverflowMemo, changed bool, err error) {
	extra := ExtraGuests(allocations)

	if memo.valid && memo.extraGuests == extra && memo.nights == nights {
		return memo.last, memo, false, nil
	}

	if extra > 0 {
		item, ok := FindCatalogItem(catalog, ExtraPersonChargeName)
		if !ok {
			return Overflow{}, memo, false, ErrExtraPersonRateMissing
		}
		ov = Overflow{
			ExtraGuestCount: extra,
			ChargeQuantity:  extra * nights,
			Rate:            item.DefaultRate,
		}
	}

	next = OverflowMemo{extraGuests: extra, nights: nights, last: ov, valid: true}
	return ov, next, true, nil
}
