// Package allocation holds the reservation engine: room allocation strategies,
// extra-person surcharge derivation, special-charge bookkeeping, pricing and
// the edit-mode reconciler. It is pure in-memory logic; persistence and HTTP
// live in services/ and controllers/.
package allocation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// GuestType classifies the party making a request.
type GuestType string

const (
	GuestTypeIndividual GuestType = "individual"
	GuestTypeCouple     GuestType = "couple"
	GuestTypeFamily     GuestType = "family"
	GuestTypeFriends    GuestType = "friends"
)

// Room is an immutable inventory snapshot for one date range, supplied by the
// room inventory provider.
type Room struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Type      string  `json:"type"`
	Capacity  int     `json:"capacity"`
	Tariff    float64 `json:"tariff"` // per night
	Available bool    `json:"available"`
}

// GuestRequest describes who wants to stay and when. Input only.
type GuestRequest struct {
	GuestCount int       `json:"guestCount"`
	GuestType  GuestType `json:"guestType"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
}

func (r GuestRequest) Validate() error {
	if r.GuestCount < 1 {
		return errors.New("validation: guest count must be at least 1")
	}
	if !r.CheckOut.After(r.CheckIn) {
		return errors.New("validation: check-out must be after check-in")
	}
	return nil
}

// Nights returns the stay length in nights, ceiling of the day difference,
// never negative. Callers must guard against zero-night stays before pricing.
func (r GuestRequest) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Ref tags an entity as either a local draft or a persisted record. It
// replaces id-shape guessing: the store id travels with the entity from the
// moment it is loaded, and drafts carry no store id at all.
type Ref struct {
	persisted bool
	id        string
}

// Draft returns the ref for an entity created during form editing.
func Draft() Ref { return Ref{} }

// Persisted returns the ref for an entity loaded from the store.
func Persisted(id string) Ref { return Ref{persisted: true, id: id} }

func (r Ref) IsPersisted() bool { return r.persisted }

// StoreID returns the persisted id, or "" for drafts.
func (r Ref) StoreID() string { return r.id }

// RoomAllocation assigns a number of guests to one room for the stay.
// GuestCount may exceed Capacity; the overflow is surcharged, not rejected.
type RoomAllocation struct {
	Ref        Ref     `json:"-"`
	ID         string  `json:"id"` // client key, unique within the option
	RoomID     string  `json:"roomId"`
	RoomNumber string  `json:"roomNumber"`
	RoomType   string  `json:"roomType"`
	Capacity   int     `json:"capacity"`
	Tariff     float64 `json:"tariff"`
	GuestCount int     `json:"guestCount"`
}

// ExtraGuests returns how many assigned guests exceed the room's capacity.
func (a RoomAllocation) ExtraGuests() int {
	if a.GuestCount > a.Capacity {
		return a.GuestCount - a.Capacity
	}
	return 0
}

// Guest is a reservation-scoped guest record as the reconciler sees it.
type Guest struct {
	Ref      Ref    `json:"-"`
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Primary  bool   `json:"primary"`
}

// AllocationOption is one complete proposed mapping of guests to rooms.
type AllocationOption struct {
	Strategy    Strategy         `json:"strategy"`
	Allocations []RoomAllocation `json:"allocations"`
}

// TotalGuests sums the guests assigned across the option's rooms.
func (o AllocationOption) TotalGuests() int {
	total := 0
	for _, a := range o.Allocations {
		total += a.GuestCount
	}
	return total
}

// Validate checks the option invariants against the originating request:
// every room appears once and the assigned guests add up to the request.
func (o AllocationOption) Validate(req GuestRequest) error {
	seen := make(map[string]bool, len(o.Allocations))
	for _, a := range o.Allocations {
		if a.GuestCount < 1 {
			return fmt.Errorf("validation: room %s has no guests assigned", a.RoomNumber)
		}
		if seen[a.RoomID] {
			return fmt.Errorf("validation: room %s selected twice", a.RoomNumber)
		}
		seen[a.RoomID] = true
	}
	if got := o.TotalGuests(); got != req.GuestCount {
		return fmt.Errorf("validation: allocated %d guests but request has %d", got, req.GuestCount)
	}
	return nil
}

// CatalogItem mirrors a master charge definition from the special-charge
// catalog.
type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DefaultRate float64 `json:"defaultRate"`
	RateType    string  `json:"rateType"`
}

// FindCatalogItem looks an entry up by name (exact match).
func FindCatalogItem(catalog []CatalogItem, name string) (CatalogItem, bool) {
	for _, item := range catalog {
		if item.Name == name {
			return item, true
		}
	}
	return CatalogItem{}, false
}
