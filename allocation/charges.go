package allocation

import (
	"fmt"

	"github.com/google/uuid"
)

// ChargeOrigin distinguishes user-managed charges from the derived
// extra-person charge. Only the overflow calculator may touch auto charges;
// edit and remove operations dispatch on the origin in one place instead of
// comparing ids all over.
type ChargeOrigin int

const (
	ChargeManual ChargeOrigin = iota
	ChargeAuto
)

// AutoChargeID is the well-known id the derived extra-person charge is stored
// under. It exists for the persistence store's upsert key, not for guarding
// edits; edits are guarded by origin.
const AutoChargeID = "extra-person-auto"

// SpecialCharge is one additional line item on a reservation. MasterID is
// empty for ad-hoc custom charges.
type SpecialCharge struct {
	Ref         Ref     `json:"-"`
	ID          string  `json:"id"`
	MasterID    string  `json:"masterId"`
	Name        string  `json:"name"`
	Rate        float64 `json:"rate"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`

	origin ChargeOrigin
}

func (c SpecialCharge) Origin() ChargeOrigin { return c.origin }
func (c SpecialCharge) IsAuto() bool         { return c.origin == ChargeAuto }

// Total is the line amount before any discount.
func (c SpecialCharge) Total() float64 { return c.Rate * float64(c.Quantity) }

// NewCatalogCharge builds a manual charge from a catalog entry.
func NewCatalogCharge(item CatalogItem) SpecialCharge {
	return SpecialCharge{
		Ref:      Draft(),
		ID:       uuid.NewString(),
		MasterID: item.ID,
		Name:     item.Name,
		Rate:     item.DefaultRate,
		Quantity: 1,
		origin:   ChargeManual,
	}
}

// NewCustomCharge builds an empty ad-hoc charge awaiting manual edit.
func NewCustomCharge() SpecialCharge {
	return SpecialCharge{
		Ref:      Draft(),
		ID:       uuid.NewString(),
		Quantity: 1,
		origin:   ChargeManual,
	}
}

// RestoreCharge rebuilds a charge loaded from the persistence store.
func RestoreCharge(storeID, masterID, name string, rate float64, quantity int, description string, auto bool) SpecialCharge {
	origin := ChargeManual
	if auto {
		origin = ChargeAuto
	}
	return SpecialCharge{
		Ref:         Persisted(storeID),
		ID:          storeID,
		MasterID:    masterID,
		Name:        name,
		Rate:        rate,
		Quantity:    quantity,
		Description: description,
		origin:      origin,
	}
}

// UpsertAutoCharge reflects the current overflow in the charge list: with
// overflow present the single auto charge is inserted or refreshed in place,
// with overflow gone it is dropped. Calling it twice with the same overflow
// is a no-op.
func UpsertAutoCharge(charges []SpecialCharge, ov Overflow) []SpecialCharge {
	if ov.ExtraGuestCount == 0 {
		return dropAutoCharges(charges)
	}

	description := fmt.Sprintf("%d extra guest(s), %d person-night(s)", ov.ExtraGuestCount, ov.ChargeQuantity)
	out := make([]SpecialCharge, 0, len(charges)+1)
	replaced := false
	for _, c := range charges {
		if c.IsAuto() {
			if !replaced {
				c.Rate = ov.Rate
				c.Quantity = ov.ChargeQuantity
				c.Description = description
				out = append(out, c)
				replaced = true
			}
			continue
		}
		out = append(out, c)
	}
	if !replaced {
		out = append(out, SpecialCharge{
			Ref:         Draft(),
			ID:          AutoChargeID,
			Name:        ExtraPersonChargeName,
			Rate:        ov.Rate,
			Quantity:    ov.ChargeQuantity,
			Description: description,
			origin:      ChargeAuto,
		})
	}
	return out
}

func dropAutoCharges(charges []SpecialCharge) []SpecialCharge {
	out := make([]SpecialCharge, 0, len(charges))
	for _, c := range charges {
		if !c.IsAuto() {
			out = append(out, c)
		}
	}
	return out
}

// AddQuickCharge adds a catalog charge, or bumps the quantity of an existing
// manual charge that already references the same catalog entry.
func AddQuickCharge(charges []SpecialCharge, item CatalogItem) []SpecialCharge {
	out := append([]SpecialCharge(nil), charges...)
	for i, c := range out {
		if !c.IsAuto() && c.MasterID != "" && c.MasterID == item.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, NewCatalogCharge(item))
}

// AddCustomCharge appends an empty ad-hoc charge.
func AddCustomCharge(charges []SpecialCharge) []SpecialCharge {
	return append(append([]SpecialCharge(nil), charges...), NewCustomCharge())
}

// ChargePatch carries the fields a user may edit on a manual charge.
type ChargePatch struct {
	Name        *string  `json:"name"`
	Rate        *float64 `json:"rate"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
}

// editableIndex is the single dispatch point for user edits: it resolves a
// charge id to an index, refusing auto charges. Returns -1 when the charge is
// missing or not user-editable.
func editableIndex(charges []SpecialCharge, id string) int {
	for i, c := range charges {
		if c.ID == id {
			if c.IsAuto() {
				return -1
			}
			return i
		}
	}
	return -1
}

// UpdateCharge applies a patch to a manual charge. Editing the auto charge is
// a no-op.
func UpdateCharge(charges []SpecialCharge, id string, patch ChargePatch) []SpecialCharge {
	i := editableIndex(charges, id)
	if i < 0 {
		return charges
	}
	out := append([]SpecialCharge(nil), charges...)
	if patch.Name != nil {
		out[i].Name = *patch.Name
	}
	if patch.Rate != nil {
		out[i].Rate = *patch.Rate
	}
	if patch.Quantity != nil {
		out[i].Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		out[i].Description = *patch.Description
	}
	return out
}

// RemoveCharge deletes a manual charge. Removing the auto charge is a no-op;
// it only disappears when the overflow does.
func RemoveCharge(charges []SpecialCharge, id string) []SpecialCharge {
	i := editableIndex(charges, id)
	if i < 0 {
		return charges
	}
	out := append([]SpecialCharge(nil), charges[:i]...)
	return append(out, charges[i+1:]...)
}
