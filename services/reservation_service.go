package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"guesthouse-backend/allocation"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReservationService drives the engine: quoting allocation options, creating
// reservations and reconciling edits into store operations.
type ReservationService struct {
	DB      *gorm.DB
	Rooms   *RoomService
	Catalog *CatalogService
}

func NewReservationService(db *gorm.DB, rooms *RoomService, catalog *CatalogService) *ReservationService {
	return &ReservationService{DB: db, Rooms: rooms, Catalog: catalog}
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

type RoomSelectionInput struct {
	ID         string  `json:"id"` // persisted public id; empty for new rows
	RoomID     uint    `json:"roomId" binding:"required"`
	RoomNumber string  `json:"roomNumber"`
	RoomType   string  `json:"roomType"`
	Capacity   int     `json:"capacity"`
	Tariff     float64 `json:"tariff"`
	GuestCount int     `json:"guestCount" binding:"required,min=1"`
}

type GuestInput struct {
	ID       string `json:"id"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Primary  bool   `json:"primary"`
}

type ChargeInput struct {
	ID          string  `json:"id"`
	MasterID    string  `json:"masterId"`
	Name        string  `json:"name"`
	Rate        float64 `json:"rate"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Auto        bool    `json:"autoGenerated"`
}

type ReservationInput struct {
	CustomerID    uint                 `json:"customerId" binding:"required"`
	CheckIn       string               `json:"checkIn" binding:"required"`
	CheckOut      string               `json:"checkOut" binding:"required"`
	GuestCount    int                  `json:"guestCount" binding:"required,min=1"`
	GuestType     string               `json:"guestType"`
	Strategy      string               `json:"strategy"`
	DiscountType  string               `json:"discountType"`
	DiscountValue float64              `json:"discountValue"`
	Rooms         []RoomSelectionInput `json:"rooms" binding:"required"`
	Guests        []GuestInput         `json:"guests"`
	Charges       []ChargeInput        `json:"charges"`
}

type QuoteInput struct {
	CheckIn       string        `json:"checkIn" binding:"required"`
	CheckOut      string        `json:"checkOut" binding:"required"`
	GuestCount    int           `json:"guestCount" binding:"required,min=1"`
	GuestType     string        `json:"guestType"`
	DiscountType  string        `json:"discountType"`
	DiscountValue float64       `json:"discountValue"`
	ReservationID uint          `json:"reservationId"` // edit mode: keep held rooms selectable
	Charges       []ChargeInput `json:"charges"`
}

// ---------------------------------------------------------------------------
// Outputs
// ---------------------------------------------------------------------------

// ChargeView is the charge list as the frontend sees it; the engine keeps the
// auto flag unexported.
type ChargeView struct {
	ID          string  `json:"id"`
	MasterID    string  `json:"masterId"`
	Name        string  `json:"name"`
	Rate        float64 `json:"rate"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Auto        bool    `json:"autoGenerated"`
	Total       float64 `json:"total"`
}

func chargeViews(charges []allocation.SpecialCharge) []ChargeView {
	out := make([]ChargeView, 0, len(charges))
	for _, c := range charges {
		out = append(out, ChargeView{
			ID:          c.ID,
			MasterID:    c.MasterID,
			Name:        c.Name,
			Rate:        c.Rate,
			Quantity:    c.Quantity,
			Description: c.Description,
			Auto:        c.IsAuto(),
			Total:       c.Total(),
		})
	}
	return out
}

// OptionQuote is one priced allocation proposal.
type OptionQuote struct {
	Option   allocation.AllocationOption `json:"option"`
	Overflow allocation.Overflow         `json:"overflow"`
	Charges  []ChargeView                `json:"charges"`
	Pricing  allocation.PricingBreakdown `json:"pricing"`
	Warnings []string                    `json:"warnings,omitempty"`
}

type QuoteResult struct {
	Nights  int           `json:"nights"`
	Options []OptionQuote `json:"options"`
}

// OpFailure records one failed store operation during delta application.
type OpFailure struct {
	Category string `json:"category"` // rooms | guests | charges | header
	Action   string `json:"action"`   // create | update | delete
	EntityID string `json:"entityId"`
	Error    string `json:"error"`
}

// ReconcileReport aggregates the outcome of applying a delta. Operations are
// independent: failures do not roll back what already succeeded.
type ReconcileReport struct {
	Attempted int         `json:"attempted"`
	Failed    []OpFailure `json:"failed,omitempty"`
}

func (r *ReconcileReport) fail(category, action, id string, err error) {
	log.Printf("warning: %s %s %s failed: %v", category, action, id, err)
	r.Failed = append(r.Failed, OpFailure{Category: category, Action: action, EntityID: id, Error: err.Error()})
}

func (r *ReconcileReport) FullyApplied() bool { return len(r.Failed) == 0 }

// ---------------------------------------------------------------------------
// Input -> engine mapping
// ---------------------------------------------------------------------------

func refFor(id string) allocation.Ref {
	if id == "" {
		return allocation.Draft()
	}
	return allocation.Persisted(id)
}

func clientID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func engineRooms(in []RoomSelectionInput) []allocation.RoomAllocation {
	out := make([]allocation.RoomAllocation, 0, len(in))
	for _, r := range in {
		out = append(out, allocation.RoomAllocation{
			Ref:        refFor(r.ID),
			ID:         clientID(r.ID),
			RoomID:     strconv.FormatUint(uint64(r.RoomID), 10),
			RoomNumber: r.RoomNumber,
			RoomType:   r.RoomType,
			Capacity:   r.Capacity,
			Tariff:     r.Tariff,
			GuestCount: r.GuestCount,
		})
	}
	return out
}

func engineGuests(in []GuestInput) []allocation.Guest {
	out := make([]allocation.Guest, 0, len(in))
	for _, g := range in {
		out = append(out, allocation.Guest{
			Ref:      refFor(g.ID),
			ID:       clientID(g.ID),
			FullName: strings.TrimSpace(g.FullName),
			Email:    strings.TrimSpace(g.Email),
			Phone:    strings.TrimSpace(g.Phone),
			Primary:  g.Primary,
		})
	}
	return out
}

// engineManualCharges maps submitted charges to editable manual charges. A
// row is dropped when the client flags it auto or when its id resolves to a
// persisted auto row: the auto charge is always rederived server-side, never
// taken from input.
func engineManualCharges(in []ChargeInput, autoIDs map[string]bool) ([]allocation.SpecialCharge, error) {
	out := make([]allocation.SpecialCharge, 0, len(in))
	for _, c := range in {
		if c.Auto || autoIDs[c.ID] {
			continue
		}
		if c.Quantity < 1 {
			return nil, fmt.Errorf("validation: charge %q has non-positive quantity", c.Name)
		}
		out = append(out, allocation.RestoreCharge(clientID(c.ID), c.MasterID, strings.TrimSpace(c.Name), c.Rate, c.Quantity, c.Description, false))
	}
	return out, nil
}

// persistedAutoIDs collects the public ids of auto-generated charge rows so
// submitted charges are classified against the store, not the client flag.
func persistedAutoIDs(rows []models.ReservationCharge) map[string]bool {
	ids := make(map[string]bool, 1)
	for _, row := range rows {
		if row.AutoGenerated {
			ids[row.PublicID] = true
		}
	}
	return ids
}

func parseRequest(checkIn, checkOut string, guestCount int, guestType string) (allocation.GuestRequest, error) {
	ci, err := utils.ParseDate(checkIn)
	if err != nil {
		return allocation.GuestRequest{}, fmt.Errorf("validation: invalid check-in date: %v", err)
	}
	co, err := utils.ParseDate(checkOut)
	if err != nil {
		return allocation.GuestRequest{}, fmt.Errorf("validation: invalid check-out date: %v", err)
	}
	req := allocation.GuestRequest{
		GuestCount: guestCount,
		GuestType:  allocation.GuestType(guestType),
		CheckIn:    ci,
		CheckOut:   co,
	}
	if err := req.Validate(); err != nil {
		return allocation.GuestRequest{}, err
	}
	return req, nil
}

func discountFrom(discountType string, value float64) allocation.Discount {
	switch allocation.DiscountType(discountType) {
	case allocation.DiscountPercentage:
		return allocation.Discount{Type: allocation.DiscountPercentage, Value: value}
	case allocation.DiscountAmount:
		return allocation.Discount{Type: allocation.DiscountAmount, Value: value}
	default:
		return allocation.Discount{Type: allocation.DiscountNone}
	}
}

// withAutoCharge recomputes the overflow for the allocation and reflects it
// in the charge list. A missing "Extra Person" catalog entry degrades to "no
// surcharge" with a warning instead of failing the request.
func withAutoCharge(allocs []allocation.RoomAllocation, nights int, catalog []allocation.CatalogItem, charges []allocation.SpecialCharge) ([]allocation.SpecialCharge, allocation.Overflow, []string) {
	ov, _, _, err := allocation.ComputeOverflow(allocs, nights, catalog, allocation.OverflowMemo{})
	if err != nil {
		if errors.Is(err, allocation.ErrExtraPersonRateMissing) {
			log.Printf("warning: %d guest(s) overflow their rooms but the catalog has no %q entry; no surcharge applied",
				allocation.ExtraGuests(allocs), allocation.ExtraPersonChargeName)
			return allocation.UpsertAutoCharge(charges, allocation.Overflow{}), allocation.Overflow{},
				[]string{"extra-person surcharge unavailable: no catalog rate"}
		}
		return charges, allocation.Overflow{}, []string{err.Error()}
	}
	return allocation.UpsertAutoCharge(charges, ov), ov, nil
}

// ---------------------------------------------------------------------------
// Quote
// ---------------------------------------------------------------------------

// Quote proposes the three strategy options for a request and prices each of
// them against the submitted manual charges and discount.
func (s *ReservationService) Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	req, err := parseRequest(in.CheckIn, in.CheckOut, in.GuestCount, in.GuestType)
	if err != nil {
		return nil, err
	}
	nights := req.Nights()

	rooms, err := s.Rooms.GetRoomsWithAvailability(req.CheckIn, req.CheckOut, in.ReservationID)
	if err != nil {
		return nil, err
	}

	options := allocation.GenerateOptions(req, rooms)
	if len(options) == 0 {
		return nil, errors.New("no_rooms_available")
	}

	catalog, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var autoIDs map[string]bool
	if in.ReservationID != 0 {
		if existing, err := s.GetByID(in.ReservationID); err == nil {
			autoIDs = persistedAutoIDs(existing.Charges)
		}
	}
	manual, err := engineManualCharges(in.Charges, autoIDs)
	if err != nil {
		return nil, err
	}
	discount := discountFrom(in.DiscountType, in.DiscountValue)

	result := &QuoteResult{Nights: nights}
	for _, opt := range options {
		charges, ov, warnings := withAutoCharge(opt.Allocations, nights, catalog, manual)
		if err := opt.Validate(req); err != nil {
			warnings = append(warnings, err.Error())
		}
		result.Options = append(result.Options, OptionQuote{
			Option:   opt,
			Overflow: ov,
			Charges:  chargeViews(charges),
			Pricing:  allocation.Price(opt.Allocations, charges, discount, nights),
			Warnings: warnings,
		})
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// Create persists a new reservation from a chosen option. Creation is
// all-or-nothing (one transaction); only edit-mode reconciliation applies
// operations independently.
func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	req, err := parseRequest(in.CheckIn, in.CheckOut, in.GuestCount, in.GuestType)
	if err != nil {
		return nil, err
	}
	nights := req.Nights()

	if len(in.Rooms) == 0 {
		return nil, errors.New("validation: no rooms selected")
	}
	allocs := engineRooms(in.Rooms)
	option := allocation.AllocationOption{Strategy: allocation.Strategy(in.Strategy), Allocations: allocs}
	if err := option.Validate(req); err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := s.DB.First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("validation: customer not found")
		}
		return nil, fmt.Errorf("db error checking customer: %w", err)
	}

	catalog, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	manual, err := engineManualCharges(in.Charges, nil)
	if err != nil {
		return nil, err
	}
	charges, _, _ := withAutoCharge(allocs, nights, catalog, manual)
	discount := discountFrom(in.DiscountType, in.DiscountValue)
	pricing := allocation.Price(allocs, charges, discount, nights)

	snapshot, _ := json.Marshal(option) // best-effort audit copy

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		reservation := models.Reservation{
			CustomerID:          in.CustomerID,
			Status:              "Confirmed",
			CheckIn:             &req.CheckIn,
			CheckOut:            &req.CheckOut,
			Nights:              nights,
			GuestCount:          in.GuestCount,
			GuestType:           string(req.GuestType),
			Strategy:            in.Strategy,
			DiscountType:        string(discount.Type),
			DiscountValue:       discount.Value,
			RoomTariffTotal:     pricing.RoomTariffTotal,
			SpecialChargesTotal: pricing.SpecialChargesTotal,
			Subtotal:            pricing.Subtotal,
			DiscountAmount:      pricing.Discount,
			Total:               pricing.Total,
			OptionSnapshot:      datatypes.JSON(snapshot),
		}

		// retry on reference collision
		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			code, gErr := utils.GenerateReferenceCode(8)
			if gErr != nil {
				return fmt.Errorf("failed to generate reference code: %w", gErr)
			}
			reservation.ReferenceCode = code
			createErr = tx.Create(&reservation).Error
			if createErr == nil {
				break
			}
			lc := strings.ToLower(createErr.Error())
			if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
				log.Printf("reference code collision (attempt %d) - retrying", attempt+1)
				reservation.ID = 0
				continue
			}
			return fmt.Errorf("failed to create reservation: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create reservation after retries: %w", createErr)
		}
		reservationID = reservation.ID

		for _, a := range allocs {
			row, rErr := roomRowFromAllocation(reservation.ID, a)
			if rErr != nil {
				return rErr
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create reservation room %s: %w", a.RoomNumber, err)
			}
			if err := tx.Model(&models.Room{}).Where("id = ?", row.RoomID).
				Update("status", "Reserved").Error; err != nil {
				return fmt.Errorf("failed to update room %d status: %w", row.RoomID, err)
			}
		}

		for _, g := range engineGuests(in.Guests) {
			row := guestRowFromEngine(reservation.ID, g)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create guest %s: %w", g.FullName, err)
			}
		}

		for _, c := range charges {
			row := chargeRowFromEngine(reservation.ID, c)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create charge %s: %w", c.Name, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(reservationID)
}

// ---------------------------------------------------------------------------
// Edit (reconcile)
// ---------------------------------------------------------------------------

// Edit reconciles an edited reservation against its persisted state and
// applies the resulting operations. Each operation is an independent store
// call: a failure partway through leaves the reservation partially updated
// and is reported, not rolled back.
func (s *ReservationService) Edit(ctx context.Context, reservationID uint, in ReservationInput) (*models.Reservation, *ReconcileReport, error) {
	req, err := parseRequest(in.CheckIn, in.CheckOut, in.GuestCount, in.GuestType)
	if err != nil {
		return nil, nil, err
	}
	nights := req.Nights()

	existing, err := s.GetByID(reservationID)
	if err != nil {
		return nil, nil, err
	}

	if len(in.Rooms) == 0 {
		return nil, nil, errors.New("validation: no rooms selected")
	}
	allocs := engineRooms(in.Rooms)
	option := allocation.AllocationOption{Strategy: allocation.Strategy(in.Strategy), Allocations: allocs}
	if err := option.Validate(req); err != nil {
		return nil, nil, err
	}

	catalog, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	manual, err := engineManualCharges(in.Charges, persistedAutoIDs(existing.Charges))
	if err != nil {
		return nil, nil, err
	}
	charges, _, _ := withAutoCharge(allocs, nights, catalog, manual)

	original := originalState(existing)
	current := allocation.ReservationState{
		Rooms:   allocs,
		Guests:  engineGuests(in.Guests),
		Charges: bindAutoCharge(original.Charges, charges),
	}

	delta := allocation.Reconcile(original, current)

	report := &ReconcileReport{}
	s.applyRoomDelta(reservationID, original, delta.Rooms, report)
	s.applyGuestDelta(reservationID, delta.Guests, report)
	s.applyChargeDelta(reservationID, delta.Charges, report)

	// header recomputation counts as one more operation
	discount := discountFrom(in.DiscountType, in.DiscountValue)
	pricing := allocation.Price(allocs, charges, discount, nights)
	report.Attempted++
	if err := s.DB.Model(&models.Reservation{}).Where("id = ?", reservationID).
		Updates(map[string]interface{}{
			"customer_id":           in.CustomerID,
			"check_in":              req.CheckIn,
			"check_out":             req.CheckOut,
			"nights":                nights,
			"guest_count":           in.GuestCount,
			"guest_type":            string(req.GuestType),
			"strategy":              in.Strategy,
			"discount_type":         string(discount.Type),
			"discount_value":        discount.Value,
			"room_tariff_total":     pricing.RoomTariffTotal,
			"special_charges_total": pricing.SpecialChargesTotal,
			"subtotal":              pricing.Subtotal,
			"discount_amount":       pricing.Discount,
			"total":                 pricing.Total,
		}).Error; err != nil {
		report.fail("header", "update", strconv.FormatUint(uint64(reservationID), 10), err)
	}

	updated, err := s.GetByID(reservationID)
	if err != nil {
		return nil, report, err
	}
	return updated, report, nil
}

// originalState rebuilds the engine's view of the persisted reservation.
func originalState(r *models.Reservation) allocation.ReservationState {
	var state allocation.ReservationState
	for _, row := range r.Rooms {
		state.Rooms = append(state.Rooms, allocation.RoomAllocation{
			Ref:        allocation.Persisted(row.PublicID),
			ID:         row.PublicID,
			RoomID:     strconv.FormatUint(uint64(row.RoomID), 10),
			RoomNumber: row.RoomNumber,
			RoomType:   row.RoomType,
			Capacity:   row.Capacity,
			Tariff:     row.Tariff,
			GuestCount: row.GuestCount,
		})
	}
	for _, row := range r.Guests {
		state.Guests = append(state.Guests, allocation.Guest{
			Ref:      allocation.Persisted(row.PublicID),
			ID:       row.PublicID,
			FullName: row.FullName,
			Email:    row.Email,
			Phone:    row.Phone,
			Primary:  row.Primary,
		})
	}
	for _, row := range r.Charges {
		state.Charges = append(state.Charges,
			allocation.RestoreCharge(row.PublicID, row.MasterID, row.Name, row.Rate, row.Quantity, row.Description, row.AutoGenerated))
	}
	return state
}

// bindAutoCharge rebinds the rederived auto charge to the persisted auto row
// if one exists, so the reconciler updates it in place instead of replacing
// it on every edit.
func bindAutoCharge(original, current []allocation.SpecialCharge) []allocation.SpecialCharge {
	var persisted *allocation.SpecialCharge
	for i := range original {
		if original[i].IsAuto() {
			persisted = &original[i]
			break
		}
	}
	if persisted == nil {
		return current
	}
	out := append([]allocation.SpecialCharge(nil), current...)
	for i := range out {
		if out[i].IsAuto() {
			out[i].Ref = persisted.Ref
			out[i].ID = persisted.ID
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Delta application (per-operation, no cross-entity transaction)
// ---------------------------------------------------------------------------

func roomRowFromAllocation(reservationID uint, a allocation.RoomAllocation) (models.ReservationRoom, error) {
	roomID, err := strconv.ParseUint(a.RoomID, 10, 64)
	if err != nil {
		return models.ReservationRoom{}, fmt.Errorf("validation: invalid room id %q", a.RoomID)
	}
	publicID := a.ID
	if publicID == "" || a.Ref.IsPersisted() {
		// replaces mint a fresh key; the old soft-deleted row keeps its own
		publicID = uuid.NewString()
	}
	return models.ReservationRoom{
		PublicID:      publicID,
		ReservationID: reservationID,
		RoomID:        uint(roomID),
		RoomNumber:    a.RoomNumber,
		RoomType:      a.RoomType,
		Capacity:      a.Capacity,
		Tariff:        a.Tariff,
		GuestCount:    a.GuestCount,
		Status:        "Reserved",
	}, nil
}

func guestRowFromEngine(reservationID uint, g allocation.Guest) models.ReservationGuest {
	publicID := g.ID
	if publicID == "" || g.Ref.IsPersisted() {
		publicID = uuid.NewString()
	}
	return models.ReservationGuest{
		PublicID:      publicID,
		ReservationID: reservationID,
		FullName:      g.FullName,
		Email:         g.Email,
		Phone:         g.Phone,
		Primary:       g.Primary,
	}
}

func chargeRowFromEngine(reservationID uint, c allocation.SpecialCharge) models.ReservationCharge {
	publicID := c.ID
	if publicID == "" || c.Ref.IsPersisted() || c.ID == allocation.AutoChargeID {
		publicID = uuid.NewString()
	}
	return models.ReservationCharge{
		PublicID:      publicID,
		ReservationID: reservationID,
		MasterID:      c.MasterID,
		Name:          c.Name,
		Rate:          c.Rate,
		Quantity:      c.Quantity,
		Description:   c.Description,
		AutoGenerated: c.IsAuto(),
	}
}

// applyRoomDelta submits room operations in delete, create, update order and
// keeps the rooms table status flags in step.
func (s *ReservationService) applyRoomDelta(reservationID uint, original allocation.ReservationState, delta allocation.Delta[allocation.RoomAllocation], report *ReconcileReport) {
	freedRooms := map[string]uint{}
	for _, a := range original.Rooms {
		if id, err := strconv.ParseUint(a.RoomID, 10, 64); err == nil {
			freedRooms[a.Ref.StoreID()] = uint(id)
		}
	}

	for _, publicID := range delta.Deletes {
		report.Attempted++
		if err := s.DB.Where("reservation_id = ? AND public_id = ?", reservationID, publicID).
			Delete(&models.ReservationRoom{}).Error; err != nil {
			report.fail("rooms", "delete", publicID, err)
			continue
		}
		if roomID, ok := freedRooms[publicID]; ok {
			if err := s.Rooms.SetRoomStatus(roomID, "Available"); err != nil {
				log.Printf("warning: failed to free room %d: %v", roomID, err)
			}
		}
	}

	for _, a := range delta.Creates {
		report.Attempted++
		row, err := roomRowFromAllocation(reservationID, a)
		if err != nil {
			report.fail("rooms", "create", a.ID, err)
			continue
		}
		if err := s.DB.Create(&row).Error; err != nil {
			report.fail("rooms", "create", a.ID, err)
			continue
		}
		if err := s.Rooms.SetRoomStatus(row.RoomID, "Reserved"); err != nil {
			log.Printf("warning: failed to reserve room %d: %v", row.RoomID, err)
		}
	}

	for _, a := range delta.Updates {
		report.Attempted++
		if err := s.DB.Model(&models.ReservationRoom{}).
			Where("reservation_id = ? AND public_id = ?", reservationID, a.Ref.StoreID()).
			Updates(map[string]interface{}{
				"guest_count": a.GuestCount,
				"tariff":      a.Tariff,
				"capacity":    a.Capacity,
				"room_type":   a.RoomType,
			}).Error; err != nil {
			report.fail("rooms", "update", a.Ref.StoreID(), err)
		}
	}
}

func (s *ReservationService) applyGuestDelta(reservationID uint, delta allocation.Delta[allocation.Guest], report *ReconcileReport) {
	for _, publicID := range delta.Deletes {
		report.Attempted++
		if err := s.DB.Where("reservation_id = ? AND public_id = ?", reservationID, publicID).
			Delete(&models.ReservationGuest{}).Error; err != nil {
			report.fail("guests", "delete", publicID, err)
		}
	}
	for _, g := range delta.Creates {
		report.Attempted++
		row := guestRowFromEngine(reservationID, g)
		if err := s.DB.Create(&row).Error; err != nil {
			report.fail("guests", "create", g.ID, err)
		}
	}
	for _, g := range delta.Updates {
		report.Attempted++
		if err := s.DB.Model(&models.ReservationGuest{}).
			Where("reservation_id = ? AND public_id = ?", reservationID, g.Ref.StoreID()).
			Updates(map[string]interface{}{
				"full_name":  g.FullName,
				"email":      g.Email,
				"phone":      g.Phone,
				"is_primary": g.Primary,
			}).Error; err != nil {
			report.fail("guests", "update", g.Ref.StoreID(), err)
		}
	}
}

func (s *ReservationService) applyChargeDelta(reservationID uint, delta allocation.Delta[allocation.SpecialCharge], report *ReconcileReport) {
	for _, publicID := range delta.Deletes {
		report.Attempted++
		if err := s.DB.Where("reservation_id = ? AND public_id = ?", reservationID, publicID).
			Delete(&models.ReservationCharge{}).Error; err != nil {
			report.fail("charges", "delete", publicID, err)
		}
	}
	for _, c := range delta.Creates {
		report.Attempted++
		row := chargeRowFromEngine(reservationID, c)
		if err := s.DB.Create(&row).Error; err != nil {
			report.fail("charges", "create", c.ID, err)
		}
	}
	for _, c := range delta.Updates {
		report.Attempted++
		if err := s.DB.Model(&models.ReservationCharge{}).
			Where("reservation_id = ? AND public_id = ?", reservationID, c.Ref.StoreID()).
			Updates(map[string]interface{}{
				"name":        c.Name,
				"rate":        c.Rate,
				"quantity":    c.Quantity,
				"description": c.Description,
				"master_id":   c.MasterID,
			}).Error; err != nil {
			report.fail("charges", "update", c.Ref.StoreID(), err)
		}
	}
}

// ---------------------------------------------------------------------------
// Read & cancel
// ---------------------------------------------------------------------------

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.
		Preload("Customer").
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Guests").
		Preload("Charges").
		First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	if r.Rooms == nil {
		r.Rooms = []models.ReservationRoom{}
	}
	return &r, nil
}

func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.
		Preload("Customer").
		Preload("Rooms").
		Preload("Guests").
		Preload("Charges").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.ReservationRoom{}
		}
	}
	return list, nil
}

// Cancel soft-deletes the reservation and frees its rooms.
func (s *ReservationService) Cancel(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.Preload("Rooms").First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("reservation_not_found")
			}
			return err
		}

		if err := tx.Model(&r).Update("status", "Cancelled").Error; err != nil {
			return err
		}
		for _, row := range r.Rooms {
			if err := tx.Model(&models.Room{}).Where("id = ?", row.RoomID).
				Update("status", "Available").Error; err != nil {
				return err
			}
		}
		return tx.Delete(&r).Error
	})
}
