package services

import (
	"fmt"
	"strconv"
	"time"

	"guesthouse-backend/allocation"
	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// RoomService is the room inventory provider: it answers which rooms are free
// for a date range.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// reservation statuses that hold a room
var blockingStatuses = []string{"Confirmed", "Checked-In"}

// busyRoomIDs returns the ids of rooms held by a reservation overlapping the
// range. excludeReservationID lets edit mode keep the rooms the reservation
// already holds selectable; pass 0 otherwise.
func (s *RoomService) busyRoomIDs(checkIn, checkOut time.Time, excludeReservationID uint) (map[uint]bool, error) {
	var ids []uint
	q := s.DB.
		Table("reservation_rooms").
		Select("reservation_rooms.room_id").
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservation_rooms.deleted_at IS NULL AND reservations.deleted_at IS NULL").
		Where("reservations.status IN ?", blockingStatuses).
		Where("reservations.check_in < ? AND reservations.check_out > ?", checkOut, checkIn)
	if excludeReservationID != 0 {
		q = q.Where("reservations.id <> ?", excludeReservationID)
	}
	if err := q.Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("failed to query held rooms: %w", err)
	}

	busy := make(map[uint]bool, len(ids))
	for _, id := range ids {
		busy[id] = true
	}
	return busy, nil
}

// GetRoomsWithAvailability returns every room with its availability flag
// computed for the exact range.
func (s *RoomService) GetRoomsWithAvailability(checkIn, checkOut time.Time, excludeReservationID uint) ([]allocation.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	busy, err := s.busyRoomIDs(checkIn, checkOut, excludeReservationID)
	if err != nil {
		return nil, err
	}

	out := make([]allocation.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, allocation.Room{
			ID:        strconv.FormatUint(uint64(r.ID), 10),
			Number:    r.RoomNumber,
			Type:      r.Type,
			Capacity:  r.MaxOccupancy,
			Tariff:    r.Tariff,
			Available: !busy[r.ID] && r.Status != "Maintenance",
		})
	}
	return out, nil
}

// SetRoomStatus flips a room's status (Reserved/Available). Best-effort
// bookkeeping; the availability query is authoritative.
func (s *RoomService) SetRoomStatus(roomID uint, status string) error {
	return s.DB.Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}
