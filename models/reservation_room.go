package models

import (
	"gorm.io/gorm"
)

// ReservationRoom is one room held by a reservation with the guests assigned
// to it. PublicID is the stable key the reconciler diffs by; room identity
// changes retire the row instead of updating it.
type ReservationRoom struct {
	gorm.Model

	PublicID      string `gorm:"column:public_id;uniqueIndex;size:64" json:"publicId"`
	ReservationID uint   `gorm:"index;column:reservation_id" json:"reservation_id"`
	RoomID        uint   `gorm:"index;column:room_id" json:"room_id"`

	RoomNumber string  `gorm:"column:room_number;size:50" json:"roomNumber"`
	RoomType   string  `gorm:"column:room_type;size:100" json:"roomType"`
	Capacity   int     `gorm:"column:capacity" json:"capacity"`
	Tariff     float64 `gorm:"column:tariff" json:"tariff"`
	GuestCount int     `gorm:"column:guest_count" json:"guestCount"`
	Status     string  `gorm:"column:status;size:64" json:"status,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
