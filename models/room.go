package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	// Nullable so an insert without a valid FK doesn't try to write 0.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Tariff       float64 `json:"tariff" gorm:"column:tariff"` // per night
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
