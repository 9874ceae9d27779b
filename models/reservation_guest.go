package models

import (
	"gorm.io/gorm"
)

type ReservationGuest struct {
	gorm.Model

	PublicID      string `gorm:"column:public_id;uniqueIndex;size:64" json:"publicId"`
	ReservationID uint   `gorm:"index;column:reservation_id" json:"reservation_id"`

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"size:255"`
	Phone    string `json:"phone" gorm:"size:50"`
	Primary  bool   `gorm:"column:is_primary" json:"primary"`
}
