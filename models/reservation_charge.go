package models

import (
	"gorm.io/gorm"
)

// ReservationCharge is one special-charge line item on a reservation.
// AutoGenerated marks the derived extra-person charge; exactly one such row
// may exist per reservation and only the overflow calculator writes it.
type ReservationCharge struct {
	gorm.Model

	PublicID      string `gorm:"column:public_id;uniqueIndex:idx_res_charge,priority:2;size:64" json:"publicId"`
	ReservationID uint   `gorm:"column:reservation_id;uniqueIndex:idx_res_charge,priority:1" json:"reservation_id"`

	MasterID      string  `gorm:"column:master_id;size:64" json:"masterId"` // catalog ref, empty for ad-hoc
	Name          string  `gorm:"size:255" json:"name"`
	Rate          float64 `json:"rate"`
	Quantity      int     `json:"quantity"`
	Description   string  `gorm:"type:text" json:"description"`
	AutoGenerated bool    `gorm:"column:auto_generated" json:"autoGenerated"`
}
