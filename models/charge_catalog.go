package models

import (
	"time"

	"gorm.io/gorm"
)

// ChargeCatalogItem is a master charge definition (kitchen use, conference
// hall, the extra-person surcharge, ...). Reservations copy the rate at the
// time the charge is added; editing the catalog never rewrites history.
type ChargeCatalogItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"uniqueIndex;size:255" json:"name"`
	DefaultRate float64 `gorm:"column:default_rate" json:"defaultRate"`
	RateType    string  `gorm:"column:rate_type;size:32" json:"rateType"` // per_unit, per_day, per_person_night
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
