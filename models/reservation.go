package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	CustomerID    uint   `gorm:"index;column:customer_id" json:"customer_id"`
	Status        string `gorm:"column:status;size:64" json:"status,omitempty"`

	CheckIn  *time.Time `gorm:"column:check_in" json:"check_in,omitempty"`
	CheckOut *time.Time `gorm:"column:check_out" json:"check_out,omitempty"`
	Nights   int        `gorm:"column:nights" json:"nights"`

	GuestCount int    `gorm:"column:guest_count" json:"guest_count"`
	GuestType  string `gorm:"column:guest_type;size:32" json:"guest_type"`
	Strategy   string `gorm:"column:strategy;size:32" json:"strategy,omitempty"`

	DiscountType  string  `gorm:"column:discount_type;size:32" json:"discount_type"`
	DiscountValue float64 `gorm:"column:discount_value" json:"discount_value"`

	RoomTariffTotal     float64 `gorm:"column:room_tariff_total" json:"room_tariff_total"`
	SpecialChargesTotal float64 `gorm:"column:special_charges_total" json:"special_charges_total"`
	Subtotal            float64 `gorm:"column:subtotal" json:"subtotal"`
	DiscountAmount      float64 `gorm:"column:discount_amount" json:"discount_amount"`
	Total               float64 `gorm:"column:total" json:"total"`

	// Snapshot of the allocation option the booker picked, kept for audit.
	OptionSnapshot datatypes.JSON `gorm:"column:option_snapshot" json:"optionSnapshot,omitempty"`

	Customer Customer            `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Rooms    []ReservationRoom   `gorm:"foreignKey:ReservationID" json:"rooms"`
	Guests   []ReservationGuest  `gorm:"foreignKey:ReservationID" json:"guests"`
	Charges  []ReservationCharge `gorm:"foreignKey:ReservationID" json:"charges"`
}
