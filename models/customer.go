package models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"size:255;index"`
	Phone    string `json:"phone" gorm:"size:50"`
}
