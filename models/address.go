package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Phone       string    `gorm:"not null" json:"phone"`
	AddressLine string    `gorm:"not null" json:"addressLine"`
	City        string    `gorm:"not null" json:"city"`
	Pincode     string    `gorm:"not null" json:"pincode"`
	IsDefault   bool      `gorm:"default:false" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
}
