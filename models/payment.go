package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentTransaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"bookingId,omitempty"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`

	Amount    float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency  string  `gorm:"type:varchar(8);default:'INR'" json:"currency"`
	Gateway   string  `gorm:"type:varchar(20);not null" json:"gateway"` // razorpay or stripe
	SessionID string  `json:"sessionId,omitempty"`

	PaymentStatus string `gorm:"type:varchar(20);default:'initiated'" json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
}
