package models

import (
	"time"

	"github.com/google/uuid"
)

// ReminderLog records one attempt to notify a customer about an
// upcoming booking.
type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`

	Message      string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // sms or whatsapp
	Status       string `gorm:"type:varchar(20)"` // sent or failed
	ErrorMessage string `gorm:"type:text"`

	SentAt time.Time
}
