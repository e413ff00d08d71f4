package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the closed set of lifecycle states for a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled:
		return true
	case BookingPending, BookingConfirmed, BookingInProgress:
		return false
	}
	return false
}

// CanTransitionTo reports whether a booking may move from s to next.
// The forward path is pending -> confirmed -> in_progress -> completed;
// cancellation is reachable from any non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if next == BookingCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case BookingPending:
		return next == BookingConfirmed
	case BookingConfirmed:
		return next == BookingInProgress
	case BookingInProgress:
		return next == BookingCompleted
	case BookingCompleted, BookingCancelled:
		return false
	}
	return false
}

// UUIDList stores a slice of uuids as a JSON column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for UUIDList")
}

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	AddressID uuid.UUID `gorm:"type:uuid;not null" json:"addressId"`

	Items []BookingItem `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"items"`

	ScheduledDate string `gorm:"index;not null" json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string `gorm:"not null" json:"scheduledTime"`

	// Frozen at creation time; later catalog price changes never touch it.
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentID *string       `json:"paymentId,omitempty"`
	Notes     string        `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingItem is one requested line of a booking: a service, a quantity
// and the add-on ids the customer selected.
type BookingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"serviceId"`
	Quantity  int       `gorm:"default:1" json:"quantity"`

	SelectedAddOns UUIDList `gorm:"type:text" json:"selectedAddons"`
}
