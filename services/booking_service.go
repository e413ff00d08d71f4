// services/booking_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"homeserve-backend/models"
	"homeserve-backend/pricing"
)

// PersistFunc durably stores a booking. Implemented by the storage
// layer; injected so the assembler stays free of gorm.
type PersistFunc func(booking *models.Booking) error

// PersistenceError wraps a storage failure during booking creation. No
// partial state is retained: the booking was never stored.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "failed to persist booking: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CreateBookingInput carries the caller-supplied booking fields. The
// owning user comes from the authenticated identity, never the body.
type CreateBookingInput struct {
	UserID        uuid.UUID
	AddressID     uuid.UUID
	Items         []pricing.RequestedItem
	ScheduledDate string
	ScheduledTime string
	Notes         string
}

// CreateBooking quotes the requested items, freezes the total into a
// new pending booking and persists it. Pricing errors propagate
// unchanged; a persist failure surfaces as *PersistenceError and the
// caller observes no side effect. Each call generates a fresh id, so
// duplicate submissions create duplicate bookings.
func CreateBooking(input CreateBookingInput, lookup pricing.CatalogLookup, persist PersistFunc) (*models.Booking, error) {
	quote, err := pricing.ComputeQuote(input.Items, lookup)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		UserID:        input.UserID,
		AddressID:     input.AddressID,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		TotalAmount:   quote.TotalAmount,
		Status:        models.BookingPending,
		Notes:         input.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	for _, item := range input.Items {
		selected := models.UUIDList(item.SelectedAddOnIDs)
		if selected == nil {
			selected = models.UUIDList{}
		}
		booking.Items = append(booking.Items, models.BookingItem{
			ID:             uuid.New(),
			BookingID:      booking.ID,
			ServiceID:      item.ServiceID,
			Quantity:       item.Quantity,
			SelectedAddOns: selected,
		})
	}

	if err := persist(booking); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return booking, nil
}
