// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/pricing"
	"homeserve-backend/services"
	"homeserve-backend/utils"
)

type BookingController struct {
	DB *gorm.DB
}

// QuoteInput defines the expected JSON structure for a quote request
type QuoteInput struct {
	Items []pricing.RequestedItem `json:"items" binding:"required"`
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	AddressID     uuid.UUID               `json:"addressId" binding:"required"`
	Items         []pricing.RequestedItem `json:"items" binding:"required,min=1"`
	ScheduledDate string                  `json:"scheduledDate" binding:"required"`
	ScheduledTime string                  `json:"scheduledTime" binding:"required"`
	Notes         string                  `json:"notes"`
}

// UpdateBookingStatusInput carries a lifecycle transition request
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// catalogLookup resolves services with add-ons from the database.
func (ctl *BookingController) catalogLookup() pricing.CatalogLookup {
	return func(serviceID uuid.UUID) (*models.Service, bool) {
		var service models.Service
		if err := ctl.DB.Preload("AddOns").First(&service, "id = ?", serviceID).Error; err != nil {
			return nil, false
		}
		return &service, true
	}
}

// A missing quantity means one unit.
func defaultQuantities(items []pricing.RequestedItem) {
	for i := range items {
		if items[i].Quantity == 0 {
			items[i].Quantity = 1
		}
	}
}

func respondPricingError(c *gin.Context, err error) {
	var notFound *pricing.ServiceNotFoundError
	switch {
	case errors.As(err, &notFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.Is(err, pricing.ErrInvalidQuantity):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute quote")
	}
}

// Quote prices the requested items against the current catalog. Open to
// unauthenticated callers so the booking wizard can show prices up front.
func (ctl *BookingController) Quote(c *gin.Context) {
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	defaultQuantities(input.Items)

	quote, err := pricing.ComputeQuote(input.Items, ctl.catalogLookup())
	if err != nil {
		respondPricingError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateBooking quotes the items and stores a pending booking with the
// total frozen at this instant.
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidScheduleDate(input.ScheduledDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid scheduled date, expected YYYY-MM-DD")
		return
	}

	// The address must exist and belong to the caller
	var address models.Address
	if err := ctl.DB.Where("user_id = ? AND id = ?", userUUID, input.AddressID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Address not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	defaultQuantities(input.Items)

	booking, err := services.CreateBooking(services.CreateBookingInput{
		UserID:        userUUID,
		AddressID:     input.AddressID,
		Items:         input.Items,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Notes:         input.Notes,
	}, ctl.catalogLookup(), func(b *models.Booking) error {
		return ctl.DB.Create(b).Error
	})
	if err != nil {
		var persistErr *services.PersistenceError
		if errors.As(err, &persistErr) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
			return
		}
		respondPricingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings lists the caller's bookings, newest first
func (ctl *BookingController) GetMyBookings(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := ctl.DB.Preload("Items").
		Where("user_id = ?", userUUID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns a booking to its owner, or to admin/staff users
func (ctl *BookingController) GetBooking(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := ctl.DB.Preload("Items").First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.UserID != userUUID {
		claim, _ := c.Get("role")
		role, _ := claim.(string)
		switch models.UserRole(role) {
		case models.RoleAdmin, models.RoleStaff:
			// privileged read
		case models.RoleCustomer:
			utils.RespondWithError(c, http.StatusForbidden, "Access denied")
			return
		default:
			utils.RespondWithError(c, http.StatusForbidden, "Access denied")
			return
		}
	}

	c.JSON(http.StatusOK, booking)
}

// GetAllBookings lists every booking (admin only)
func (ctl *BookingController) GetAllBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := ctl.DB.Preload("Items").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus applies a lifecycle transition (admin only).
// The stored total is never touched; cancellation keeps the record.
func (ctl *BookingController) UpdateBookingStatus(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	next := models.BookingStatus(input.Status)
	if !next.IsValid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
		return
	}

	var booking models.Booking
	if err := ctl.DB.Preload("Items").First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !booking.Status.CanTransitionTo(next) {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Cannot transition booking from "+string(booking.Status)+" to "+string(next))
		return
	}

	if err := ctl.DB.Model(&booking).Update("status", next).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	booking.Status = next
	c.JSON(http.StatusOK, booking)
}

// GetTodayJobs lists bookings scheduled for today (staff only)
func (ctl *BookingController) GetTodayJobs(c *gin.Context) {
	today := utils.BeginningOfDay(time.Now()).Format(utils.ScheduleDateLayout)

	var bookings []models.Booking
	if err := ctl.DB.Preload("Items").
		Where("scheduled_date = ?", today).
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}
