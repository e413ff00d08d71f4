// controllers/payment.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/utils"
)

type PaymentController struct {
	DB *gorm.DB
}

// PaymentIntentInput defines the expected JSON structure for a payment intent
type PaymentIntentInput struct {
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Currency  string     `json:"currency"`
	BookingID *uuid.UUID `json:"bookingId"`
}

// Gateway intents are recorded but not yet forwarded: the actual
// Razorpay/Stripe integrations land behind these endpoints later.
func (ctl *PaymentController) createIntent(c *gin.Context, gateway string) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var input PaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	txn := models.PaymentTransaction{
		ID:            uuid.New(),
		BookingID:     input.BookingID,
		UserID:        &userUUID,
		Amount:        input.Amount,
		Currency:      currency,
		Gateway:       gateway,
		PaymentStatus: "initiated",
		CreatedAt:     time.Now().UTC(),
	}

	if err := ctl.DB.Create(&txn).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment intent")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       gateway + " integration pending",
		"transactionId": txn.ID,
	})
}

// CreateRazorpayIntent records a Razorpay payment intent
func (ctl *PaymentController) CreateRazorpayIntent(c *gin.Context) {
	ctl.createIntent(c, "razorpay")
}

// CreateStripeIntent records a Stripe payment intent
func (ctl *PaymentController) CreateStripeIntent(c *gin.Context) {
	ctl.createIntent(c, "stripe")
}
