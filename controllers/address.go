// controllers/address.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/utils"
)

type AddressController struct {
	DB *gorm.DB
}

// CreateAddressInput defines the expected JSON structure for creating an address
type CreateAddressInput struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	AddressLine string `json:"addressLine" binding:"required"`
	City        string `json:"city" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
	IsDefault   bool   `json:"isDefault"`
}

// UpdateAddressInput defines the expected JSON structure for updating an address
type UpdateAddressInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	AddressLine *string `json:"addressLine"`
	City        *string `json:"city"`
	Pincode     *string `json:"pincode"`
	IsDefault   *bool   `json:"isDefault"`
}

func currentUserUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// GetAddresses lists the caller's address book
func (ctl *AddressController) GetAddresses(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := ctl.DB.Where("user_id = ?", userUUID).Find(&addresses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve addresses")
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// CreateAddress adds an address to the caller's address book
func (ctl *AddressController) CreateAddress(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var input CreateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidatePincode(input.Pincode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pincode format")
		return
	}

	address := models.Address{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        input.Name,
		Phone:       input.Phone,
		AddressLine: input.AddressLine,
		City:        input.City,
		Pincode:     input.Pincode,
		IsDefault:   input.IsDefault,
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			// Only one default per user
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userUUID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, address)
}

// UpdateAddress updates an address owned by the caller
func (ctl *AddressController) UpdateAddress(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	addressUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid address ID format")
		return
	}

	var input UpdateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var address models.Address
	if err := ctl.DB.Where("user_id = ? AND id = ?", userUUID, addressUUID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Address not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		address.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		address.Phone = *input.Phone
	}
	if input.AddressLine != nil {
		address.AddressLine = *input.AddressLine
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.Pincode != nil {
		if !utils.ValidatePincode(*input.Pincode) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pincode format")
			return
		}
		address.Pincode = *input.Pincode
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault != nil && *input.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", userUUID, address.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&address).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update address")
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteAddress removes an address owned by the caller
func (ctl *AddressController) DeleteAddress(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	addressUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid address ID format")
		return
	}

	result := ctl.DB.Where("user_id = ? AND id = ?", userUUID, addressUUID).
		Delete(&models.Address{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Address not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
