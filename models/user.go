package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeserve-backend/utils"
)

// UserRole is the closed set of roles a user can hold. Decision points
// switch over it exhaustively instead of comparing raw strings.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleStaff    UserRole = "staff"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role     UserRole `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	IsActive bool     `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
