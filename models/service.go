package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceStatus is the closed set of catalog states for a service.
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceActive, ServiceInactive:
		return true
	}
	return false
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	Duration    int       `json:"duration"` // in minutes
	Category    string    `gorm:"default:'General'" json:"category"`

	Status ServiceStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	AddOns []ServiceAddOn `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"addOns"`

	CreatedAt time.Time `json:"createdAt"`
}

// ServiceAddOn is an optional priced extra attached to a Service.
// Add-on ids are unique within a service (primary key).
type ServiceAddOn struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `json:"description"`
}

// FindAddOn returns the add-on with the given id, or nil when the
// service carries no such add-on.
func (s *Service) FindAddOn(id uuid.UUID) *ServiceAddOn {
	for i := range s.AddOns {
		if s.AddOns[i].ID == id {
			return &s.AddOns[i]
		}
	}
	return nil
}
