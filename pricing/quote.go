// Package pricing computes deterministic quotes for requested service
// items against the current catalog. It is pure: no storage access
// beyond the supplied lookup, no mutation of its inputs.
package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"homeserve-backend/models"
)

// CatalogLookup resolves a service id to its catalog record (with
// add-ons loaded). The second return is false when the id is absent.
type CatalogLookup func(serviceID uuid.UUID) (*models.Service, bool)

// RequestedItem is one line of a quote or booking request.
type RequestedItem struct {
	ServiceID        uuid.UUID   `json:"serviceId" binding:"required"`
	Quantity         int         `json:"quantity"`
	SelectedAddOnIDs []uuid.UUID `json:"selectedAddons"`
}

// AddOnCharge is one applied add-on within a breakdown line.
type AddOnCharge struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Subtotal float64   `json:"subtotal"`
}

// BreakdownLine is the per-item pricing result. Service name and unit
// price are captured at compute time, so the line stays meaningful even
// if the catalog changes afterwards.
type BreakdownLine struct {
	ServiceID    uuid.UUID     `json:"serviceId"`
	ServiceName  string        `json:"serviceName"`
	Quantity     int           `json:"quantity"`
	BasePrice    float64       `json:"basePrice"`
	BaseSubtotal float64       `json:"baseSubtotal"`
	AddOns       []AddOnCharge `json:"addons"`
	LineTotal    float64       `json:"lineTotal"`
}

// Quote is the full pricing result: one breakdown line per requested
// item, in request order.
type Quote struct {
	TotalAmount float64         `json:"totalAmount"`
	Breakdown   []BreakdownLine `json:"breakdown"`
}

// ErrInvalidQuantity rejects quantities below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ServiceNotFoundError reports a requested service id absent from the
// catalog. A single unknown service invalidates the whole request.
type ServiceNotFoundError struct {
	ServiceID uuid.UUID
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", e.ServiceID)
}

// ComputeQuote prices the requested items against the catalog in a
// single order-preserving pass. Selected add-on ids that do not belong
// to the service are skipped without error; this matches the historic
// behavior the API documents, and callers rely on it.
func ComputeQuote(items []RequestedItem, lookup CatalogLookup) (*Quote, error) {
	quote := &Quote{Breakdown: []BreakdownLine{}}

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		service, ok := lookup(item.ServiceID)
		if !ok {
			return nil, &ServiceNotFoundError{ServiceID: item.ServiceID}
		}

		qty := float64(item.Quantity)
		line := BreakdownLine{
			ServiceID:    service.ID,
			ServiceName:  service.Name,
			Quantity:     item.Quantity,
			BasePrice:    service.BasePrice,
			BaseSubtotal: service.BasePrice * qty,
			AddOns:       []AddOnCharge{},
		}
		line.LineTotal = line.BaseSubtotal

		for _, addOnID := range item.SelectedAddOnIDs {
			addOn := service.FindAddOn(addOnID)
			if addOn == nil {
				continue
			}
			charge := AddOnCharge{
				ID:       addOn.ID,
				Name:     addOn.Name,
				Price:    addOn.Price,
				Subtotal: addOn.Price * qty,
			}
			line.AddOns = append(line.AddOns, charge)
			line.LineTotal += charge.Subtotal
		}

		quote.Breakdown = append(quote.Breakdown, line)
		quote.TotalAmount += line.LineTotal
	}

	return quote, nil
}
