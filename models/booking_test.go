package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingPending:    {BookingConfirmed, BookingCancelled},
		BookingConfirmed:  {BookingInProgress, BookingCancelled},
		BookingInProgress: {BookingCompleted, BookingCancelled},
		BookingCompleted:  {},
		BookingCancelled:  {},
	}
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled}

	for from, targets := range allowed {
		permitted := map[BookingStatus]bool{}
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equalf(t, permitted[to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
	assert.False(t, BookingInProgress.IsTerminal())
}

func TestBookingStatusIsValid(t *testing.T) {
	assert.True(t, BookingPending.IsValid())
	assert.False(t, BookingStatus("shipped").IsValid())
}

func TestUserRoleIsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleStaff.IsValid())
	assert.False(t, UserRole("owner").IsValid())
}
