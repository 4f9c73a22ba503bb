package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/dinehub/app/models"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.Status
		to      models.Status
		allowed bool
	}{
		{"pending to confirmed", models.StatusPending, models.StatusConfirmed, true},
		{"pending to rejected", models.StatusPending, models.StatusRejected, true},
		{"confirmed to preparing", models.StatusConfirmed, models.StatusPreparing, true},
		{"preparing to completed", models.StatusPreparing, models.StatusCompleted, true},
		{"completed to delivered", models.StatusCompleted, models.StatusDelivered, true},

		{"pending cannot skip to preparing", models.StatusPending, models.StatusPreparing, false},
		{"pending cannot skip to delivered", models.StatusPending, models.StatusDelivered, false},
		{"confirmed cannot go back to pending", models.StatusConfirmed, models.StatusPending, false},
		{"confirmed cannot be rejected", models.StatusConfirmed, models.StatusRejected, false},
		{"preparing cannot go back to confirmed", models.StatusPreparing, models.StatusConfirmed, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusPending, false},
		{"rejected is terminal", models.StatusRejected, models.StatusConfirmed, false},

		{"no-op pending", models.StatusPending, models.StatusPending, false},
		{"no-op delivered", models.StatusDelivered, models.StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, models.StatusRejected.IsTerminal())
	assert.True(t, models.StatusDelivered.IsTerminal())

	assert.False(t, models.StatusPending.IsTerminal())
	assert.False(t, models.StatusConfirmed.IsTerminal())
	assert.False(t, models.StatusPreparing.IsTerminal())
	assert.False(t, models.StatusCompleted.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []models.Status{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusCompleted, models.StatusDelivered, models.StatusRejected,
	} {
		assert.True(t, s.IsValid(), "status %q", s)
	}

	assert.False(t, models.Status("cancelled").IsValid())
	assert.False(t, models.Status("").IsValid())
}

func TestStatus_RoleMayTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.Status
		to      models.Status
		role    models.Role
		allowed bool
	}{
		{"counter confirms", models.StatusPending, models.StatusConfirmed, models.RoleCounter, true},
		{"counter rejects", models.StatusPending, models.StatusRejected, models.RoleCounter, true},
		{"kitchen starts preparing", models.StatusConfirmed, models.StatusPreparing, models.RoleKitchen, true},
		{"kitchen completes", models.StatusPreparing, models.StatusCompleted, models.RoleKitchen, true},
		{"counter delivers", models.StatusCompleted, models.StatusDelivered, models.RoleCounter, true},
		{"waiter delivers", models.StatusCompleted, models.StatusDelivered, models.RoleWaiter, true},

		{"waiter cannot confirm", models.StatusPending, models.StatusConfirmed, models.RoleWaiter, false},
		{"kitchen cannot confirm", models.StatusPending, models.StatusConfirmed, models.RoleKitchen, false},
		{"kitchen cannot reject", models.StatusPending, models.StatusRejected, models.RoleKitchen, false},
		{"counter cannot start preparing", models.StatusConfirmed, models.StatusPreparing, models.RoleCounter, false},
		{"waiter cannot complete", models.StatusPreparing, models.StatusCompleted, models.RoleWaiter, false},
		{"kitchen cannot deliver", models.StatusCompleted, models.StatusDelivered, models.RoleKitchen, false},

		{"nobody may use an illegal edge", models.StatusPending, models.StatusDelivered, models.RoleCounter, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.RoleMayTransition(tt.to, tt.role))
		})
	}
}

func TestOrderType_InitialStatus(t *testing.T) {
	assert.Equal(t, models.StatusPending, models.DineIn.InitialStatus())
	assert.Equal(t, models.StatusConfirmed, models.Pickup.InitialStatus())
}
