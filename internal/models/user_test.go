package models_test

import (
	"testing"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook
// assigns a valid UUID when none is set.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{Username: "john", FullName: "John Doe", Role: models.RoleResident}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	_, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't
// overwrite an explicitly assigned ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Username: "john", Role: models.RoleResident}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestUserDisplayName(t *testing.T) {
	withName := models.User{Username: "john", FullName: "John Doe"}
	assert.Equal(t, "John Doe", withName.DisplayName())

	withoutName := models.User{Username: "john"}
	assert.Equal(t, "john", withoutName.DisplayName(), "fall back to the username")
}

func TestStatusValid(t *testing.T) {
	assert.True(t, models.StatusPending.Valid())
	assert.True(t, models.StatusInProgress.Valid())
	assert.True(t, models.StatusResolved.Valid())
	assert.False(t, models.Status("Closed").Valid())
	assert.False(t, models.Status("").Valid())
	assert.False(t, models.Status("pending").Valid(), "statuses are case-sensitive")
}
