package policy_test

import (
	"testing"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/policy"

	"github.com/stretchr/testify/assert"
)

var (
	owner = &models.User{ID: "resident-1", Username: "john", Role: models.RoleResident}
	other = &models.User{ID: "resident-2", Username: "jane", Role: models.RoleResident}
	admin = &models.User{ID: "admin-1", Username: "admin", Role: models.RoleAdmin}
)

func pendingOwnedBy(userID string) *models.Complaint {
	return &models.Complaint{ID: 1, Status: models.StatusPending, UserID: userID}
}

func TestCanView(t *testing.T) {
	c := pendingOwnedBy(owner.ID)

	assert.True(t, policy.CanView(owner, c), "owner should see their own complaint")
	assert.True(t, policy.CanView(admin, c), "admin should see every complaint")
	assert.False(t, policy.CanView(other, c), "other residents should not see it")
	assert.False(t, policy.CanView(nil, c), "anonymous callers should not see anything")
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		status models.Status
		want   bool
	}{
		{"owner while pending", owner, models.StatusPending, true},
		{"owner while in progress", owner, models.StatusInProgress, false},
		{"owner while resolved", owner, models.StatusResolved, false},
		{"other resident while pending", other, models.StatusPending, false},
		{"admin while pending", admin, models.StatusPending, false},
		{"nil user", nil, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pendingOwnedBy(owner.ID)
			c.Status = tt.status
			assert.Equal(t, tt.want, policy.CanEdit(tt.user, c))
		})
	}
}

func TestAdminOnlyCapabilities(t *testing.T) {
	assert.True(t, policy.CanChangeStatus(admin))
	assert.False(t, policy.CanChangeStatus(owner))
	assert.False(t, policy.CanChangeStatus(nil))

	assert.True(t, policy.CanComment(admin))
	assert.False(t, policy.CanComment(owner))
	assert.False(t, policy.CanComment(nil))
}

func TestCanDelete(t *testing.T) {
	resolved := pendingOwnedBy(owner.ID)
	resolved.Status = models.StatusResolved

	assert.True(t, policy.CanDelete(admin, resolved), "admin may delete a resolved complaint")
	assert.False(t, policy.CanDelete(admin, pendingOwnedBy(owner.ID)), "pending complaints are not deletable")
	assert.False(t, policy.CanDelete(owner, resolved), "residents never delete, even their own")
	assert.False(t, policy.CanDelete(nil, resolved))
}

// TestRedactAnonymous covers the full viewer matrix for an anonymous
// complaint that carries contact details.
func TestRedactAnonymous(t *testing.T) {
	c := models.Complaint{
		ID:            7,
		Anonymous:     true,
		FullName:      "John Doe",
		ContactNumber: "09123456789",
		UserID:        owner.ID,
	}

	forAdmin := policy.Redact(c, admin)
	assert.Equal(t, "John Doe", forAdmin.FullName, "admin keeps the contact fields")
	assert.Equal(t, "09123456789", forAdmin.ContactNumber)
	assert.Equal(t, owner.ID, forAdmin.UserID)

	forOwner := policy.Redact(c, owner)
	assert.Equal(t, "John Doe", forOwner.FullName, "the owner still sees what they submitted")
	assert.Equal(t, owner.ID, forOwner.UserID)

	forOther := policy.Redact(c, other)
	assert.Empty(t, forOther.FullName, "other residents must not see the submitter's name")
	assert.Empty(t, forOther.ContactNumber)
	assert.Empty(t, forOther.UserID, "the submitter id is never exposed to other residents")

	forNobody := policy.Redact(c, nil)
	assert.Empty(t, forNobody.FullName)
	assert.Empty(t, forNobody.UserID)
}

// TestRedactNonAnonymous verifies that contact fields survive for public
// complaints but the submitter id is still hidden from non-owners.
func TestRedactNonAnonymous(t *testing.T) {
	c := models.Complaint{
		ID:            8,
		Anonymous:     false,
		FullName:      "John Doe",
		ContactNumber: "09123456789",
		UserID:        owner.ID,
	}

	forOther := policy.Redact(c, other)
	assert.Equal(t, "John Doe", forOther.FullName, "public complaints keep their contact fields")
	assert.Empty(t, forOther.UserID)
}

// TestRedactDoesNotMutate ensures Redact works on a copy.
func TestRedactDoesNotMutate(t *testing.T) {
	c := models.Complaint{Anonymous: true, FullName: "John Doe", UserID: owner.ID}

	_ = policy.Redact(c, other)

	assert.Equal(t, "John Doe", c.FullName, "the stored record must stay intact")
	assert.Equal(t, owner.ID, c.UserID)
}
