package storage_test

import (
	"testing"
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryComplaintIDsAreHighWater: the in-memory store must behave like
// the Postgres identity column, never reissuing an ID after deletion.
func TestMemoryComplaintIDsAreHighWater(t *testing.T) {
	store := storage.NewMemory()

	first := &models.Complaint{Title: "a", Status: models.StatusPending}
	require.NoError(t, store.CreateComplaint(first))
	require.NoError(t, store.DeleteComplaint(first.ID))

	second := &models.Complaint{Title: "b", Status: models.StatusPending}
	require.NoError(t, store.CreateComplaint(second))

	assert.Greater(t, second.ID, first.ID)
}

func TestMemoryListOrder(t *testing.T) {
	store := storage.NewMemory()
	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, store.CreateComplaint(&models.Complaint{Title: title, Status: models.StatusPending}))
	}

	complaints, err := store.ListComplaints()
	require.NoError(t, err)
	require.Len(t, complaints, 3)
	assert.Equal(t, "first", complaints[0].Title, "submission order is preserved")
	assert.Equal(t, "third", complaints[2].Title)
}

func TestMemoryDeleteResolved(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.CreateComplaint(&models.Complaint{Title: "a", Status: models.StatusResolved}))
	require.NoError(t, store.CreateComplaint(&models.Complaint{Title: "b", Status: models.StatusPending}))
	require.NoError(t, store.CreateComplaint(&models.Complaint{Title: "c", Status: models.StatusResolved}))

	count, err := store.DeleteResolvedComplaints()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.DeleteResolvedComplaints()
	require.NoError(t, err)
	assert.Zero(t, count, "a second sweep has nothing left to remove")

	counts, err := store.CountComplaintsByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusPending])
	assert.Zero(t, counts[models.StatusResolved])
}

func TestMemorySessions(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.SaveSession("jti-1", "user-1", time.Hour))

	userID, err := store.GetSession("jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, store.DeleteSession("jti-1"))
	userID, err = store.GetSession("jti-1")
	require.NoError(t, err)
	assert.Empty(t, userID, "a deleted session reads back empty")

	assert.NoError(t, store.DeleteSession("jti-1"), "deleting twice is fine")
}
