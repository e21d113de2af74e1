package handler

import (
	"net/http"
	"strconv"

	"github.com/kangmariz/barangay-complaint-corner/internal/complaint"
	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	"github.com/gin-gonic/gin"
)

// ListComplaints returns the complaints visible to the caller. With a ?q=
// parameter the list is filtered by substring search; without one it is
// the full visible set.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Complaints.Search(currentUser(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetComplaint returns a single complaint, redacted for the caller.
func (h *Handler) GetComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	record, err := h.Complaints.Get(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateComplaint submits a new complaint for the caller.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var draft complaint.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint payload"})
		return
	}

	record, err := h.Complaints.Create(currentUser(c), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// UpdateComplaint replaces the editable fields of a Pending complaint
// owned by the caller.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	var draft complaint.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint payload"})
		return
	}

	record, err := h.Complaints.Update(currentUser(c), id, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// UpdateStatus moves a complaint to a new status (admin only).
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.Complaints.UpdateStatus(currentUser(c), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint has been marked as " + string(req.Status)})
}

// DeleteComplaint removes a Resolved complaint (admin only).
func (h *Handler) DeleteComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	if err := h.Complaints.Delete(currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The complaint has been removed"})
}

// DeleteResolved removes every Resolved complaint (admin only). A count of
// zero is reported as a successful no-op so the client can tell the user
// there was nothing to clean up.
func (h *Handler) DeleteResolved(c *gin.Context) {
	count, err := h.Complaints.DeleteAllResolved(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"deleted": 0, "message": "There are no resolved complaints to delete"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count, "message": "Resolved complaints deleted"})
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddComment appends an admin comment to a complaint.
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	comment, err := h.Complaints.AddComment(currentUser(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func complaintID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return 0, false
	}
	return uint(id), true
}
