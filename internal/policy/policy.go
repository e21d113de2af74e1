// Package policy holds the access rules for complaints as pure functions
// over a (user, complaint) pair. The lifecycle service enforces them on
// every operation; the HTTP layer may also consult them to decide which
// controls to render, but the server never trusts the caller to have done
// so.
package policy

import "github.com/kangmariz/barangay-complaint-corner/internal/models"

// CanView reports whether u may see the complaint at all: admins see
// everything, residents only their own submissions.
func CanView(u *models.User, c *models.Complaint) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || c.UserID == u.ID
}

// CanEdit reports whether u may change the complaint's content. Only the
// owning resident may, and only while the complaint is still Pending.
// Admins never edit content directly; they change status and comment.
func CanEdit(u *models.User, c *models.Complaint) bool {
	return CanView(u, c) &&
		u.Role == models.RoleResident &&
		c.Status == models.StatusPending &&
		c.UserID == u.ID
}

// CanChangeStatus reports whether u may move a complaint between statuses.
func CanChangeStatus(u *models.User) bool {
	return u != nil && u.IsAdmin()
}

// CanComment reports whether u may attach comments.
func CanComment(u *models.User) bool {
	return u != nil && u.IsAdmin()
}

// CanDelete reports whether u may delete the complaint. Deletion is
// admin-only and only while the complaint is Resolved.
func CanDelete(u *models.User, c *models.Complaint) bool {
	return u != nil && u.IsAdmin() && c.Status == models.StatusResolved
}

// Redact returns a copy of c safe to show to viewer. Owners and admins see
// the record as stored. Everyone else loses the submitter ID, and for
// anonymous complaints also the contact fields. Redaction happens on the
// way out so admins keep access to whatever the submitter provided.
func Redact(c models.Complaint, viewer *models.User) models.Complaint {
	if viewer != nil && (viewer.IsAdmin() || viewer.ID == c.UserID) {
		return c
	}
	if c.Anonymous {
		c.FullName = ""
		c.ContactNumber = ""
	}
	c.UserID = ""
	return c
}
