package models

import "time"

// Status is the triage state of a complaint. Every complaint starts out
// Pending; only admins move it, in any direction. A Resolved complaint can
// be reopened, and is the only state in which deletion is allowed.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Comment is a single remark attached to a complaint. UserName is a
// snapshot of the author's display name at write time, not a live
// reference: later profile renames do not rewrite history.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
}

// Comments is the ordered, append-only comment thread of a complaint.
// Stored as a JSON column on the complaint row.
type Comments []Comment

// Complaint is a resident-submitted report. FullName and ContactNumber are
// stored only when the submission is not anonymous. UserID is always
// recorded, including for anonymous submissions, so the owner can still
// edit their own complaint; it is hidden from other residents on the way
// out (see policy.Redact).
type Complaint struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Purok         string    `gorm:"not null" json:"purok"`
	Status        Status    `gorm:"not null" json:"status"`
	Anonymous     bool      `json:"anonymous"`
	FullName      string    `json:"fullName,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Photo         string    `gorm:"type:text" json:"photo,omitempty"` // data URI, not a file path
	UserID        string    `gorm:"index" json:"userId,omitempty"`
	Comments      Comments  `gorm:"serializer:json" json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatusEvent is emitted once per successful status change. Consumers
// (WebSocket hub, Telegram notifier) register on the lifecycle service.
type StatusEvent struct {
	ID        uint   `json:"id"`
	NewStatus Status `json:"newStatus"`
}
