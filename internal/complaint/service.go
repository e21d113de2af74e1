// Package complaint implements the complaint lifecycle: creation, owner
// edits, admin triage, comments, deletion and visibility filtering. Every
// operation takes the acting user explicitly and re-checks the access
// policy itself, regardless of what the caller already verified.
package complaint

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/policy"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"
)

var (
	// ErrForbidden means the acting user is not allowed to perform the
	// operation on this complaint.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the complaint ID is unknown, usually because the
	// caller is holding a stale list.
	ErrNotFound = errors.New("complaint not found")
	// ErrInvalidStatus means the requested status is not one of
	// Pending, In Progress, Resolved.
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError reports a required field that was missing or blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Observer receives a StatusEvent after each successful status change.
type Observer func(ev models.StatusEvent)

// Service handles the business logic for complaints.
type Service struct {
	Storage   storage.Storage
	observers []Observer
}

// NewService creates a new complaint lifecycle service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Subscribe registers an observer for status-changed events. Observers are
// expected to be registered during startup, before the service handles
// requests.
func (s *Service) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Draft carries the caller-editable complaint fields. Everything else
// (id, status, timestamps, owner, comments) is assigned by the service.
type Draft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Purok         string `json:"purok"`
	Anonymous     bool   `json:"anonymous"`
	FullName      string `json:"fullName"`
	ContactNumber string `json:"contactNumber"`
	Photo         string `json:"photo"`
}

func (d Draft) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	if strings.TrimSpace(d.Purok) == "" {
		return &ValidationError{Field: "purok"}
	}
	if !d.Anonymous {
		if strings.TrimSpace(d.FullName) == "" {
			return &ValidationError{Field: "fullName"}
		}
		if strings.TrimSpace(d.ContactNumber) == "" {
			return &ValidationError{Field: "contactNumber"}
		}
	}
	return nil
}

// Create submits a new complaint on behalf of user. Status is always
// Pending; the caller cannot pick it. The submitter is recorded even for
// anonymous complaints so they can still edit their own record.
func (s *Service) Create(user *models.User, draft Draft) (*models.Complaint, error) {
	if user == nil {
		return nil, ErrForbidden
	}
	if err := draft.validate(); err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		Title:         draft.Title,
		Description:   draft.Description,
		Purok:         draft.Purok,
		Status:        models.StatusPending,
		Anonymous:     draft.Anonymous,
		FullName:      draft.FullName,
		ContactNumber: draft.ContactNumber,
		Photo:         draft.Photo,
		UserID:        user.ID,
		Comments:      models.Comments{},
		CreatedAt:     time.Now(),
	}
	if err := s.Storage.CreateComplaint(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Update replaces the editable fields of an existing complaint. Only the
// owning resident may do this, and only while the complaint is Pending.
// ID, owner, status, comments and the creation timestamp are preserved no
// matter what the draft carries.
func (s *Service) Update(user *models.User, id uint, draft Draft) (*models.Complaint, error) {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	if !policy.CanEdit(user, complaint) {
		return nil, ErrForbidden
	}
	if err := draft.validate(); err != nil {
		return nil, err
	}

	complaint.Title = draft.Title
	complaint.Description = draft.Description
	complaint.Purok = draft.Purok
	complaint.Anonymous = draft.Anonymous
	complaint.FullName = draft.FullName
	complaint.ContactNumber = draft.ContactNumber
	complaint.Photo = draft.Photo

	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// UpdateStatus moves a complaint to newStatus. Admin-only. Any direction
// is allowed, including reopening a Resolved complaint. On success a
// single StatusEvent is delivered to every registered observer.
func (s *Service) UpdateStatus(user *models.User, id uint, newStatus models.Status) error {
	if !policy.CanChangeStatus(user) {
		return ErrForbidden
	}
	if !newStatus.Valid() {
		return ErrInvalidStatus
	}
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return err
	}
	if complaint == nil {
		return ErrNotFound
	}

	complaint.Status = newStatus
	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return err
	}

	ev := models.StatusEvent{ID: complaint.ID, NewStatus: newStatus}
	for _, fn := range s.observers {
		fn(ev)
	}
	return nil
}

// Delete removes a complaint. Admin-only, and only while the complaint is
// Resolved. The freed ID is never handed out again.
func (s *Service) Delete(user *models.User, id uint) error {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return err
	}
	if complaint == nil {
		return ErrNotFound
	}
	if !policy.CanDelete(user, complaint) {
		return ErrForbidden
	}
	return s.Storage.DeleteComplaint(id)
}

// DeleteAllResolved removes every Resolved complaint and returns how many
// were removed. Removing zero is a successful no-op, not an error.
func (s *Service) DeleteAllResolved(user *models.User) (int64, error) {
	if user == nil || !user.IsAdmin() {
		return 0, ErrForbidden
	}
	return s.Storage.DeleteResolvedComplaints()
}

// AddComment appends a comment to a complaint. Admin-only. The author's
// display name is copied into the comment at write time; renaming the
// account later does not rewrite the thread.
func (s *Service) AddComment(user *models.User, id uint, text string) (*models.Comment, error) {
	if !policy.CanComment(user) {
		return nil, ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text"}
	}
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		ID:        time.Now().UnixMilli(),
		Text:      text,
		CreatedAt: time.Now(),
		UserID:    user.ID,
		UserName:  user.DisplayName(),
	}
	// Millisecond timestamps can collide within a single thread; bump past
	// the previous comment when they do.
	if n := len(complaint.Comments); n > 0 && comment.ID <= complaint.Comments[n-1].ID {
		comment.ID = complaint.Comments[n-1].ID + 1
	}
	complaint.Comments = append(complaint.Comments, comment)

	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListVisible returns the complaints user may see: all of them for admins,
// only their own for residents. Every record is passed through the
// redaction rules.
func (s *Service) ListVisible(user *models.User) ([]models.Complaint, error) {
	if user == nil {
		return nil, ErrForbidden
	}
	complaints, err := s.Storage.ListComplaints()
	if err != nil {
		return nil, err
	}
	visible := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if !policy.CanView(user, &c) {
			continue
		}
		visible = append(visible, policy.Redact(c, user))
	}
	return visible, nil
}

// Get returns a single complaint, redacted for user. Residents can only
// fetch their own.
func (s *Service) Get(user *models.User, id uint) (*models.Complaint, error) {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	if !policy.CanView(user, complaint) {
		return nil, ErrForbidden
	}
	redacted := policy.Redact(*complaint, user)
	return &redacted, nil
}

// Search filters ListVisible by a case-insensitive substring match against
// title, description, purok and status. An empty query returns the
// unfiltered visible set.
func (s *Service) Search(user *models.User, query string) ([]models.Complaint, error) {
	visible, err := s.ListVisible(user)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return visible, nil
	}

	term := strings.ToLower(query)
	matched := make([]models.Complaint, 0, len(visible))
	for _, c := range visible {
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Description), term) ||
			strings.Contains(strings.ToLower(c.Purok), term) ||
			strings.Contains(strings.ToLower(string(c.Status)), term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
