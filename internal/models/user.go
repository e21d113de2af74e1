package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines what a user is allowed to do. It is fixed at creation:
// signup always produces a resident, admins are seeded by the operator CLI.
type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

// User represents an account in the system. Username and Role never change
// after creation; the remaining profile fields are self-service mutable.
type User struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	FullName       string `gorm:"not null" json:"fullName"`
	Email          string `json:"email,omitempty"`
	ContactNumber  string `json:"contactNumber,omitempty"`
	Role           Role   `gorm:"not null" json:"role"`
	ProfilePicture string `gorm:"type:text" json:"profilePicture,omitempty"`

	// PasswordHash is a bcrypt hash of the account password. Never serialized.
	PasswordHash string `json:"-"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID
// has not been set explicitly.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the name shown next to comments: the full name when
// present, the username otherwise.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
