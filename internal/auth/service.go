// Package auth implements the identity service: signup, login, logout,
// self-service profile and password changes. A session is a signed JWT
// whose ID must still exist in Redis, so logout actually revokes the
// token instead of waiting for it to expire.
package auth

import (
	"errors"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service authenticates users and manages their sessions.
type Service struct {
	Storage    storage.Storage
	TokenMaker *TokenMaker
}

// NewService creates an identity service backed by the given storage.
func NewService(s storage.Storage, tm *TokenMaker) *Service {
	return &Service{Storage: s, TokenMaker: tm}
}

// Session is a logged-in principal plus the bearer token that proves it.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login checks the credentials against the stored bcrypt hash. Username
// matching is exact and case-sensitive. A bad username and a bad password
// fail the same way on purpose.
func (s *Service) Login(username, password string) (*Session, error) {
	user, err := s.Storage.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(user)
}

// Signup creates a new resident account and logs it in. The username must
// not collide with an existing one (exact, case-sensitive match).
func (s *Service) Signup(fullName, username, password, email string) (*Session, error) {
	existing, err := s.Storage.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName:     fullName,
		Username:     username,
		Email:        email,
		Role:         models.RoleResident,
		PasswordHash: string(hash),
	}
	if err := s.Storage.SaveUser(user); err != nil {
		return nil, err
	}
	return s.openSession(user)
}

func (s *Service) openSession(user *models.User) (*Session, error) {
	token, jti, err := s.TokenMaker.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Storage.SaveSession(jti, user.ID, s.TokenMaker.TTL); err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

// Logout revokes the session behind the token. Unknown or already revoked
// tokens are fine; logout is idempotent.
func (s *Service) Logout(token string) error {
	claims, err := s.TokenMaker.Parse(token)
	if err != nil {
		return nil
	}
	return s.Storage.DeleteSession(claims.JTI)
}

// Authenticate resolves a bearer token to its user. The token must verify,
// be unexpired, and its session must still exist in Redis.
func (s *Service) Authenticate(token string) (*models.User, error) {
	claims, err := s.TokenMaker.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := s.Storage.GetSession(claims.JTI)
	if err != nil {
		return nil, err
	}
	if userID == "" || userID != claims.UserID {
		return nil, ErrInvalidToken
	}
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as
// is", mirroring a partial update from the client.
type ProfileUpdate struct {
	FullName       *string `json:"fullName"`
	Email          *string `json:"email"`
	ContactNumber  *string `json:"contactNumber"`
	ProfilePicture *string `json:"profilePicture"`
}

// UpdateProfile merges the given fields into the current user and
// persists. Username and role are not touchable here.
func (s *Service) UpdateProfile(user *models.User, update ProfileUpdate) (*models.User, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.ContactNumber != nil {
		user.ContactNumber = *update.ContactNumber
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if err := s.Storage.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(user *models.User, current, newPassword string) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.Storage.SaveUser(user)
}

// HashPassword is used by the operator CLI when seeding accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
