package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface consumed by the auth and complaint
// services. Lookups return (nil, nil) when the record does not exist;
// callers translate that into their own not-found errors.
type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	// CreateComplaint persists a new complaint and fills in its ID from a
	// monotonic sequence. IDs are never reused, even after deletion.
	CreateComplaint(complaint *models.Complaint) error
	SaveComplaint(complaint *models.Complaint) error
	GetComplaintByID(id uint) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	DeleteComplaint(id uint) error
	DeleteResolvedComplaints() (int64, error)
	CountComplaintsByStatus() (map[models.Status]int64, error)

	SaveSession(jti, userID string, ttl time.Duration) error
	GetSession(jti string) (string, error)
	DeleteSession(jti string) error

	PublishStatusEvent(ev models.StatusEvent) error
}

// StatusEventChannel is the Redis Pub/Sub channel carrying status events.
const StatusEventChannel = "complaints:status"

// Service is the PostgreSQL + Redis implementation of Storage. The
// database holds the durable collections (users, complaints); Redis holds
// volatile session keys and fans status events out to every server process.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser upserts a user record.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername looks a user up by exact, case-sensitive username.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateComplaint inserts a new complaint row. The ID comes from the
// Postgres identity sequence, which never hands out a value twice.
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint %q: %v", complaint.Title, err)
		return err
	}
	return nil
}

// SaveComplaint writes the full complaint record back, comments included.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

func (s *Service) GetComplaintByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.First(&complaint, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns every complaint in submission order.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Order("id asc").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

func (s *Service) DeleteComplaint(id uint) error {
	return s.DB.Delete(&models.Complaint{}, id).Error
}

// DeleteResolvedComplaints removes every Resolved complaint and returns
// how many rows went away. Zero is not an error.
func (s *Service) DeleteResolvedComplaints() (int64, error) {
	res := s.DB.Where("status = ?", models.StatusResolved).Delete(&models.Complaint{})
	if res.Error != nil {
		log.Printf("ERROR: Failed to delete resolved complaints: %v", res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// CountComplaintsByStatus returns the number of complaints per status.
func (s *Service) CountComplaintsByStatus() (map[models.Status]int64, error) {
	type row struct {
		Status models.Status
		N      int64
	}
	var rows []row
	err := s.DB.Model(&models.Complaint{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

// SaveSession records a live session token in Redis under its JWT ID.
// Logout deletes the key, which revokes the token before it expires.
func (s *Service) SaveSession(jti, userID string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, sessionKey(jti), userID, ttl).Err()
}

// GetSession returns the user ID bound to a session, or "" when the
// session does not exist (expired or logged out).
func (s *Service) GetSession(jti string) (string, error) {
	userID, err := s.Redis.Get(s.Ctx, sessionKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteSession drops a session key. Deleting an absent key is fine, which
// makes logout idempotent.
func (s *Service) DeleteSession(jti string) error {
	return s.Redis.Del(s.Ctx, sessionKey(jti)).Err()
}

func sessionKey(jti string) string {
	return "session:" + jti
}

// PublishStatusEvent broadcasts a status change over Redis Pub/Sub.
func (s *Service) PublishStatusEvent(ev models.StatusEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, StatusEventChannel, payload).Err()
}

// SubscribeStatusEvents subscribes to the status event channel. The caller
// owns the subscription and must Close it.
func (s *Service) SubscribeStatusEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, StatusEventChannel)
}
