package complaint_test

import (
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage, used where a test
// needs to force storage failures or assert call counts. Stateful flows
// use storage.Memory instead.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) SaveComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id uint) (*models.Complaint, error) {
	args := m.Called(id)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) DeleteComplaint(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) DeleteResolvedComplaints() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountComplaintsByStatus() (map[models.Status]int64, error) {
	args := m.Called()
	if c := args.Get(0); c != nil {
		return c.(map[models.Status]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) SaveSession(jti, userID string, ttl time.Duration) error {
	args := m.Called(jti, userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) GetSession(jti string) (string, error) {
	args := m.Called(jti)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteSession(jti string) error {
	args := m.Called(jti)
	return args.Error(0)
}

func (m *MockStorage) PublishStatusEvent(ev models.StatusEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}
