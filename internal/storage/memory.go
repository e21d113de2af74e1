package storage

import (
	"sync"
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
)

// Memory is an in-process Storage used for local development (no Postgres
// around) and for tests. Complaint IDs come from a high-water counter, so
// an ID deleted at the top of the range is still never handed out again.
type Memory struct {
	mu         sync.Mutex
	users      map[string]models.User
	complaints map[uint]models.Complaint
	sessions   map[string]string
	nextID     uint

	// Events records every published status event, newest last.
	Events []models.StatusEvent
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]models.User),
		complaints: make(map[uint]models.Complaint),
		sessions:   make(map[string]string),
	}
}

func (m *Memory) SaveUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		// Mirror the GORM BeforeCreate hook.
		if err := user.BeforeCreate(nil); err != nil {
			return err
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) GetUserByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateComplaint(complaint *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	complaint.ID = m.nextID
	m.complaints[complaint.ID] = *complaint
	return nil
}

func (m *Memory) SaveComplaint(complaint *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.complaints[complaint.ID] = *complaint
	return nil
}

func (m *Memory) GetComplaintByID(id uint) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	complaint, ok := m.complaints[id]
	if !ok {
		return nil, nil
	}
	return &complaint, nil
}

func (m *Memory) ListComplaints() ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	complaints := make([]models.Complaint, 0, len(m.complaints))
	for id := uint(1); id <= m.nextID; id++ {
		if c, ok := m.complaints[id]; ok {
			complaints = append(complaints, c)
		}
	}
	return complaints, nil
}

func (m *Memory) DeleteComplaint(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.complaints, id)
	return nil
}

func (m *Memory) DeleteResolvedComplaints() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, c := range m.complaints {
		if c.Status == models.StatusResolved {
			delete(m.complaints, id)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) CountComplaintsByStatus() (map[models.Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.Status]int64)
	for _, c := range m.complaints {
		counts[c.Status]++
	}
	return counts, nil
}

func (m *Memory) SaveSession(jti, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[jti] = userID
	return nil
}

func (m *Memory) GetSession(jti string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[jti], nil
}

func (m *Memory) DeleteSession(jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, jti)
	return nil
}

func (m *Memory) PublishStatusEvent(ev models.StatusEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ev)
	return nil
}
