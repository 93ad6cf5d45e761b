package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo    *mockUserRepo
	SessionRepo *mockSessionRepo
	AppRepo     *mockApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:    &mockUserRepo{},
		SessionRepo: &mockSessionRepo{Sessions: map[string]*models.Session{}},
		AppRepo:     &mockApplicationRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	LookupErr error
	CreateErr error
}

func (m *mockUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && (m.Stored.Username == identifier || m.Stored.Email == identifier) {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Username: u.Username, Email: u.Email, Role: u.Role, PasswordHash: u.PasswordHash}
	return 1, nil
}

// mockSessionRepo is safe for concurrent use: the session janitor runs on
// its own goroutine in some tests.
type mockSessionRepo struct {
	mu        sync.Mutex
	Sessions  map[string]*models.Session
	CreateErr error
	GetErr    error
	DeleteErr error
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, s *models.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.Sessions[s.Token] = &cp
	return nil
}

func (m *mockSessionRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, token)
	return nil
}

func (m *mockSessionRepo) DeleteExpiredSessions(ctx context.Context, cutoff int64) (int64, error) {
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.Sessions {
		if s.Expires <= cutoff {
			delete(m.Sessions, token)
			n++
		}
	}
	return n, nil
}

type mockApplicationRepo struct {
	Apps      []models.Application
	CreateErr error
	ListErr   error
	nextID    int64
}

func (m *mockApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	if cp.AppliedAt == 0 {
		cp.AppliedAt = m.nextID
	}
	m.Apps = append(m.Apps, cp)
	return cp.ID, nil
}

func (m *mockApplicationRepo) ListAll(ctx context.Context) ([]models.Application, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return newestFirst(m.Apps), nil
}

func (m *mockApplicationRepo) ListByOwner(ctx context.Context, userID int64, email string) ([]models.Application, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Application
	for _, a := range m.Apps {
		if (a.UserID != nil && *a.UserID == userID) || a.Email == email {
			out = append(out, a)
		}
	}
	return newestFirst(out), nil
}

func newestFirst(apps []models.Application) []models.Application {
	out := make([]models.Application, len(apps))
	copy(out, apps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt > out[j].AppliedAt })
	return out
}
