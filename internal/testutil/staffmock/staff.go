package staffmock

import (
	"context"
	"sync"
	"time"

	domain "loan-admin-dashboard/internal/domain/staff"
)

// Sessions is an in-memory domain.SessionRepository.
type Sessions struct {
	CreateFn func(ctx context.Context, s *domain.Session, ttl time.Duration) error

	mu   sync.Mutex
	data map[string]domain.Session
}

var _ domain.SessionRepository = (*Sessions)(nil)

func (m *Sessions) Create(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]domain.Session)
	}
	m.data[s.ID] = *s
	return nil
}

func (m *Sessions) Get(_ context.Context, id string, _ time.Duration) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *Sessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Authenticator is a function-backed domain.Authenticator.
type Authenticator struct {
	LoginFn  func(ctx context.Context, c domain.Credentials) (*domain.LoginResult, error)
	LogoutFn func(ctx context.Context) error
}

var _ domain.Authenticator = (*Authenticator)(nil)

func (m *Authenticator) Login(ctx context.Context, c domain.Credentials) (*domain.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, c)
	}
	return &domain.LoginResult{Token: "token", Staff: domain.Staff{ID: "st-1", Email: c.Email}}, nil
}

func (m *Authenticator) Logout(ctx context.Context) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return nil
}
