package wizardmock

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	domain "loan-admin-dashboard/internal/domain/wizard"
)

// Drafts is an in-memory domain.DraftRepository. Drafts are stored as JSON
// so callers can't mutate saved state through a pointer.
type Drafts struct {
	SaveFn func(ctx context.Context, d *domain.Draft, ttl time.Duration) error

	mu    sync.Mutex
	data  map[string][]byte
	Saves int
}

var _ domain.DraftRepository = (*Drafts)(nil)

func (m *Drafts) Get(_ context.Context, staffID string) (*domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[staffID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	var d domain.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *Drafts) Save(ctx context.Context, d *domain.Draft, ttl time.Duration) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d, ttl)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[d.StaffID] = raw
	m.Saves++
	return nil
}

func (m *Drafts) Delete(_ context.Context, staffID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, staffID)
	return nil
}
