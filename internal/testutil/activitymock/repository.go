package activitymock

import (
	"context"
	"sync"

	domain "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
)

// Repo records every created entry unless CreateFn overrides it.
type Repo struct {
	CreateFn func(ctx context.Context, e *domain.Entry) error
	ListFn   func(ctx context.Context, f domain.Filter) (*paging.Page[domain.Entry], error)

	mu      sync.Mutex
	Entries []domain.Entry
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) (*paging.Page[domain.Entry], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]domain.Entry(nil), m.Entries...)
	return &paging.Page[domain.Entry]{Items: items, Page: f.Page, Limit: f.Limit, Total: len(items)}, nil
}

// Actions returns the recorded actions in order.
func (m *Repo) Actions() []domain.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Action, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Action)
	}
	return out
}
