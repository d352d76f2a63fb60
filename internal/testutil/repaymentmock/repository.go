package repaymentmock

import (
	"context"
	"errors"

	"loan-admin-dashboard/internal/domain/paging"
	domain "loan-admin-dashboard/internal/domain/repayment"
)

var ErrNotStubbed = errors.New("repaymentmock: method not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	FilterFn  func(ctx context.Context, f domain.Filter) (*paging.Page[domain.Repayment], error)
	GetFn     func(ctx context.Context, id string) (*domain.Repayment, error)
	CollectFn func(ctx context.Context, in domain.Collection) (*domain.Repayment, error)
	WaiveFn   func(ctx context.Context, id string, in domain.Waiver) (*domain.Repayment, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Filter(ctx context.Context, f domain.Filter) (*paging.Page[domain.Repayment], error) {
	if m.FilterFn != nil {
		return m.FilterFn(ctx, f)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Get(ctx context.Context, id string) (*domain.Repayment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Collect(ctx context.Context, in domain.Collection) (*domain.Repayment, error) {
	if m.CollectFn != nil {
		return m.CollectFn(ctx, in)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Waive(ctx context.Context, id string, in domain.Waiver) (*domain.Repayment, error) {
	if m.WaiveFn != nil {
		return m.WaiveFn(ctx, id, in)
	}
	return nil, ErrNotStubbed
}
