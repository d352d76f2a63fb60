package loanmock

import (
	"context"
	"errors"

	domain "loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/paging"
)

var ErrNotStubbed = errors.New("loanmock: method not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
// Reads without a stub fail; writes without a stub echo a minimal result.
type Repo struct {
	ListFn         func(ctx context.Context, f domain.ListFilter) (*paging.Page[domain.Application], error)
	GetFn          func(ctx context.Context, id string) (*domain.Application, error)
	CreateFn       func(ctx context.Context, in domain.CreateInput) (*domain.Application, error)
	UpdateStatusFn func(ctx context.Context, id string, in domain.StatusUpdate) (*domain.Application, error)
	UpdateESignFn  func(ctx context.Context, id string, in domain.ESignUpdate) (*domain.Application, error)
	DisburseFn     func(ctx context.Context, id string, in domain.DisbursalInput) (*domain.Application, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) List(ctx context.Context, f domain.ListFilter) (*paging.Page[domain.Application], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Get(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Create(ctx context.Context, in domain.CreateInput) (*domain.Application, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return &domain.Application{ID: "new", Status: domain.StatusPending, LoanAmount: in.LoanAmount}, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, in domain.StatusUpdate) (*domain.Application, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, in)
	}
	return &domain.Application{ID: id, Status: in.Status}, nil
}

func (m *Repo) UpdateESign(ctx context.Context, id string, in domain.ESignUpdate) (*domain.Application, error) {
	if m.UpdateESignFn != nil {
		return m.UpdateESignFn(ctx, id, in)
	}
	return &domain.Application{ID: id}, nil
}

func (m *Repo) Disburse(ctx context.Context, id string, in domain.DisbursalInput) (*domain.Application, error) {
	if m.DisburseFn != nil {
		return m.DisburseFn(ctx, id, in)
	}
	return &domain.Application{ID: id, Status: domain.StatusDisbursed}, nil
}
