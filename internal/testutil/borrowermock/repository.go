package borrowermock

import (
	"context"
	"errors"

	domain "loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/paging"
)

var ErrNotStubbed = errors.New("borrowermock: method not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListFn           func(ctx context.Context, f domain.ListFilter) (*paging.Page[domain.Borrower], error)
	GetProfileFn     func(ctx context.Context, id string) (*domain.Borrower, error)
	UpdateProfileFn  func(ctx context.Context, id string, in domain.ProfileUpdate) (*domain.Borrower, error)
	ReviewDocumentFn func(ctx context.Context, borrowerID, documentID string, in domain.DocumentReview) (*domain.Borrower, error)
	AttachDocumentFn func(ctx context.Context, borrowerID string, in domain.NewDocument) (*domain.Borrower, error)
	UpdateFlagsFn    func(ctx context.Context, id string, in domain.Flags) (*domain.Borrower, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) List(ctx context.Context, f domain.ListFilter) (*paging.Page[domain.Borrower], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) GetProfile(ctx context.Context, id string) (*domain.Borrower, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) UpdateProfile(ctx context.Context, id string, in domain.ProfileUpdate) (*domain.Borrower, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, in)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) ReviewDocument(ctx context.Context, borrowerID, documentID string, in domain.DocumentReview) (*domain.Borrower, error) {
	if m.ReviewDocumentFn != nil {
		return m.ReviewDocumentFn(ctx, borrowerID, documentID, in)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) AttachDocument(ctx context.Context, borrowerID string, in domain.NewDocument) (*domain.Borrower, error) {
	if m.AttachDocumentFn != nil {
		return m.AttachDocumentFn(ctx, borrowerID, in)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) UpdateFlags(ctx context.Context, id string, in domain.Flags) (*domain.Borrower, error) {
	if m.UpdateFlagsFn != nil {
		return m.UpdateFlagsFn(ctx, id, in)
	}
	return nil, ErrNotStubbed
}
