package borrower

import (
	"context"

	"loan-admin-dashboard/internal/domain/paging"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) (*paging.Page[Borrower], error)
	GetProfile(ctx context.Context, id string) (*Borrower, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*Borrower, error)
	ReviewDocument(ctx context.Context, borrowerID, documentID string, in DocumentReview) (*Borrower, error)
	AttachDocument(ctx context.Context, borrowerID string, in NewDocument) (*Borrower, error)
	UpdateFlags(ctx context.Context, id string, in Flags) (*Borrower, error)
}
