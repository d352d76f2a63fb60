package activity

import (
	"context"

	"loan-admin-dashboard/internal/domain/paging"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) (*paging.Page[Entry], error)
}
