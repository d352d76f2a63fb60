package repayment

import (
	"context"

	"loan-admin-dashboard/internal/domain/paging"
)

type Repository interface {
	Filter(ctx context.Context, f Filter) (*paging.Page[Repayment], error)
	Get(ctx context.Context, id string) (*Repayment, error)
	Collect(ctx context.Context, in Collection) (*Repayment, error)
	Waive(ctx context.Context, id string, in Waiver) (*Repayment, error)
}
