package loan

import (
	"context"

	"loan-admin-dashboard/internal/domain/paging"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) (*paging.Page[Application], error)
	Get(ctx context.Context, id string) (*Application, error)
	Create(ctx context.Context, in CreateInput) (*Application, error)
	UpdateStatus(ctx context.Context, id string, in StatusUpdate) (*Application, error)
	UpdateESign(ctx context.Context, id string, in ESignUpdate) (*Application, error)
	Disburse(ctx context.Context, id string, in DisbursalInput) (*Application, error)
}
