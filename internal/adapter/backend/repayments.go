package backend

import (
	"context"
	"net/http"

	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/repayment"
)

type Repayments struct{ c *Client }

var _ repayment.Repository = (*Repayments)(nil)

// Filter is a POST so date ranges and search travel in the body.
func (r *Repayments) Filter(ctx context.Context, f repayment.Filter) (*paging.Page[repayment.Repayment], error) {
	f.Page, f.Limit = paging.Normalize(f.Page, f.Limit)
	var items []repayment.Repayment
	meta, err := r.c.do(ctx, call{endpoint: "repayment.filter", method: http.MethodPost, path: "repayment/filter", body: f}, &items)
	if err != nil {
		return nil, err
	}
	return pageOf(items, meta, f.Page, f.Limit), nil
}

func (r *Repayments) Get(ctx context.Context, id string) (*repayment.Repayment, error) {
	return r.send(ctx, call{endpoint: "repayment.get", method: http.MethodGet, path: pathOf("repayment", id)})
}

func (r *Repayments) Collect(ctx context.Context, in repayment.Collection) (*repayment.Repayment, error) {
	return r.send(ctx, call{endpoint: "repayment.collect", method: http.MethodPost, path: "repayment/admin-collect", body: in})
}

func (r *Repayments) Waive(ctx context.Context, id string, in repayment.Waiver) (*repayment.Repayment, error) {
	return r.send(ctx, call{endpoint: "repayment.waive", method: http.MethodPut, path: pathOf("repayment", id, "waive"), body: in})
}

func (r *Repayments) send(ctx context.Context, cl call) (*repayment.Repayment, error) {
	var out repayment.Repayment
	if _, err := r.c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
