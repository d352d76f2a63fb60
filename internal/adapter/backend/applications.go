package backend

import (
	"context"
	"net/http"

	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/paging"
)

type Applications struct{ c *Client }

var _ loan.Repository = (*Applications)(nil)

func (a *Applications) List(ctx context.Context, f loan.ListFilter) (*paging.Page[loan.Application], error) {
	q := pageQuery(f.Page, f.Limit)
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var items []loan.Application
	meta, err := a.c.do(ctx, call{endpoint: "loan-application.list", method: http.MethodGet, path: "loan-application", query: q}, &items)
	if err != nil {
		return nil, err
	}
	page, limit := paging.Normalize(f.Page, f.Limit)
	return pageOf(items, meta, page, limit), nil
}

func (a *Applications) Get(ctx context.Context, id string) (*loan.Application, error) {
	var out loan.Application
	if _, err := a.c.do(ctx, call{endpoint: "loan-application.get", method: http.MethodGet, path: pathOf("loan-application", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Applications) Create(ctx context.Context, in loan.CreateInput) (*loan.Application, error) {
	var out loan.Application
	if _, err := a.c.do(ctx, call{endpoint: "loan-application.create", method: http.MethodPost, path: "loan-application", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Applications) UpdateStatus(ctx context.Context, id string, in loan.StatusUpdate) (*loan.Application, error) {
	return a.put(ctx, "loan-application.status", pathOf("loan-application", id, "status"), in)
}

func (a *Applications) UpdateESign(ctx context.Context, id string, in loan.ESignUpdate) (*loan.Application, error) {
	return a.put(ctx, "loan-application.esign", pathOf("loan-application", id, "esign"), in)
}

func (a *Applications) Disburse(ctx context.Context, id string, in loan.DisbursalInput) (*loan.Application, error) {
	return a.put(ctx, "loan-application.disburse", pathOf("loan-application", id, "disburse"), in)
}

func (a *Applications) put(ctx context.Context, endpoint, path string, body any) (*loan.Application, error) {
	var out loan.Application
	if _, err := a.c.do(ctx, call{endpoint: endpoint, method: http.MethodPut, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
