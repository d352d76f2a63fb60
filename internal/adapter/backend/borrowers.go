package backend

import (
	"context"
	"net/http"
	"strconv"

	"loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/paging"
)

type Borrowers struct{ c *Client }

var _ borrower.Repository = (*Borrowers)(nil)

func (b *Borrowers) List(ctx context.Context, f borrower.ListFilter) (*paging.Page[borrower.Borrower], error) {
	q := pageQuery(f.Page, f.Limit)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	setBool := func(k string, v *bool) {
		if v != nil {
			q.Set(k, strconv.FormatBool(*v))
		}
	}
	setBool("active", f.Active)
	setBool("blacklisted", f.Blacklisted)
	setBool("kycVerified", f.KYCVerified)

	var items []borrower.Borrower
	meta, err := b.c.do(ctx, call{endpoint: "borrower.list", method: http.MethodGet, path: "borrower", query: q}, &items)
	if err != nil {
		return nil, err
	}
	page, limit := paging.Normalize(f.Page, f.Limit)
	return pageOf(items, meta, page, limit), nil
}

func (b *Borrowers) GetProfile(ctx context.Context, id string) (*borrower.Borrower, error) {
	return b.send(ctx, call{endpoint: "borrower.profile.get", method: http.MethodGet, path: pathOf("borrower", id, "profile")})
}

func (b *Borrowers) UpdateProfile(ctx context.Context, id string, in borrower.ProfileUpdate) (*borrower.Borrower, error) {
	return b.send(ctx, call{endpoint: "borrower.profile.update", method: http.MethodPut, path: pathOf("borrower", id, "profile"), body: in})
}

func (b *Borrowers) ReviewDocument(ctx context.Context, borrowerID, documentID string, in borrower.DocumentReview) (*borrower.Borrower, error) {
	return b.send(ctx, call{endpoint: "borrower.kyc.review", method: http.MethodPut, path: pathOf("borrower", borrowerID, "kyc", documentID), body: in})
}

func (b *Borrowers) AttachDocument(ctx context.Context, borrowerID string, in borrower.NewDocument) (*borrower.Borrower, error) {
	return b.send(ctx, call{endpoint: "borrower.kyc.attach", method: http.MethodPost, path: pathOf("borrower", borrowerID, "kyc"), body: in})
}

func (b *Borrowers) UpdateFlags(ctx context.Context, id string, in borrower.Flags) (*borrower.Borrower, error) {
	return b.send(ctx, call{endpoint: "borrower.flags", method: http.MethodPut, path: pathOf("borrower", id, "flags"), body: in})
}

func (b *Borrowers) send(ctx context.Context, cl call) (*borrower.Borrower, error) {
	var out borrower.Borrower
	if _, err := b.c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
