// Package application serves the loan application pages: listing, detail
// and the status actions staff take on an application.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	domainApproval "loan-admin-dashboard/internal/domain/approval"
	domainLoan "loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/usecase/activity"
)

type Usecase struct {
	loans    domainLoan.Repository
	activity activity.Recorder
	now      func() time.Time
}

func NewUsecase(loans domainLoan.Repository, rec activity.Recorder) *Usecase {
	return &Usecase{loans: loans, activity: rec, now: time.Now}
}

func (u *Usecase) List(ctx context.Context, f domainLoan.ListFilter) (*paging.Page[domainLoan.Application], error) {
	f.Page, f.Limit = paging.Normalize(f.Page, f.Limit)
	f.Search = strings.TrimSpace(f.Search)
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperror.Validation("unknown application status " + string(f.Status))
	}
	return u.loans.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id string) (*domainLoan.Application, error) {
	return u.loans.Get(ctx, id)
}

// Decide applies an approve / approve-with-condition / reject / review
// decision. Actions not offered for the current status never reach the
// backend.
func (u *Usecase) Decide(ctx context.Context, actor staff.Staff, id string, d domainApproval.Decision) (*domainLoan.Application, error) {
	app, err := u.loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(app); err != nil {
		return nil, actionError(app, err)
	}

	updated, err := u.loans.UpdateStatus(ctx, id, d.ToUpdate())
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionApplicationStatus, domainActivity.EntityApplication, id,
		fmt.Sprintf("%s -> %s", app.Status, d.Status))
	return updated, nil
}

func (u *Usecase) ESign(ctx context.Context, actor staff.Staff, id string, r domainApproval.ESignRequest) (*domainLoan.Application, error) {
	app, err := u.loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.DocumentURL = strings.TrimSpace(r.DocumentURL)
	if err := r.Validate(app); err != nil {
		return nil, actionError(app, err)
	}

	updated, err := u.loans.UpdateESign(ctx, id, domainLoan.ESignUpdate{Action: r.Action, DocumentURL: r.DocumentURL})
	if err != nil {
		return nil, err
	}
	action := domainActivity.ActionESignSend
	if r.Action == domainLoan.ESignComplete {
		action = domainActivity.ActionESignComplete
	}
	u.activity.Record(ctx, actor, action, domainActivity.EntityApplication, id, r.DocumentURL)
	return updated, nil
}

func (u *Usecase) Disburse(ctx context.Context, actor staff.Staff, id string, r domainApproval.DisbursalRequest) (*domainLoan.Application, error) {
	app, err := u.loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r = r.WithDefaults(app)
	if err := r.Validate(app, u.now()); err != nil {
		return nil, actionError(app, err)
	}

	updated, err := u.loans.Disburse(ctx, id, r.ToInput())
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionDisburse, domainActivity.EntityApplication, id,
		fmt.Sprintf("utr=%s amount=%s", r.UTR, r.Amount.StringFixed(2)))
	return updated, nil
}

func actionError(app *domainLoan.Application, err error) error {
	if errors.Is(err, domainApproval.ErrActionNotAllowed) {
		return apperror.Validation("this action is not available while the application is "+app.Status.Label()).
			WithField("status", app.Status)
	}
	return apperror.FromValidation(err)
}
