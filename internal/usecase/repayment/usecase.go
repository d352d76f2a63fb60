package repayment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
	domain "loan-admin-dashboard/internal/domain/repayment"
	"loan-admin-dashboard/internal/domain/rules"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/usecase/activity"
)

type Usecase struct {
	repo     domain.Repository
	activity activity.Recorder
	now      func() time.Time
}

func NewUsecase(repo domain.Repository, rec activity.Recorder) *Usecase {
	return &Usecase{repo: repo, activity: rec, now: time.Now}
}

func (u *Usecase) Filter(ctx context.Context, f domain.Filter) (*paging.Page[domain.Repayment], error) {
	f.Page, f.Limit = paging.Normalize(f.Page, f.Limit)
	f.Search = strings.TrimSpace(f.Search)
	f.LoanID = strings.TrimSpace(f.LoanID)

	var bad []apperror.FieldError
	if f.Status != "" && !validStatus(f.Status) {
		bad = append(bad, apperror.FieldError{Field: "status", Message: "unknown status"})
	}
	for _, d := range []struct{ field, value string }{{"dueFrom", f.DueFrom}, {"dueTo", f.DueTo}} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(rules.DateLayout, d.value); err != nil {
			bad = append(bad, apperror.FieldError{Field: d.field, Message: "must be a date (YYYY-MM-DD)"})
		}
	}
	if len(bad) == 0 && f.DueFrom != "" && f.DueTo != "" && f.DueFrom > f.DueTo {
		bad = append(bad, apperror.FieldError{Field: "dueTo", Message: "must not be before the start date"})
	}
	if len(bad) > 0 {
		return nil, apperror.Invalid(bad...)
	}
	return u.repo.Filter(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id string) (*domain.Repayment, error) {
	return u.repo.Get(ctx, id)
}

// Record validates the payment against the repayment's current outstanding
// amount and posts it to admin-collect.
func (u *Usecase) Record(ctx context.Context, actor staff.Staff, in domain.Collection) (*domain.Repayment, error) {
	r, err := u.repo.Get(ctx, in.RepaymentID)
	if err != nil {
		return nil, err
	}
	in = trimCollection(in)
	if err := in.Validate(r, u.now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyPaid) {
			return nil, apperror.Conflict("this repayment is already fully paid")
		}
		return nil, apperror.FromValidation(err)
	}

	out := in.Normalized()
	updated, err := u.repo.Collect(ctx, out)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionPaymentRecord, domainActivity.EntityRepayment, r.ID,
		fmt.Sprintf("amount=%s mode=%s", out.Amount.StringFixed(2), out.Mode))
	return updated, nil
}

func (u *Usecase) Waive(ctx context.Context, actor staff.Staff, id string, w domain.Waiver) (*domain.Repayment, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Reason = strings.TrimSpace(w.Reason)
	if err := w.Validate(r); err != nil {
		return nil, apperror.FromValidation(err)
	}
	updated, err := u.repo.Waive(ctx, id, w)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionLateFeeWaive, domainActivity.EntityRepayment, id,
		fmt.Sprintf("amount=%s reason=%s", w.Amount.StringFixed(2), w.Reason))
	return updated, nil
}

func trimCollection(c domain.Collection) domain.Collection {
	for _, p := range []*string{&c.UPITransactionID, &c.CardLast4, &c.TransactionID, &c.BankName,
		&c.ReceiptNumber, &c.ChequeNumber, &c.ChequeDate, &c.Remarks} {
		*p = strings.TrimSpace(*p)
	}
	c.Mode = domain.Mode(strings.ToUpper(strings.TrimSpace(string(c.Mode))))
	return c
}

func validStatus(s domain.Status) bool {
	for _, v := range domain.Statuses {
		if v == s {
			return true
		}
	}
	return false
}
