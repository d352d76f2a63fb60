package borrower

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	domain "loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/paging"
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

func (u *Usecase) List(ctx context.Context, f domain.ListFilter) (*paging.Page[domain.Borrower], error) {
	f.Page, f.Limit = paging.Normalize(f.Page, f.Limit)
	f.Search = strings.TrimSpace(f.Search)
	return u.repo.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id string) (*domain.Borrower, error) {
	return u.repo.GetProfile(ctx, id)
}

// UpdateProfile validates locally; an invalid form never reaches the backend.
func (u *Usecase) UpdateProfile(ctx context.Context, actor staff.Staff, id string, in domain.ProfileUpdate) (*domain.Borrower, error) {
	in = in.Normalized()
	if err := in.Validate(u.now()); err != nil {
		return nil, apperror.FromValidation(err)
	}
	b, err := u.repo.UpdateProfile(ctx, id, in)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionProfileUpdate, domainActivity.EntityBorrower, id, "")
	return b, nil
}

func (u *Usecase) ReviewDocument(ctx context.Context, actor staff.Staff, borrowerID, documentID string, in domain.DocumentReview) (*domain.Borrower, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Status == domain.DocVerified {
		in.Reason = ""
	}
	if err := in.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	current, err := u.repo.GetProfile(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	doc, ok := current.Document(documentID)
	if !ok {
		return nil, apperror.NotFound("document not found for this borrower").WithField("document_id", documentID)
	}
	if doc.Status == in.Status {
		return nil, apperror.Conflict("document is already " + strings.ToLower(string(in.Status)))
	}

	b, err := u.repo.ReviewDocument(ctx, borrowerID, documentID, in)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionKYCReview, domainActivity.EntityBorrower, borrowerID,
		fmt.Sprintf("document=%s type=%s status=%s", documentID, doc.Type, in.Status))
	return b, nil
}

func (u *Usecase) AttachDocument(ctx context.Context, actor staff.Staff, borrowerID string, in domain.NewDocument) (*domain.Borrower, error) {
	in.URL = strings.TrimSpace(in.URL)
	if err := in.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}
	b, err := u.repo.AttachDocument(ctx, borrowerID, in)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionKYCAttach, domainActivity.EntityBorrower, borrowerID,
		fmt.Sprintf("type=%s url=%s", in.Type, in.URL))
	return b, nil
}

func (u *Usecase) UpdateFlags(ctx context.Context, actor staff.Staff, id string, in domain.Flags) (*domain.Borrower, error) {
	b, err := u.repo.UpdateFlags(ctx, id, in)
	if err != nil {
		return nil, err
	}
	u.activity.Record(ctx, actor, domainActivity.ActionFlagsUpdate, domainActivity.EntityBorrower, id,
		fmt.Sprintf("active=%t blacklisted=%t", in.Active, in.Blacklisted))
	return b, nil
}
