package borrower

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	domain "loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/testutil/activitymock"
	"loan-admin-dashboard/internal/testutil/borrowermock"
	"loan-admin-dashboard/internal/usecase/activity"
)

var actor = staff.Staff{ID: "st-5", Email: "kyc@lender.in"}

func newUsecase(repo *borrowermock.Repo) (*Usecase, *activitymock.Repo) {
	rec := &activitymock.Repo{}
	u := NewUsecase(repo, activity.NewUsecase(rec))
	u.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return u, rec
}

func validProfile() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name: "Asha Verma", Email: "asha@example.in", Mobile: "9876543210",
		DOB: "1991-08-30", Gender: domain.GenderFemale, PAN: "ABCDE1234F",
	}
}

func TestUsecase_List(t *testing.T) {
	yes := true
	var got domain.ListFilter
	u, _ := newUsecase(&borrowermock.Repo{ListFn: func(_ context.Context, f domain.ListFilter) (*paging.Page[domain.Borrower], error) {
		got = f
		return &paging.Page[domain.Borrower]{}, nil
	}})
	_, err := u.List(context.Background(), domain.ListFilter{Search: " 98765 ", KYCVerified: &yes})
	require.NoError(t, err)
	assert.Equal(t, "98765", got.Search)
	assert.Equal(t, paging.DefaultLimit, got.Limit)
	require.NotNil(t, got.KYCVerified)
	assert.True(t, *got.KYCVerified)
}

func TestUsecase_UpdateProfile_InvalidEmailNeverCallsBackend(t *testing.T) {
	called := false
	u, rec := newUsecase(&borrowermock.Repo{UpdateProfileFn: func(context.Context, string, domain.ProfileUpdate) (*domain.Borrower, error) {
		called = true
		return &domain.Borrower{}, nil
	}})

	in := validProfile()
	in.Email = "asha.example.in"
	_, err := u.UpdateProfile(context.Background(), actor, "b-1", in)
	require.Error(t, err)
	ae := apperror.As(err)
	assert.Equal(t, apperror.TypeValidation, ae.Type)
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "email", ae.Fields[0].Field)
	assert.False(t, called)
	assert.Empty(t, rec.Entries)
}

func TestUsecase_UpdateProfile(t *testing.T) {
	var sent domain.ProfileUpdate
	u, rec := newUsecase(&borrowermock.Repo{UpdateProfileFn: func(_ context.Context, id string, in domain.ProfileUpdate) (*domain.Borrower, error) {
		sent = in
		return &domain.Borrower{ID: id, Name: in.Name}, nil
	}})

	in := validProfile()
	in.PAN = "abcde1234f"
	b, err := u.UpdateProfile(context.Background(), actor, "b-1", in)
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, "ABCDE1234F", sent.PAN)
	assert.Equal(t, []domainActivity.Action{domainActivity.ActionProfileUpdate}, rec.Actions())
}

func TestUsecase_ReviewDocument(t *testing.T) {
	profile := &domain.Borrower{ID: "b-1", Documents: []domain.KYCDocument{
		{ID: "d-1", Type: domain.DocPAN, Status: domain.DocPending},
		{ID: "d-2", Type: domain.DocPhoto, Status: domain.DocVerified},
	}}
	reviewed := 0
	repo := &borrowermock.Repo{
		GetProfileFn: func(context.Context, string) (*domain.Borrower, error) { return profile, nil },
		ReviewDocumentFn: func(_ context.Context, bid, did string, in domain.DocumentReview) (*domain.Borrower, error) {
			reviewed++
			return profile, nil
		},
	}
	u, rec := newUsecase(repo)
	ctx := context.Background()

	_, err := u.ReviewDocument(ctx, actor, "b-1", "d-1", domain.DocumentReview{Status: domain.DocRejected})
	assert.True(t, apperror.IsType(err, apperror.TypeValidation))

	_, err = u.ReviewDocument(ctx, actor, "b-1", "d-9", domain.DocumentReview{Status: domain.DocVerified})
	assert.True(t, apperror.IsType(err, apperror.TypeNotFound))

	_, err = u.ReviewDocument(ctx, actor, "b-1", "d-2", domain.DocumentReview{Status: domain.DocVerified})
	assert.True(t, apperror.IsType(err, apperror.TypeConflict))

	_, err = u.ReviewDocument(ctx, actor, "b-1", "d-1", domain.DocumentReview{Status: domain.DocRejected, Reason: "name mismatch"})
	require.NoError(t, err)
	assert.Equal(t, 1, reviewed)
	assert.Equal(t, []domainActivity.Action{domainActivity.ActionKYCReview}, rec.Actions())
}

func TestUsecase_AttachDocument(t *testing.T) {
	var sent domain.NewDocument
	u, rec := newUsecase(&borrowermock.Repo{AttachDocumentFn: func(_ context.Context, id string, in domain.NewDocument) (*domain.Borrower, error) {
		sent = in
		return &domain.Borrower{ID: id}, nil
	}})

	_, err := u.AttachDocument(context.Background(), actor, "b-1", domain.NewDocument{Type: "VISA", URL: "https://x/y.png"})
	assert.True(t, apperror.IsType(err, apperror.TypeValidation))

	_, err = u.AttachDocument(context.Background(), actor, "b-1", domain.NewDocument{Type: domain.DocAadhaar, URL: " https://cdn.lender.in/kyc/a.png "})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.lender.in/kyc/a.png", sent.URL)
	assert.Len(t, rec.Entries, 1)
}

func TestUsecase_UpdateFlags(t *testing.T) {
	u, rec := newUsecase(&borrowermock.Repo{UpdateFlagsFn: func(_ context.Context, id string, in domain.Flags) (*domain.Borrower, error) {
		return &domain.Borrower{ID: id, Active: in.Active, Blacklisted: in.Blacklisted}, nil
	}})
	b, err := u.UpdateFlags(context.Background(), actor, "b-1", domain.Flags{Active: false, Blacklisted: true})
	require.NoError(t, err)
	assert.True(t, b.Blacklisted)
	assert.Equal(t, "active=false blacklisted=true", rec.Entries[0].Details)

	u, rec = newUsecase(&borrowermock.Repo{UpdateFlagsFn: func(context.Context, string, domain.Flags) (*domain.Borrower, error) {
		return nil, apperror.Forbidden("only admins can blacklist")
	}})
	_, err = u.UpdateFlags(context.Background(), actor, "b-1", domain.Flags{Blacklisted: true})
	assert.True(t, apperror.IsType(err, apperror.TypeForbidden))
	assert.Empty(t, rec.Entries)
}
