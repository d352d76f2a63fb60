package activity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/metrics"
	"loan-admin-dashboard/internal/testutil/activitymock"
	"loan-admin-dashboard/pkg/id"
)

var actor = staff.Staff{ID: "st-7", Email: "ops@lender.in"}

func TestUsecase_Record(t *testing.T) {
	repo := &activitymock.Repo{}
	u := NewUsecase(repo)

	u.Record(context.Background(), actor, domain.ActionPaymentRecord, domain.EntityRepayment, "rp-1", strings.Repeat("x", 2500))

	require.Len(t, repo.Entries, 1)
	e := repo.Entries[0]
	assert.True(t, id.IsID32(e.ActivityID))
	assert.Equal(t, "st-7", e.StaffID)
	assert.Equal(t, "ops@lender.in", e.StaffEmail)
	assert.Equal(t, domain.EntityRepayment, e.EntityType)
	assert.Len(t, e.Details, 2000)
}

func TestUsecase_Record_FailureIsSwallowed(t *testing.T) {
	repo := &activitymock.Repo{CreateFn: func(context.Context, *domain.Entry) error {
		return errors.New("db down")
	}}
	u := NewUsecase(repo)

	before := testutil.ToFloat64(metrics.ActivityWriteFailures)
	u.Record(context.Background(), actor, domain.ActionLogin, domain.EntityStaff, actor.ID, "")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActivityWriteFailures))
}

func TestUsecase_List_NormalizesFilter(t *testing.T) {
	var got domain.Filter
	repo := &activitymock.Repo{}
	repo.ListFn = func(_ context.Context, f domain.Filter) (*paging.Page[domain.Entry], error) {
		got = f
		return &paging.Page[domain.Entry]{Page: f.Page, Limit: f.Limit}, nil
	}
	u := NewUsecase(repo)

	_, err := u.List(context.Background(), domain.Filter{EntityType: "planet", EntityID: " b-1 ", Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityType(""), got.EntityType)
	assert.Equal(t, "b-1", got.EntityID)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 100, got.Limit)

	_, err = u.List(context.Background(), domain.Filter{EntityType: domain.EntityBorrower})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityBorrower, got.EntityType)
}
