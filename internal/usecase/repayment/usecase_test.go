package repayment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
	domain "loan-admin-dashboard/internal/domain/repayment"
	"loan-admin-dashboard/internal/domain/rules"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/testutil/activitymock"
	"loan-admin-dashboard/internal/testutil/repaymentmock"
	"loan-admin-dashboard/internal/usecase/activity"
)

var (
	actor = staff.Staff{ID: "st-8", Email: "collections@lender.in"}
	now   = time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func overdue() *domain.Repayment {
	return &domain.Repayment{
		ID:                  "rp-1",
		DueLoanAmount:       dec("8500"),
		LateFeeCharged:      dec("500"),
		WaivedLateFeeAmount: dec("200"),
		AmountPaid:          dec("1000"),
		Status:              domain.StatusOverdue,
	}
}

func newUsecase(repo *repaymentmock.Repo) (*Usecase, *activitymock.Repo) {
	rec := &activitymock.Repo{}
	u := NewUsecase(repo, activity.NewUsecase(rec))
	u.now = func() time.Time { return now }
	return u, rec
}

func TestUsecase_Filter(t *testing.T) {
	var got domain.Filter
	u, _ := newUsecase(&repaymentmock.Repo{FilterFn: func(_ context.Context, f domain.Filter) (*paging.Page[domain.Repayment], error) {
		got = f
		return &paging.Page[domain.Repayment]{}, nil
	}})

	_, err := u.Filter(context.Background(), domain.Filter{Status: domain.StatusOverdue, DueFrom: "2025-09-01", DueTo: "2025-09-30"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)

	_, err = u.Filter(context.Background(), domain.Filter{DueFrom: "01/09/2025"})
	assert.Equal(t, "dueFrom", apperror.As(err).Fields[0].Field)

	_, err = u.Filter(context.Background(), domain.Filter{DueFrom: "2025-09-30", DueTo: "2025-09-01"})
	assert.Equal(t, "dueTo", apperror.As(err).Fields[0].Field)

	_, err = u.Filter(context.Background(), domain.Filter{Status: "LATE"})
	assert.True(t, apperror.IsType(err, apperror.TypeValidation))
}

func TestUsecase_Record(t *testing.T) {
	base := domain.Collection{RepaymentID: "rp-1", Amount: dec("2000"), PaidAt: now.Add(-time.Hour)}

	tests := []struct {
		name      string
		in        func() domain.Collection
		repayment func() *domain.Repayment
		wantType  apperror.Type
		wantField string
	}{
		{
			name: "upi ok",
			in: func() domain.Collection {
				c := base
				c.Mode, c.UPITransactionID = "upi", "412345678901"
				return c
			},
		},
		{
			name: "card needs last4 and txn id",
			in: func() domain.Collection {
				c := base
				c.Mode, c.CardLast4 = domain.ModeCard, "12a4"
				return c
			},
			wantType:  apperror.TypeValidation,
			wantField: "cardLast4",
		},
		{
			name: "cheque ok",
			in: func() domain.Collection {
				c := base
				c.Mode, c.ChequeNumber, c.BankName, c.ChequeDate = domain.ModeCheque, "004512", "SBI", "2025-09-08"
				return c
			},
		},
		{
			name: "above outstanding",
			in: func() domain.Collection {
				c := base
				c.Mode, c.ReceiptNumber, c.Amount = domain.ModeCash, "RCPT-11", dec("7800.01")
				return c
			},
			wantType:  apperror.TypeValidation,
			wantField: "amount",
		},
		{
			name: "paid repayment",
			in: func() domain.Collection {
				c := base
				c.Mode, c.ReceiptNumber = domain.ModeCash, "RCPT-12"
				return c
			},
			repayment: func() *domain.Repayment {
				r := overdue()
				r.Status = domain.StatusPaid
				return r
			},
			wantType: apperror.TypeConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sent *domain.Collection
			repo := &repaymentmock.Repo{
				GetFn: func(context.Context, string) (*domain.Repayment, error) {
					if tc.repayment != nil {
						return tc.repayment(), nil
					}
					return overdue(), nil
				},
				CollectFn: func(_ context.Context, in domain.Collection) (*domain.Repayment, error) {
					sent = &in
					return overdue(), nil
				},
			}
			u, rec := newUsecase(repo)

			_, err := u.Record(context.Background(), actor, tc.in())
			if tc.wantType != "" {
				require.Error(t, err)
				ae := apperror.As(err)
				assert.Equal(t, tc.wantType, ae.Type)
				if tc.wantField != "" {
					require.NotEmpty(t, ae.Fields)
					assert.Equal(t, tc.wantField, ae.Fields[0].Field)
				}
				assert.Nil(t, sent)
				assert.Empty(t, rec.Entries)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sent)
			assert.Equal(t, []domainActivity.Action{domainActivity.ActionPaymentRecord}, rec.Actions())
		})
	}
}

func TestUsecase_Record_DropsForeignModeFields(t *testing.T) {
	var sent domain.Collection
	u, _ := newUsecase(&repaymentmock.Repo{
		GetFn: func(context.Context, string) (*domain.Repayment, error) { return overdue(), nil },
		CollectFn: func(_ context.Context, in domain.Collection) (*domain.Repayment, error) {
			sent = in
			return overdue(), nil
		},
	})
	_, err := u.Record(context.Background(), actor, domain.Collection{
		RepaymentID: "rp-1", Amount: dec("7800"), Mode: domain.ModeCash, ReceiptNumber: "R-1",
		ChequeNumber: "123456", UPITransactionID: "stale-upi", PaidAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "R-1", sent.ReceiptNumber)
	assert.Empty(t, sent.ChequeNumber)
	assert.Empty(t, sent.UPITransactionID)
}

func TestUsecase_Record_TodayInBusinessZone(t *testing.T) {
	var sent *domain.Collection
	u, _ := newUsecase(&repaymentmock.Repo{
		GetFn: func(context.Context, string) (*domain.Repayment, error) { return overdue(), nil },
		CollectFn: func(_ context.Context, in domain.Collection) (*domain.Repayment, error) {
			sent = &in
			return overdue(), nil
		},
	})
	// already 11 Sep in Asia/Kolkata
	u.now = func() time.Time { return time.Date(2025, 9, 10, 20, 0, 0, 0, time.UTC) }

	today, err := rules.ParseDate("2025-09-11")
	require.NoError(t, err)
	in := domain.Collection{RepaymentID: "rp-1", Amount: dec("500"), Mode: domain.ModeCash, ReceiptNumber: "R-2", PaidAt: today}
	_, err = u.Record(context.Background(), actor, in)
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.True(t, sent.PaidAt.Equal(today))

	sent = nil
	in.PaidAt, err = rules.ParseDate("2025-09-12")
	require.NoError(t, err)
	_, err = u.Record(context.Background(), actor, in)
	require.Error(t, err)
	assert.Equal(t, "paidAt", apperror.As(err).Fields[0].Field)
	assert.Nil(t, sent)
}

func TestUsecase_Waive(t *testing.T) {
	waived := false
	u, rec := newUsecase(&repaymentmock.Repo{
		GetFn: func(context.Context, string) (*domain.Repayment, error) { return overdue(), nil },
		WaiveFn: func(_ context.Context, id string, w domain.Waiver) (*domain.Repayment, error) {
			waived = true
			return overdue(), nil
		},
	})
	ctx := context.Background()

	// remaining late fee is 500 - 200 = 300
	_, err := u.Waive(ctx, actor, "rp-1", domain.Waiver{Amount: dec("300.01"), Reason: "customer hardship"})
	require.Error(t, err)
	assert.Equal(t, "amount", apperror.As(err).Fields[0].Field)
	assert.False(t, waived)

	_, err = u.Waive(ctx, actor, "rp-1", domain.Waiver{Amount: dec("300"), Reason: "  "})
	assert.Equal(t, "reason", apperror.As(err).Fields[0].Field)

	_, err = u.Waive(ctx, actor, "rp-1", domain.Waiver{Amount: dec("300"), Reason: "customer hardship"})
	require.NoError(t, err)
	assert.True(t, waived)
	assert.Equal(t, []domainActivity.Action{domainActivity.ActionLateFeeWaive}, rec.Actions())
}
