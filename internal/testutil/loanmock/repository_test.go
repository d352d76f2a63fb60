package loanmock

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domain "loan-admin-dashboard/internal/domain/loan"
)

func TestRepo_Get(t *testing.T) {
	ctx := context.Background()
	want := &domain.Application{ID: "app-1"}

	// Uses provided func
	called := false
	m := &Repo{
		GetFn: func(gotCtx context.Context, id string) (*domain.Application, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Get ctx mismatch")
			}
			if id != "app-1" {
				t.Fatalf("Get arg mismatch: %s", id)
			}
			return want, nil
		},
	}
	got, err := m.Get(ctx, "app-1")
	if err != nil || got != want {
		t.Fatalf("Get: got %v, %v", got, err)
	}
	if !called {
		t.Fatalf("GetFn not called")
	}

	// Default (nil func) → ErrNotStubbed
	m = &Repo{}
	if _, err := m.Get(ctx, "app-1"); !errors.Is(err, ErrNotStubbed) {
		t.Fatalf("Get default: want ErrNotStubbed, got %v", err)
	}
	if _, err := m.List(ctx, domain.ListFilter{}); !errors.Is(err, ErrNotStubbed) {
		t.Fatalf("List default: want ErrNotStubbed, got %v", err)
	}
}

func TestRepo_WriteDefaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	a, err := m.Create(ctx, domain.CreateInput{LoanAmount: decimal.NewFromInt(50000)})
	if err != nil || a.Status != domain.StatusPending || !a.LoanAmount.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("Create default: got %+v, %v", a, err)
	}

	a, err = m.UpdateStatus(ctx, "app-2", domain.StatusUpdate{Status: domain.StatusApproved})
	if err != nil || a.ID != "app-2" || a.Status != domain.StatusApproved {
		t.Fatalf("UpdateStatus default: got %+v, %v", a, err)
	}

	a, err = m.Disburse(ctx, "app-3", domain.DisbursalInput{})
	if err != nil || a.Status != domain.StatusDisbursed {
		t.Fatalf("Disburse default: got %+v, %v", a, err)
	}

	if _, err := m.UpdateESign(ctx, "app-4", domain.ESignUpdate{Action: domain.ESignSend}); err != nil {
		t.Fatalf("UpdateESign default: %v", err)
	}
}
