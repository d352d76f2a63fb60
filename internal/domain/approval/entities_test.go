package approval

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-admin-dashboard/internal/domain/loan"
)

func app(status loan.Status) *loan.Application {
	return &loan.Application{ID: "a1", Status: status, LoanAmount: decimal.NewFromInt(200000)}
}

func fieldErr(t *testing.T, err error, field string) {
	t.Helper()
	var ve validation.Errors
	require.True(t, errors.As(err, &ve), "want validation.Errors, got %v", err)
	assert.Contains(t, ve, field)
}

func TestDecision_Transitions(t *testing.T) {
	err := Decision{Status: loan.StatusApproved}.Validate(app(loan.StatusDisbursed))
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	err = Decision{Status: loan.StatusInReview}.Validate(app(loan.StatusInReview))
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	// e-sign goes through its own action, not the decision form
	err = Decision{Status: loan.StatusESignPending}.Validate(app(loan.StatusApproved))
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	assert.NoError(t, Decision{Status: loan.StatusInReview}.Validate(app(loan.StatusPending)))
	assert.NoError(t, Decision{Status: loan.StatusApproved}.Validate(app(loan.StatusInReview)))
}

func TestDecision_RequiredFields(t *testing.T) {
	err := Decision{Status: loan.StatusApprovedWithCondition}.Validate(app(loan.StatusPending))
	fieldErr(t, err, "conditions")

	err = Decision{Status: loan.StatusRejected}.Validate(app(loan.StatusPending))
	fieldErr(t, err, "rejectionReason")

	assert.NoError(t, Decision{Status: loan.StatusRejected, RejectionReason: "Low CIBIL score"}.Validate(app(loan.StatusPending)))
}

func TestDecision_SanctionedAmount(t *testing.T) {
	over := decimal.NewFromInt(200001)
	err := Decision{Status: loan.StatusApproved, SanctionedAmount: &over}.Validate(app(loan.StatusPending))
	fieldErr(t, err, "sanctionedAmount")

	zero := decimal.Zero
	err = Decision{Status: loan.StatusApproved, SanctionedAmount: &zero}.Validate(app(loan.StatusPending))
	fieldErr(t, err, "sanctionedAmount")

	ok := decimal.NewFromInt(150000)
	d := Decision{Status: loan.StatusApproved, SanctionedAmount: &ok, Remarks: "  fine  "}
	require.NoError(t, d.Validate(app(loan.StatusPending)))

	u := d.ToUpdate()
	assert.Equal(t, "fine", u.Remarks)
	assert.True(t, u.SanctionedAmount.Equal(ok))
}

func TestDecision_ToUpdate_Rejected(t *testing.T) {
	amt := decimal.NewFromInt(1)
	u := Decision{Status: loan.StatusRejected, RejectionReason: " bad docs ", Conditions: "x", SanctionedAmount: &amt}.ToUpdate()
	assert.Equal(t, "bad docs", u.RejectionReason)
	assert.Empty(t, u.Conditions)
	assert.Nil(t, u.SanctionedAmount)
}

func TestESignRequest(t *testing.T) {
	assert.ErrorIs(t, ESignRequest{Action: loan.ESignSend, DocumentURL: "u"}.Validate(app(loan.StatusPending)), ErrActionNotAllowed)
	assert.ErrorIs(t, ESignRequest{Action: loan.ESignComplete}.Validate(app(loan.StatusApproved)), ErrActionNotAllowed)
	assert.ErrorIs(t, ESignRequest{Action: "BOGUS"}.Validate(app(loan.StatusApproved)), ErrActionNotAllowed)

	fieldErr(t, ESignRequest{Action: loan.ESignSend}.Validate(app(loan.StatusApproved)), "documentUrl")
	assert.NoError(t, ESignRequest{Action: loan.ESignSend, DocumentURL: "https://b/doc.pdf"}.Validate(app(loan.StatusApprovedWithCondition)))
	assert.NoError(t, ESignRequest{Action: loan.ESignComplete}.Validate(app(loan.StatusESignPending)))
}

func TestDisbursalRequest(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	a := app(loan.StatusReadyForDisbursal)

	assert.ErrorIs(t, DisbursalRequest{}.Validate(app(loan.StatusApproved), now), ErrActionNotAllowed)

	r := DisbursalRequest{UTR: " hdfcn5202205011 ", DisbursedAt: now.Add(-time.Hour)}.WithDefaults(a)
	assert.Equal(t, "HDFCN5202205011", r.UTR)
	assert.True(t, r.Amount.Equal(decimal.NewFromInt(200000)))
	require.NoError(t, r.Validate(a, now))

	future := r
	future.DisbursedAt = now.Add(24 * time.Hour)
	fieldErr(t, future.Validate(a, now), "disbursedAt")

	badUTR := r
	badUTR.UTR = "ABC"
	fieldErr(t, badUTR.Validate(a, now), "utr")

	tooMuch := r
	tooMuch.Amount = decimal.NewFromInt(200001)
	fieldErr(t, tooMuch.Validate(a, now), "amount")
}
