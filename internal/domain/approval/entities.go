// Package approval holds the staff decisions taken on a loan application
// and the rules they must satisfy before reaching the backend.
package approval

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/rules"
)

var ErrActionNotAllowed = errors.New("action not allowed for current status")

// Decision moves a PENDING or IN_REVIEW application forward.
type Decision struct {
	Status           loan.Status      `json:"status"`
	Remarks          string           `json:"remarks"`
	Conditions       string           `json:"conditions"`
	RejectionReason  string           `json:"rejectionReason"`
	SanctionedAmount *decimal.Decimal `json:"sanctionedAmount"`
}

func (d Decision) Validate(app *loan.Application) error {
	if !app.Status.CanTransitionTo(d.Status) || d.Status == loan.StatusESignPending {
		return ErrActionNotAllowed
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.Conditions, validation.When(d.Status == loan.StatusApprovedWithCondition,
			validation.Required.Error("conditions are required when approving with conditions"))),
		validation.Field(&d.RejectionReason, validation.When(d.Status == loan.StatusRejected,
			validation.Required.Error("a reason is required to reject"), validation.Length(5, 500))),
		validation.Field(&d.Remarks, validation.Length(0, 1000)),
		validation.Field(&d.SanctionedAmount, validation.When(d.SanctionedAmount != nil,
			rules.Positive(),
			rules.MaxPlaces(2),
			rules.AtMost(app.LoanAmount, "must not exceed the requested amount"))),
	)
}

func (d Decision) ToUpdate() loan.StatusUpdate {
	u := loan.StatusUpdate{
		Status:  d.Status,
		Remarks: strings.TrimSpace(d.Remarks),
	}
	switch d.Status {
	case loan.StatusApprovedWithCondition:
		u.Conditions = strings.TrimSpace(d.Conditions)
	case loan.StatusRejected:
		u.RejectionReason = strings.TrimSpace(d.RejectionReason)
	}
	if d.Status != loan.StatusRejected {
		u.SanctionedAmount = d.SanctionedAmount
	}
	return u
}

// ESignRequest either sends the agreement for signature or marks it signed.
type ESignRequest struct {
	Action      loan.ESignAction `json:"action"`
	DocumentURL string           `json:"documentUrl"`
}

func (r ESignRequest) Validate(app *loan.Application) error {
	switch r.Action {
	case loan.ESignSend:
		if !app.Status.CanTransitionTo(loan.StatusESignPending) {
			return ErrActionNotAllowed
		}
	case loan.ESignComplete:
		if !app.Status.CanTransitionTo(loan.StatusReadyForDisbursal) {
			return ErrActionNotAllowed
		}
	default:
		return ErrActionNotAllowed
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentURL, validation.When(r.Action == loan.ESignSend,
			validation.Required.Error("upload the agreement before sending for e-sign"))),
	)
}

// DisbursalRequest records the bank transfer for a READY_FOR_DISBURSAL loan.
type DisbursalRequest struct {
	UTR         string          `json:"utr"`
	DisbursedAt time.Time       `json:"disbursedAt"`
	Amount      decimal.Decimal `json:"amount"`
	Remarks     string          `json:"remarks"`
}

func (r DisbursalRequest) Validate(app *loan.Application, now time.Time) error {
	if !app.Status.CanTransitionTo(loan.StatusDisbursed) {
		return ErrActionNotAllowed
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.UTR, validation.Required, rules.UTR),
		validation.Field(&r.DisbursedAt, validation.Required, rules.NotFuture(now)),
		validation.Field(&r.Amount, rules.Positive(), rules.MaxPlaces(2),
			rules.AtMost(app.PayableAmount(), "must not exceed the sanctioned amount")),
	)
}

// WithDefaults fills the amount from the application when left blank.
func (r DisbursalRequest) WithDefaults(app *loan.Application) DisbursalRequest {
	if r.Amount.IsZero() {
		r.Amount = app.PayableAmount()
	}
	r.UTR = strings.ToUpper(strings.TrimSpace(r.UTR))
	return r
}

func (r DisbursalRequest) ToInput() loan.DisbursalInput {
	return loan.DisbursalInput{
		UTR:         r.UTR,
		DisbursedAt: r.DisbursedAt.UTC(),
		Amount:      r.Amount,
		Remarks:     strings.TrimSpace(r.Remarks),
	}
}
